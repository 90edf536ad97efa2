/*
Copyright (c) 2019-2021 Andreas T Jonsson

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

package cpu

import (
	"github.com/andreas-jonsson/emu8086/emulator/memory"
)

const registerLocation = 1 << 63

// dataLocation is either a register selector (with registerLocation set)
// or a segment:offset memory address.
type dataLocation uint64

func (addr dataLocation) isRegister() bool {
	return addr&registerLocation != 0
}

func (addr dataLocation) selector() byte {
	return byte(addr & 0x7)
}

func (addr dataLocation) getAddress() memory.Address {
	return memory.Address(addr & 0xFFFFFFFF)
}

func (addr dataLocation) readByte(p *CPU) (byte, error) {
	if addr.isRegister() {
		return p.Reg8(addr.selector())
	}
	return p.readMem8(addr.getAddress())
}

func (addr dataLocation) writeByte(p *CPU, data byte) error {
	if addr.isRegister() {
		return p.SetReg8(addr.selector(), data)
	}
	return p.writeMem8(addr.getAddress(), data)
}

func (addr dataLocation) readWord(p *CPU) (uint16, error) {
	if addr.isRegister() {
		return p.Reg16(addr.selector())
	}
	return p.readMem16(addr.getAddress())
}

func (addr dataLocation) writeWord(p *CPU, data uint16) error {
	if addr.isRegister() {
		return p.SetReg16(addr.selector(), data)
	}
	return p.writeMem16(addr.getAddress(), data)
}

// Effective address time indexed by r/m, without displacement.
// [BX+SI] [BX+DI] [BP+SI] [BP+DI] [SI] [DI] [BP] [BX]
var eaCycles = [8]int{7, 8, 8, 7, 5, 5, 5, 5}

const (
	displacementCycles  = 4
	directAddressCycles = 6
)

type opcodeFunc func(p *CPU) error

var opcodeTable [0x100]opcodeFunc

func init() {
	initOpcodeTable()
}

func initOpcodeTable() {
	// ADD, OR, ADC, SBB, AND, SUB, XOR, CMP
	for group := 0; group < 8; group++ {
		for form := 0; form < 6; form++ {
			opcodeTable[group<<3|form] = opALU
		}
	}

	opcodeTable[0x37] = opAAA
	opcodeTable[0x3F] = opAAS
	opcodeTable[0xD4] = opAAM
	opcodeTable[0xD5] = opAAD

	for op := 0x88; op <= 0x8B; op++ {
		opcodeTable[op] = opMOVRegMem
	}
	for op := 0xB0; op <= 0xBF; op++ {
		opcodeTable[op] = opMOVImm
	}
}

// Implemented reports whether op has a handler.
func Implemented(op byte) bool {
	return opcodeTable[op] != nil
}
