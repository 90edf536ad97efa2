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
	"github.com/andreas-jonsson/emu8086/emulator/processor"
)

type CPU struct {
	processor.Registers
	instructionState

	mem           *memory.RAM
	stats         processor.Stats
	pendingCycles uint64
}

// NewCPU returns a CPU in its reset state with 1MB of zeroed memory.
func NewCPU() *CPU {
	return NewCPUWithMemory(memory.NewRAM())
}

func NewCPUWithMemory(mem *memory.RAM) *CPU {
	p := &CPU{mem: mem}
	p.Reset()
	return p
}

// Reset restores the registers to their load state. Memory is left intact.
func (p *CPU) Reset() {
	p.Registers.Reset()
	p.instructionState = instructionState{}
	p.pendingCycles = 0
}

func (p *CPU) GetRegisters() *processor.Registers {
	return &p.Registers
}

func (p *CPU) GetMemory() *memory.RAM {
	return p.mem
}

func (p *CPU) GetStats() processor.Stats {
	return p.stats
}

func (p *CPU) ResetStats() {
	p.stats = processor.Stats{}
}

// PendingCycles is the number of cycles executed since the last call to ResetPendingCycles.
func (p *CPU) PendingCycles() uint64 {
	return p.pendingCycles
}

func (p *CPU) ResetPendingCycles() uint64 {
	c := p.pendingCycles
	p.pendingCycles = 0
	return c
}

func (p *CPU) SetPendingCycles(c uint64) {
	p.pendingCycles = c
}

func (p *CPU) readMem8(addr memory.Address) (byte, error) {
	v, err := p.mem.ReadByteAt(addr.Segment(), addr.Offset())
	if err == nil {
		p.stats.RX++
	}
	return v, err
}

func (p *CPU) writeMem8(addr memory.Address, data byte) error {
	err := p.mem.WriteByteAt(addr.Segment(), addr.Offset(), data)
	if err == nil {
		p.stats.TX++
	}
	return err
}

func (p *CPU) readMem16(addr memory.Address) (uint16, error) {
	v, err := p.mem.ReadWord(addr.Segment(), addr.Offset())
	if err == nil {
		p.stats.RX += 2
	}
	return v, err
}

func (p *CPU) writeMem16(addr memory.Address, data uint16) error {
	err := p.mem.WriteWord(addr.Segment(), addr.Offset(), data)
	if err == nil {
		p.stats.TX += 2
	}
	return err
}

// Step executes one instruction and returns the number of cycles it consumed.
// On error the instruction has no effect and IP still points at its opcode.
func (p *CPU) Step() (int, error) {
	p.cycleCount = 0
	p.decodeAt = p.IP

	op, err := p.Fetch()
	if err != nil {
		p.IP = p.decodeAt
		return 0, err
	}

	p.opcode = op
	p.isWide = op&1 != 0
	p.rmToReg = op&2 != 0

	fn := opcodeTable[op]
	if fn == nil {
		p.IP = p.decodeAt
		return 0, &processor.UnimplementedOpcodeError{Opcode: op, CS: p.CS(), IP: p.decodeAt}
	}

	if err := fn(p); err != nil {
		p.IP = p.decodeAt
		return 0, err
	}

	p.stats.NumInstructions++
	p.pendingCycles += uint64(p.cycleCount)
	return p.cycleCount, nil
}
