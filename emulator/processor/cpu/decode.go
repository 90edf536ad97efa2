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

type instructionState struct {
	opcode   byte
	modRegRM ModRM

	isWide, rmToReg bool
	decodeAt        uint16
	cycleCount      int
}

// ModRM is a decoded addressing byte.
type ModRM struct {
	Mod, Reg, RM byte
}

func DecodeModRM(b byte) ModRM {
	return ModRM{Mod: b >> 6, Reg: (b >> 3) & 7, RM: b & 7}
}

func (m ModRM) isRegister() bool {
	return m.Mod == 3
}

// Fetch reads the byte at CS:IP and advances IP.
func (p *CPU) Fetch() (byte, error) {
	v, err := p.mem.ReadByteAt(p.CS(), p.IP)
	if err != nil {
		return 0, err
	}
	p.stats.RX++
	p.IP++
	return v, nil
}

// PeekOpcode returns the byte at CS:IP without consuming it.
func (p *CPU) PeekOpcode() (byte, error) {
	return p.mem.ReadByteAt(p.CS(), p.IP)
}

func (p *CPU) fetchWord() (uint16, error) {
	lo, err := p.Fetch()
	if err != nil {
		return 0, err
	}
	hi, err := p.Fetch()
	if err != nil {
		return 0, err
	}
	return processor.MakeWord(hi, lo), nil
}

func (p *CPU) readModRegRM() error {
	b, err := p.Fetch()
	if err != nil {
		return err
	}
	p.modRegRM = DecodeModRM(b)
	return nil
}

func (p *CPU) regLocation() dataLocation {
	return dataLocation(p.modRegRM.Reg) | registerLocation
}

// rmLocation resolves the r/m operand, consuming any displacement bytes
// and charging the effective address time.
func (p *CPU) rmLocation() (dataLocation, error) {
	m := p.modRegRM
	if m.isRegister() {
		return dataLocation(m.RM) | registerLocation, nil
	}

	var disp uint16
	switch m.Mod {
	case 0:
		if m.RM == 6 {
			offset, err := p.fetchWord()
			if err != nil {
				return 0, err
			}
			p.cycleCount += directAddressCycles
			return dataLocation(memory.NewAddress(p.DS(), offset)), nil
		}
	case 1:
		b, err := p.Fetch()
		if err != nil {
			return 0, err
		}
		disp = signExtend16(b)
	case 2:
		w, err := p.fetchWord()
		if err != nil {
			return 0, err
		}
		disp = w
	}

	base, err := p.EffectiveAddressBase(m.RM)
	if err != nil {
		return 0, err
	}
	seg, err := p.DefaultSegment(m.RM)
	if err != nil {
		return 0, err
	}

	p.cycleCount += eaCycles[m.RM]
	if m.Mod != 0 {
		p.cycleCount += displacementCycles
	}
	return dataLocation(memory.NewAddress(seg, base+disp)), nil
}

// parseOperands decodes ModRM and orders the operands by the direction bit.
func (p *CPU) parseOperands() (dataLocation, dataLocation, error) {
	if err := p.readModRegRM(); err != nil {
		return 0, 0, err
	}
	reg := p.regLocation()
	rm, err := p.rmLocation()
	if err != nil {
		return 0, 0, err
	}
	if p.rmToReg {
		return reg, rm, nil
	}
	return rm, reg, nil
}

func signExtend16(v byte) uint16 {
	if v&0x80 != 0 {
		return uint16(v) | 0xFF00
	}
	return uint16(v)
}
