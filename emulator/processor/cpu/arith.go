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
	"github.com/andreas-jonsson/emu8086/emulator/processor"
)

// Operation groups encoded in bits 3-5 of the 0x00-0x3D opcodes.
const (
	aluADD byte = iota
	aluOR
	aluADC
	aluSBB
	aluAND
	aluSUB
	aluXOR
	aluCMP
)

func opALU(p *CPU) error {
	group := (p.opcode >> 3) & 7
	switch p.opcode & 7 {
	case 4:
		return p.aluAccImm8(group)
	case 5:
		return p.aluAccImm16(group)
	default:
		return p.aluRegMem(group)
	}
}

func (p *CPU) aluRegMem(group byte) error {
	dest, src, err := p.parseOperands()
	if err != nil {
		return err
	}

	f := p.Flags
	if p.isWide {
		a, err := dest.readWord(p)
		if err != nil {
			return err
		}
		b, err := src.readWord(p)
		if err != nil {
			return err
		}
		res := alu16(&f, group, a, b)
		if group != aluCMP {
			if err := dest.writeWord(p, res); err != nil {
				return err
			}
		}
	} else {
		a, err := dest.readByte(p)
		if err != nil {
			return err
		}
		b, err := src.readByte(p)
		if err != nil {
			return err
		}
		res := alu8(&f, group, a, b)
		if group != aluCMP {
			if err := dest.writeByte(p, res); err != nil {
				return err
			}
		}
	}
	p.Flags = f

	switch {
	case p.modRegRM.isRegister():
		p.cycleCount += 3
	case p.rmToReg, group == aluCMP:
		p.cycleCount += 9
	default:
		p.cycleCount += 16
	}
	return nil
}

func (p *CPU) aluAccImm8(group byte) error {
	b, err := p.Fetch()
	if err != nil {
		return err
	}
	res := alu8(&p.Flags, group, p.AL(), b)
	if group != aluCMP {
		p.SetAL(res)
	}
	p.cycleCount += 4
	return nil
}

func (p *CPU) aluAccImm16(group byte) error {
	b, err := p.fetchWord()
	if err != nil {
		return err
	}
	res := alu16(&p.Flags, group, p.AX(), b)
	if group != aluCMP {
		p.SetAX(res)
	}
	p.cycleCount += 4
	return nil
}

func alu8(f *processor.Flags, group, a, b byte) byte {
	var (
		res             byte
		overflow, carry bool
		aux             bool
	)

	switch group {
	case aluADD:
		res, overflow, carry, aux = processor.Add8(a, b)
	case aluADC:
		res, overflow, carry, aux = processor.Adc8(a, b, f.GetBool(processor.Carry))
	case aluSUB, aluCMP:
		res, overflow, carry, aux = processor.Sub8(a, b)
	case aluSBB:
		res, overflow, carry, aux = processor.Sbb8(a, b, f.GetBool(processor.Carry))
	case aluOR:
		res = a | b
		f.ApplyLogic8(res)
		return res
	case aluAND:
		res = a & b
		f.ApplyLogic8(res)
		return res
	case aluXOR:
		res = a ^ b
		f.ApplyLogic8(res)
		return res
	}

	f.ApplyResult8(res, overflow, carry, aux)
	return res
}

func alu16(f *processor.Flags, group byte, a, b uint16) uint16 {
	var (
		res             uint16
		overflow, carry bool
		aux             bool
	)

	switch group {
	case aluADD:
		res, overflow, carry, aux = processor.Add16(a, b)
	case aluADC:
		res, overflow, carry, aux = processor.Adc16(a, b, f.GetBool(processor.Carry))
	case aluSUB, aluCMP:
		res, overflow, carry, aux = processor.Sub16(a, b)
	case aluSBB:
		res, overflow, carry, aux = processor.Sbb16(a, b, f.GetBool(processor.Carry))
	case aluOR:
		res = a | b
		f.ApplyLogic16(res)
		return res
	case aluAND:
		res = a & b
		f.ApplyLogic16(res)
		return res
	case aluXOR:
		res = a ^ b
		f.ApplyLogic16(res)
		return res
	}

	f.ApplyResult16(res, overflow, carry, aux)
	return res
}
