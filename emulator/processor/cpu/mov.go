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

func opMOVRegMem(p *CPU) error {
	dest, src, err := p.parseOperands()
	if err != nil {
		return err
	}

	if p.isWide {
		v, err := src.readWord(p)
		if err != nil {
			return err
		}
		if err := dest.writeWord(p, v); err != nil {
			return err
		}
	} else {
		v, err := src.readByte(p)
		if err != nil {
			return err
		}
		if err := dest.writeByte(p, v); err != nil {
			return err
		}
	}

	switch {
	case p.modRegRM.isRegister():
		p.cycleCount += 2
	case p.rmToReg:
		p.cycleCount += 8
	default:
		p.cycleCount += 9
	}
	return nil
}

// MOV reg,imm. Bit 3 selects the word form, bits 0-2 the register.
func opMOVImm(p *CPU) error {
	sel := p.opcode & 7
	if p.opcode&8 != 0 {
		v, err := p.fetchWord()
		if err != nil {
			return err
		}
		if err := p.SetReg16(sel, v); err != nil {
			return err
		}
	} else {
		v, err := p.Fetch()
		if err != nil {
			return err
		}
		if err := p.SetReg8(sel, v); err != nil {
			return err
		}
	}
	p.cycleCount += 4
	return nil
}
