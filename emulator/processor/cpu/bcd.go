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
	"github.com/pkg/errors"
)

func opAAA(p *CPU) error {
	al, ah := p.AL(), p.AH()
	adjust := al&0xF > 9 || p.GetBool(processor.Adjust)
	if adjust {
		al += 6
		ah++
	}
	p.SetBool(processor.Adjust|processor.Carry, adjust)
	p.SetAX(processor.MakeWord(ah, al&0xF))
	p.cycleCount += 4
	return nil
}

func opAAS(p *CPU) error {
	al, ah := p.AL(), p.AH()
	adjust := al&0xF > 9 || p.GetBool(processor.Adjust)
	if adjust {
		al -= 6
		ah--
	}
	p.SetBool(processor.Adjust|processor.Carry, adjust)
	p.SetAX(processor.MakeWord(ah, al&0xF))
	p.cycleCount += 4
	return nil
}

func opAAM(p *CPU) error {
	base, err := p.Fetch()
	if err != nil {
		return err
	}
	if base == 0 {
		return errors.Wrapf(processor.ErrDivideByZero, "AAM at %v", memory.NewAddress(p.CS(), p.decodeAt))
	}

	al := p.AL()
	p.SetAH(al / base)
	p.SetAL(al % base)
	p.ApplySZP8(p.AL())
	p.cycleCount += 83
	return nil
}

func opAAD(p *CPU) error {
	base, err := p.Fetch()
	if err != nil {
		return err
	}

	al := p.AL() + p.AH()*base
	p.SetAX(uint16(al))
	p.ApplySZP8(al)
	p.cycleCount += 60
	return nil
}
