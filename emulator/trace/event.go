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

// Package trace records one JSON event per executed instruction.
package trace

import (
	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/processor"
)

const (
	DefaultQueueSize  = 1024
	DefaultBufferSize = 0x100000 // 1MB
)

// Regs is a flat copy of the register file.
type Regs struct {
	AX, CX, DX, BX uint16
	SP, BP, SI, DI uint16
	ES, CS, SS, DS uint16
	IP, Flags      uint16
}

func Capture(r *processor.Registers) Regs {
	v := r.GetValues()
	return Regs{
		AX: v[0], CX: v[1], DX: v[2], BX: v[3],
		SP: v[4], BP: v[5], SI: v[6], DI: v[7],
		ES: v[8], CS: v[9], SS: v[10], DS: v[11],
		IP: r.IP, Flags: r.Flags.Load(),
	}
}

func (r Regs) Address() memory.Address {
	return memory.NewAddress(r.CS, r.IP)
}

type Event struct {
	Step   uint64
	Opcode byte
	Cycles int
	Before Regs
	After  Regs
	Error  string `json:",omitempty"`
}

func (e *Event) Equal(other *Event) bool {
	return e.Opcode == other.Opcode && e.Cycles == other.Cycles &&
		e.Before == other.Before && e.After == other.After && e.Error == other.Error
}

// SameLocation reports whether both events executed the same opcode at the same address.
func (e *Event) SameLocation(other *Event) bool {
	return e.Opcode == other.Opcode && e.Before.Address().Pointer() == other.Before.Address().Pointer()
}
