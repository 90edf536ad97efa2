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

package processor

import (
	"fmt"

	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/pkg/errors"
)

type Stats struct {
	NumInstructions uint64
	RX, TX          uint64
}

var (
	ErrInvalidSelector     = errors.New("invalid selector")
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	ErrDivideByZero        = errors.New("divide by zero")
)

// UnimplementedOpcodeError reports an opcode with no registered handler.
// CS:IP is the address the opcode was fetched from.
type UnimplementedOpcodeError struct {
	Opcode byte
	CS, IP uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%02X at %v", e.Opcode, e.Address())
}

func (e *UnimplementedOpcodeError) Is(target error) bool {
	return target == ErrUnimplementedOpcode
}

func (e *UnimplementedOpcodeError) Address() memory.Address {
	return memory.NewAddress(e.CS, e.IP)
}

// Processor is the read side of a CPU used by dumps, snapshots and hosts.
type Processor interface {
	GetRegisters() *Registers
	GetMemory() *memory.RAM
	GetStats() Stats
	PendingCycles() uint64
}
