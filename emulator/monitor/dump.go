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

// Package monitor renders CPU state for humans and drives interactive stepping.
package monitor

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/processor"
)

var flagOrder = [9]struct {
	flag processor.Flags
	name byte
}{
	{processor.Carry, 'C'},
	{processor.Parity, 'P'},
	{processor.Adjust, 'A'},
	{processor.Zero, 'Z'},
	{processor.Sign, 'S'},
	{processor.Trap, 'T'},
	{processor.InterruptEnable, 'I'},
	{processor.Direction, 'D'},
	{processor.Overflow, 'O'},
}

// FlagString shows set flags by letter and clear flags as '-'.
func FlagString(f processor.Flags) string {
	var s [9]byte
	for i, fl := range flagOrder {
		s[i] = '-'
		if f.GetBool(fl.flag) {
			s[i] = fl.name
		}
	}
	return string(s[:])
}

func RegisterDump(r *processor.Registers) string {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"AL 0x%02X (%d)\tCL 0x%02X (%d)\tDL 0x%02X (%d)\tBL 0x%02X (%d)\nAH 0x%02X (%d)\tCH 0x%02X (%d)\tDH 0x%02X (%d)\tBH 0x%02X (%d)\nAX 0x%04X (%d)\tCX 0x%04X (%d)\tDX 0x%04X (%d)\tBX 0x%04X (%d)\n\n",
		r.AL(), r.AL(), r.CL(), r.CL(), r.DL(), r.DL(), r.BL(), r.BL(),
		r.AH(), r.AH(), r.CH(), r.CH(), r.DH(), r.DH(), r.BH(), r.BH(),
		r.AX(), r.AX(), r.CX(), r.CX(), r.DX(), r.DX(), r.BX(), r.BX(),
	)
	fmt.Fprintf(&sb,
		"SP 0x%04X (%d)\tBP 0x%04X (%d)\nSI 0x%04X (%d)\tDI 0x%04X (%d)\n\n",
		r.SP(), r.SP(), r.BP(), r.BP(), r.SI(), r.SI(), r.DI(), r.DI(),
	)
	fmt.Fprintf(&sb,
		"ES 0x%04X (%d)\tCS 0x%04X (%d)\nSS 0x%04X (%d)\tDS 0x%04X (%d)\n\nIP 0x%04X\t%s (0x%03X)\n",
		r.ES(), r.ES(), r.CS(), r.CS(), r.SS(), r.SS(), r.DS(), r.DS(),
		r.IP, FlagString(r.Flags), r.Flags.Load(),
	)
	return sb.String()
}

// RegisterLine is a compact single line form used by the C interface.
func RegisterLine(r *processor.Registers) string {
	return fmt.Sprintf(
		"AX=%04X BX=%04X CX=%04X DX=%04X SP=%04X BP=%04X SI=%04X DI=%04X CS=%04X DS=%04X SS=%04X ES=%04X IP=%04X FLAGS=%04X",
		r.AX(), r.BX(), r.CX(), r.DX(), r.SP(), r.BP(), r.SI(), r.DI(),
		r.CS(), r.DS(), r.SS(), r.ES(), r.IP, r.Flags.Load(),
	)
}

// MemoryDump hex dumps the inclusive range from-to.
func MemoryDump(mem *memory.RAM, from, to memory.Pointer) (string, error) {
	if to < from {
		from, to = to, from
	}
	data, err := mem.Slice(from, int(to-from)+1)
	if err != nil {
		return "", err
	}
	return hex.Dump(data), nil
}
