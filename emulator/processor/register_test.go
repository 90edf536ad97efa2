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
	"testing"

	"github.com/pkg/errors"
)

func TestReset(t *testing.T) {
	var r Registers
	r.SetAX(0x1234)
	r.Set(Carry | Direction)
	r.Reset()

	if r.AX() != 0 || r.BX() != 0 || r.CX() != 0 || r.DX() != 0 {
		t.Error("general purpose registers not cleared")
	}
	if r.SP() != 0xFFFE {
		t.Errorf("Invalid SP! (Got 0x%X but expected 0xFFFE)", r.SP())
	}
	if r.CS() != LoadSegment || r.DS() != LoadSegment || r.ES() != LoadSegment || r.SS() != 0 {
		t.Errorf("Invalid segments! (CS=0x%X DS=0x%X ES=0x%X SS=0x%X)", r.CS(), r.DS(), r.ES(), r.SS())
	}
	if r.IP != 0x0100 {
		t.Errorf("Invalid IP! (Got 0x%X but expected 0x100)", r.IP)
	}
	if f := r.Flags.Load(); f != 0x0002 {
		t.Errorf("Invalid flags! (Got 0x%X but expected 0x2)", f)
	}
}

func TestWordSelectors(t *testing.T) {
	var r Registers
	for sel := byte(0); sel < 8; sel++ {
		if err := r.SetReg16(sel, 0x1000+uint16(sel)); err != nil {
			t.Fatal(err)
		}
	}
	want := [8]uint16{r.AX(), r.CX(), r.DX(), r.BX(), r.SP(), r.BP(), r.SI(), r.DI()}
	for sel := byte(0); sel < 8; sel++ {
		if want[sel] != 0x1000+uint16(sel) {
			t.Errorf("selector %d wrote the wrong register (Got 0x%X)", sel, want[sel])
		}
		if v, _ := r.Reg16(sel); v != want[sel] {
			t.Errorf("selector %d (Got 0x%X but expected 0x%X)", sel, v, want[sel])
		}
	}
}

func TestByteSelectors(t *testing.T) {
	var r Registers
	r.SetAX(0x1122)
	r.SetCX(0x3344)
	r.SetDX(0x5566)
	r.SetBX(0x7788)

	want := [8]byte{0x22, 0x44, 0x66, 0x88, 0x11, 0x33, 0x55, 0x77}
	for sel, w := range want {
		if v, err := r.Reg8(byte(sel)); err != nil || v != w {
			t.Errorf("selector %d (Got 0x%X but expected 0x%X): %v", sel, v, w, err)
		}
	}
}

func TestByteHalvesIsolated(t *testing.T) {
	var r Registers
	for v := 0; v < 0x100; v++ {
		r.SetAX(0xA55A)
		if err := r.SetReg8(0, byte(v)); err != nil {
			t.Fatal(err)
		}
		if r.AH() != 0xA5 {
			t.Fatalf("writing AL=0x%X changed AH to 0x%X", v, r.AH())
		}
		if err := r.SetReg8(4, byte(v)); err != nil {
			t.Fatal(err)
		}
		if r.AL() != byte(v) || r.AH() != byte(v) {
			t.Fatalf("writing AH=0x%X gave AX=0x%X", v, r.AX())
		}

		r.SetBX(0x5AA5)
		r.SetBH(byte(v))
		if r.BL() != 0xA5 {
			t.Fatalf("writing BH=0x%X changed BL to 0x%X", v, r.BL())
		}
	}
}

func TestInvalidSelector(t *testing.T) {
	var r Registers
	if _, err := r.Reg16(8); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("Reg16: expected ErrInvalidSelector, got %v", err)
	}
	if err := r.SetReg16(0xFF, 1); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("SetReg16: expected ErrInvalidSelector, got %v", err)
	}
	if _, err := r.Reg8(8); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("Reg8: expected ErrInvalidSelector, got %v", err)
	}
	if err := r.SetReg8(9, 1); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("SetReg8: expected ErrInvalidSelector, got %v", err)
	}
	if _, err := r.EffectiveAddressBase(8); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("EffectiveAddressBase: expected ErrInvalidSelector, got %v", err)
	}
	if _, err := r.DefaultSegment(8); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("DefaultSegment: expected ErrInvalidSelector, got %v", err)
	}
}

func TestEffectiveAddressBase(t *testing.T) {
	var r Registers
	r.SetBX(0x1000)
	r.SetBP(0x2000)
	r.SetSI(0x0030)
	r.SetDI(0x0004)

	want := [8]uint16{0x1030, 0x1004, 0x2030, 0x2004, 0x0030, 0x0004, 0x2000, 0x1000}
	for sel, w := range want {
		if v, err := r.EffectiveAddressBase(byte(sel)); err != nil || v != w {
			t.Errorf("selector %d (Got 0x%X but expected 0x%X): %v", sel, v, w, err)
		}
	}

	r.SetBX(0xFFFF)
	r.SetSI(0x0002)
	if v, _ := r.EffectiveAddressBase(0); v != 0x0001 {
		t.Errorf("BX+SI did not wrap (Got 0x%X)", v)
	}
}

func TestByteHelpers(t *testing.T) {
	if HighByte(0xABCD) != 0xAB || LowByte(0xABCD) != 0xCD {
		t.Error("byte extraction")
	}
	if SetHighByte(0xABCD, 0x12) != 0x12CD || SetLowByte(0xABCD, 0x12) != 0xAB12 {
		t.Error("byte injection")
	}
	if MakeWord(0x12, 0x34) != 0x1234 {
		t.Error("MakeWord")
	}
}

func TestFlagsStoreLoad(t *testing.T) {
	var f Flags
	f.Store(0xFFFF)
	if f.Load() != uint16(AllFlags)|0x2 {
		t.Errorf("Invalid flags! (Got 0x%X)", f.Load())
	}
	f.SetBool(Carry, false)
	if f.GetBool(Carry) {
		t.Error("carry still set")
	}
	if !f.GetBool(Overflow | Carry) {
		t.Error("overflow should be set")
	}
}
