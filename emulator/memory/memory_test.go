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

package memory

import (
	"testing"

	"github.com/pkg/errors"
)

func TestLinear(t *testing.T) {
	m := NewRAM()
	tests := []struct {
		seg, off uint16
		want     Pointer
		err      bool
	}{
		{0x0000, 0x0000, 0x00000, false},
		{0x0700, 0x0100, 0x07100, false},
		{0xF000, 0xFFFF, 0xFFFFF, false},
		{0xFFFF, 0x000F, 0xFFFFF, false},
		{0xFFFF, 0x0010, 0x100000, true},
		{0xFFFF, 0xFFFF, 0x10FFEF, true},
	}
	for _, tc := range tests {
		p, err := m.Linear(tc.seg, tc.off)
		if p != tc.want {
			t.Errorf("%04X:%04X (Got %v but expected %v)", tc.seg, tc.off, p, tc.want)
		}
		if (err != nil) != tc.err {
			t.Errorf("%04X:%04X unexpected error state: %v", tc.seg, tc.off, err)
		}
		if err != nil && !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("%04X:%04X error is not ErrOutOfBounds: %v", tc.seg, tc.off, err)
		}
	}
}

func TestWordLittleEndian(t *testing.T) {
	m := NewRAM()
	if err := m.WriteWord(0x0700, 0x0200, 0xBEEF); err != nil {
		t.Fatal(err)
	}
	lo, _ := m.ReadByteAt(0x0700, 0x0200)
	hi, _ := m.ReadByteAt(0x0700, 0x0201)
	if lo != 0xEF || hi != 0xBE {
		t.Errorf("Invalid byte order! (Got 0x%X 0x%X but expected 0xEF 0xBE)", lo, hi)
	}
	if v, err := m.ReadWord(0x0700, 0x0200); err != nil || v != 0xBEEF {
		t.Errorf("Invalid result! (Got 0x%X but expected 0xBEEF): %v", v, err)
	}
}

func TestWordAtEndOfMemory(t *testing.T) {
	m := NewRAM()
	if err := m.WriteByteAt(0xF000, 0xFFFF, 0xAA); err != nil {
		t.Fatal(err)
	}
	if _, err := m.ReadWord(0xF000, 0xFFFF); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if err := m.WriteWord(0xF000, 0xFFFF, 0x1234); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if v, _ := m.ReadByteAt(0xF000, 0xFFFF); v != 0xAA {
		t.Errorf("failed word write modified memory (Got 0x%X but expected 0xAA)", v)
	}
}

func TestByteAccess(t *testing.T) {
	m := NewRAM()
	if err := m.WriteByteAt(0x0700, 0x0100, 0x42); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.ReadBytePtr(0x7100); v != 0x42 {
		t.Errorf("Invalid byte! (Got 0x%X but expected 0x42)", v)
	}
	if _, err := m.ReadByteAt(0xFFFF, 0x0010); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if err := m.WriteByteAt(0xFFFF, 0x0010, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	m.Clear()
	if v, _ := m.ReadByteAt(0x0700, 0x0100); v != 0 {
		t.Errorf("Memory not cleared! (Got 0x%X but expected 0x0)", v)
	}
}

func TestLoad(t *testing.T) {
	m := NewRAM()
	if err := m.Load(Size-2, []byte{1, 2, 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	for _, v := range m.Bytes()[Size-2:] {
		if v != 0 {
			t.Fatal("failed load modified memory")
		}
	}

	if err := m.Load(0x7100, []byte{0xB0, 0x11, 0xC3}); err != nil {
		t.Fatal(err)
	}
	buf, err := m.Slice(0x7100, 3)
	if err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0xB0 || buf[1] != 0x11 || buf[2] != 0xC3 {
		t.Errorf("Invalid result! (Got % X)", buf)
	}
}

func TestAddress(t *testing.T) {
	a := NewAddress(0x0700, 0xFFFF)
	if a.String() != "0700:FFFF" {
		t.Errorf("Invalid string! (Got %s)", a)
	}
	if b := a.AddInt(1); b.Segment() != 0x0700 || b.Offset() != 0 {
		t.Errorf("offset did not wrap within segment: %v", b)
	}
	if a.Pointer() != 0x16FFF {
		t.Errorf("Invalid pointer! (Got %v)", a.Pointer())
	}
}
