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

package loader

import (
	"bytes"
	"os"
	"testing"

	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/processor"
	"github.com/andreas-jonsson/emu8086/emulator/processor/cpu"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	prog := []byte{0xB0, 0x01, 0xB4, 0x02, 0xC3}
	if err := afero.WriteFile(fs, "test.com", prog, 0644); err != nil {
		t.Fatal(err)
	}

	p := cpu.NewCPU()
	p.IP = 0x1234

	img, err := Load(fs, "test.com", p)
	if err != nil {
		t.Fatal(err)
	}
	if p.IP != processor.LoadOffset {
		t.Errorf("Invalid IP! (Got 0x%X but expected 0x%X)", p.IP, processor.LoadOffset)
	}
	if img.Base != memory.NewAddress(0x0700, 0x0100) || img.Size != len(prog) {
		t.Errorf("Invalid image! (Got %v+%d)", img.Base, img.Size)
	}

	data, err := p.GetMemory().Slice(0x7100, len(prog))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, prog) {
		t.Errorf("Invalid memory! (Got % X but expected % X)", data, prog)
	}
	if img.End() != memory.NewAddress(0x0700, 0x0105) {
		t.Errorf("Invalid end address! (Got %v)", img.End())
	}
}

func TestLoadMissingFile(t *testing.T) {
	p := cpu.NewCPU()
	_, err := Load(afero.NewMemMapFs(), "missing.com", p)

	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *loader.Error, got %v", err)
	}
	if lerr.Name != "missing.com" {
		t.Errorf("Invalid name! (Got %q)", lerr.Name)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause lost: %v", err)
	}
}

func TestLoadTooLarge(t *testing.T) {
	p := cpu.NewCPU()
	p.IP = 0x0200

	_, err := Read(bytes.NewReader(make([]byte, MaxSize+1)), "big.com", p)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if p.IP != 0x0200 {
		t.Error("IP modified by failed load")
	}
}

func TestLoadOutOfMemory(t *testing.T) {
	p := cpu.NewCPU()
	p.SetCS(0xFFFF)

	_, err := Read(bytes.NewReader([]byte{1, 2, 3}), "high.com", p)
	if !errors.Is(err, memory.ErrOutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", err)
	}
	if v, _ := p.GetMemory().ReadBytePtr(memory.Size - 1); v != 0 {
		t.Error("memory modified by failed load")
	}
}

func TestLoadFullSegment(t *testing.T) {
	p := cpu.NewCPU()
	if _, err := Read(bytes.NewReader(make([]byte, MaxSize)), "full.com", p); err != nil {
		t.Fatal(err)
	}
}
