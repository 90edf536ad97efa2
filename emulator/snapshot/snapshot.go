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

// Package snapshot saves and restores the complete machine state.
//
// A snapshot is a fixed size little-endian header followed by the snappy
// compressed memory image.
package snapshot

import (
	"encoding/binary"
	"io"

	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/processor"
	"github.com/andreas-jonsson/emu8086/version"
	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	Magic   = "E86S"
	Version = 1
)

var ErrInvalid = errors.New("invalid snapshot")

var options = &struc.Options{Order: binary.LittleEndian}

type Header struct {
	Magic         string `struc:"[4]byte"`
	Version       uint32
	Major         uint8
	Minor         uint8
	Patch         uint8
	Reserved      uint8
	Regs          [12]uint16
	IP            uint16
	Flags         uint16
	PendingCycles uint64
	MemSize       uint32
}

// Target is a processor whose cycle counter can be restored.
type Target interface {
	processor.Processor
	SetPendingCycles(uint64)
}

func Save(w io.Writer, p processor.Processor) error {
	r := p.GetRegisters()
	header := &Header{
		Magic:         Magic,
		Version:       Version,
		Major:         version.Current.Major,
		Minor:         version.Current.Minor,
		Patch:         version.Current.Patch,
		Regs:          r.GetValues(),
		IP:            r.IP,
		Flags:         r.Flags.Load(),
		PendingCycles: p.PendingCycles(),
		MemSize:       memory.Size,
	}
	if err := struc.PackWithOptions(w, header, options); err != nil {
		return errors.Wrap(err, "failed to pack header")
	}

	zw := snappy.NewBufferedWriter(w)
	if _, err := zw.Write(p.GetMemory().Bytes()); err != nil {
		return errors.Wrap(err, "failed to write memory")
	}
	return errors.Wrap(zw.Close(), "failed to flush memory")
}

// Load restores a snapshot written by Save. The target is left untouched on error.
func Load(r io.Reader, p Target) error {
	var header Header
	if err := struc.UnpackWithOptions(r, &header, options); err != nil {
		return errors.Wrap(err, "failed to unpack header")
	}
	if header.Magic != Magic {
		return errors.Wrapf(ErrInvalid, "bad magic %q", header.Magic)
	}
	if header.Version != Version {
		return errors.Wrapf(ErrInvalid, "unsupported version %d", header.Version)
	}
	if from := version.New(header.Major, header.Minor, header.Patch); !version.Current.Compatible(from) {
		return errors.Wrapf(ErrInvalid, "saved by incompatible emulator %v", from)
	}
	if header.MemSize != memory.Size {
		return errors.Wrapf(ErrInvalid, "memory size 0x%X", header.MemSize)
	}

	image := make([]byte, memory.Size)
	if _, err := io.ReadFull(snappy.NewReader(r), image); err != nil {
		return errors.Wrap(err, "failed to read memory")
	}

	if err := p.GetMemory().Load(0, image); err != nil {
		return err
	}
	regs := p.GetRegisters()
	regs.SetValues(header.Regs)
	regs.IP = header.IP
	regs.Flags.Store(header.Flags)
	p.SetPendingCycles(header.PendingCycles)
	return nil
}

func SaveFile(fs afero.Fs, name string, p processor.Processor) error {
	fp, err := fs.Create(name)
	if err != nil {
		return err
	}
	if err := Save(fp, p); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

func LoadFile(fs afero.Fs, name string, p Target) error {
	fp, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer fp.Close()
	return errors.Wrap(Load(fp, p), name)
}
