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

// Package loader places flat COM-style images in memory at CS:0100.
package loader

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/processor"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// MaxSize is the largest image that fits between the load offset and the end of the segment.
const MaxSize = 0x10000 - int(processor.LoadOffset)

var ErrTooLarge = errors.New("image too large")

// Error reports a failed load. Memory is never modified when it is returned.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Cause() error {
	return e.Err
}

// Image describes a loaded program.
type Image struct {
	Name string
	Base memory.Address
	Size int
}

func (img Image) End() memory.Address {
	return img.Base.AddInt(img.Size)
}

// Load reads name from fs and copies it to CS:0100 of the target.
func Load(fs afero.Fs, name string, p processor.Processor) (Image, error) {
	fp, err := fs.Open(name)
	if err != nil {
		return Image{}, &Error{Name: name, Err: err}
	}
	defer fp.Close()
	return Read(fp, name, p)
}

// Read is like Load but takes the image from r.
func Read(r io.Reader, name string, p processor.Processor) (Image, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Image{}, &Error{Name: name, Err: errors.Wrap(err, "read")}
	}
	if len(data) > MaxSize {
		return Image{}, &Error{Name: name, Err: errors.Wrapf(ErrTooLarge, "%d bytes", len(data))}
	}

	regs := p.GetRegisters()
	base := memory.NewAddress(regs.CS(), processor.LoadOffset)
	if err := p.GetMemory().Load(base.Pointer(), data); err != nil {
		return Image{}, &Error{Name: name, Err: err}
	}

	regs.IP = processor.LoadOffset
	return Image{Name: name, Base: base, Size: len(data)}, nil
}
