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
	"fmt"

	"github.com/pkg/errors"
)

// Size of the real-mode address space.
const Size = 0x100000 // 1MB

var ErrOutOfBounds = errors.New("memory access out of bounds")

type Address uint32

func NewAddress(seg, offset uint16) Address {
	return (Address(seg) << 16) | Address(offset)
}

func (a Address) String() string {
	return fmt.Sprintf("%04X:%04X", a.Segment(), a.Offset())
}

func (a Address) Segment() uint16 {
	return uint16(a >> 16)
}

func (a Address) Offset() uint16 {
	return uint16(a & 0xFFFF)
}

func (a Address) Pointer() Pointer {
	return NewPointer(a.Segment(), a.Offset())
}

func (a Address) AddInt(i int) Address {
	return (Address(a) & 0xFFFF0000) | Address(a.Offset()+uint16(i))
}

// Pointer is a linear address. No 20-bit wraparound is applied, so a
// pointer built from a high segment and offset can exceed the buffer.
type Pointer uint32

func NewPointer(seg, offset uint16) Pointer {
	return Pointer(seg)*0x10 + Pointer(offset)
}

func (p Pointer) String() string {
	return fmt.Sprintf("0x%05X", uint32(p))
}

func (p Pointer) Valid() bool {
	return p < Size
}

// RAM is the flat backing store of the machine.
type RAM struct {
	mem [Size]byte
}

func NewRAM() *RAM {
	return &RAM{}
}

func (m *RAM) Linear(seg, offset uint16) (Pointer, error) {
	p := NewPointer(seg, offset)
	if !p.Valid() {
		return p, errors.Wrapf(ErrOutOfBounds, "%v (%v)", NewAddress(seg, offset), p)
	}
	return p, nil
}

func (m *RAM) ReadByteAt(seg, offset uint16) (byte, error) {
	p, err := m.Linear(seg, offset)
	if err != nil {
		return 0, err
	}
	return m.mem[p], nil
}

func (m *RAM) WriteByteAt(seg, offset uint16, data byte) error {
	p, err := m.Linear(seg, offset)
	if err != nil {
		return err
	}
	m.mem[p] = data
	return nil
}

// ReadWord reads a little-endian word. The high byte is taken from the
// next linear address, not from offset+1 within the segment.
func (m *RAM) ReadWord(seg, offset uint16) (uint16, error) {
	p, err := m.Linear(seg, offset)
	if err != nil {
		return 0, err
	}
	return m.ReadWordPtr(p)
}

func (m *RAM) WriteWord(seg, offset uint16, data uint16) error {
	p, err := m.Linear(seg, offset)
	if err != nil {
		return err
	}
	return m.WriteWordPtr(p, data)
}

func (m *RAM) ReadBytePtr(p Pointer) (byte, error) {
	if !p.Valid() {
		return 0, errors.Wrapf(ErrOutOfBounds, "%v", p)
	}
	return m.mem[p], nil
}

func (m *RAM) ReadWordPtr(p Pointer) (uint16, error) {
	if !(p + 1).Valid() {
		return 0, errors.Wrapf(ErrOutOfBounds, "%v", p+1)
	}
	return uint16(m.mem[p]) | uint16(m.mem[p+1])<<8, nil
}

// WriteWordPtr checks both bytes before storing either of them.
func (m *RAM) WriteWordPtr(p Pointer, data uint16) error {
	if !(p + 1).Valid() {
		return errors.Wrapf(ErrOutOfBounds, "%v", p+1)
	}
	m.mem[p] = byte(data & 0xFF)
	m.mem[p+1] = byte(data >> 8)
	return nil
}

// Slice returns a copy of n bytes starting at p.
func (m *RAM) Slice(p Pointer, n int) ([]byte, error) {
	if n < 0 || uint64(p)+uint64(n) > Size {
		return nil, errors.Wrapf(ErrOutOfBounds, "%v+%d", p, n)
	}
	buf := make([]byte, n)
	copy(buf, m.mem[p:])
	return buf, nil
}

// Load copies data to p. Nothing is written unless the whole range fits.
func (m *RAM) Load(p Pointer, data []byte) error {
	if uint64(p)+uint64(len(data)) > Size {
		return errors.Wrapf(ErrOutOfBounds, "%v+%d", p, len(data))
	}
	copy(m.mem[p:], data)
	return nil
}

// Bytes exposes the whole buffer. Callers must not retain it across
// concurrent use of the owning CPU.
func (m *RAM) Bytes() []byte {
	return m.mem[:]
}

func (m *RAM) Clear() {
	m.mem = [Size]byte{}
}
