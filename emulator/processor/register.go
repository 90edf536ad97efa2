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
	"github.com/pkg/errors"
)

const (
	Carry           Flags = 0x001
	Parity          Flags = 0x004
	Adjust          Flags = 0x010
	Zero            Flags = 0x040
	Sign            Flags = 0x080
	Trap            Flags = 0x100
	InterruptEnable Flags = 0x200
	Direction       Flags = 0x400
	Overflow        Flags = 0x800
)

const (
	AllFlags        = Carry | Parity | Adjust | Zero | Sign | Trap | InterruptEnable | Direction | Overflow
	ArithmeticFlags = Carry | Parity | Adjust | Zero | Sign | Overflow
)

// Reserved bit 1 always reads as set.
const reservedFlag = 0x2

// Reset state used for COM-style images.
const (
	LoadSegment uint16 = 0x0700
	LoadOffset  uint16 = 0x0100
	InitialSP   uint16 = 0xFFFE
)

type Flags uint16

func (r *Flags) Get(f Flags) Flags {
	return *r & f
}

func (r *Flags) GetBool(f Flags) bool {
	return r.Get(f) != 0
}

func (r *Flags) Set(f Flags) {
	*r |= f
}

func (r *Flags) SetBool(f Flags, b bool) {
	if b {
		r.Set(f)
		return
	}
	r.Clear(f)
}

func (r *Flags) Clear(f Flags) {
	*r &= ^f
}

func (r *Flags) Store(f uint16) {
	*r = (Flags(f) & AllFlags) | reservedFlag
}

func (r *Flags) Load() uint16 {
	return uint16((*r & AllFlags) | reservedFlag)
}

type Registers struct {
	ax, cx, dx, bx,
	sp, bp, si, di,
	es, cs, ss, ds uint16

	Flags

	IP uint16
}

func (r *Registers) Reset() {
	*r = Registers{
		sp: InitialSP,
		cs: LoadSegment,
		ds: LoadSegment,
		es: LoadSegment,
		IP: LoadOffset,
	}
	r.Flags.Store(0)
}

// Reg16 reads a register by its 3-bit word selector (AX,CX,DX,BX,SP,BP,SI,DI).
func (r *Registers) Reg16(sel byte) (uint16, error) {
	switch sel {
	case 0:
		return r.ax, nil
	case 1:
		return r.cx, nil
	case 2:
		return r.dx, nil
	case 3:
		return r.bx, nil
	case 4:
		return r.sp, nil
	case 5:
		return r.bp, nil
	case 6:
		return r.si, nil
	case 7:
		return r.di, nil
	}
	return 0, invalidSelector(sel)
}

func (r *Registers) SetReg16(sel byte, v uint16) error {
	switch sel {
	case 0:
		r.ax = v
	case 1:
		r.cx = v
	case 2:
		r.dx = v
	case 3:
		r.bx = v
	case 4:
		r.sp = v
	case 5:
		r.bp = v
	case 6:
		r.si = v
	case 7:
		r.di = v
	default:
		return invalidSelector(sel)
	}
	return nil
}

// Reg8 reads a register half by its 3-bit byte selector (AL,CL,DL,BL,AH,CH,DH,BH).
func (r *Registers) Reg8(sel byte) (byte, error) {
	if sel > 7 {
		return 0, invalidSelector(sel)
	}
	w := r.byteParent(sel)
	if sel < 4 {
		return LowByte(*w), nil
	}
	return HighByte(*w), nil
}

func (r *Registers) SetReg8(sel byte, v byte) error {
	if sel > 7 {
		return invalidSelector(sel)
	}
	w := r.byteParent(sel)
	if sel < 4 {
		*w = SetLowByte(*w, v)
	} else {
		*w = SetHighByte(*w, v)
	}
	return nil
}

func (r *Registers) byteParent(sel byte) *uint16 {
	switch sel & 3 {
	case 0:
		return &r.ax
	case 1:
		return &r.cx
	case 2:
		return &r.dx
	default:
		return &r.bx
	}
}

// EffectiveAddressBase returns the pre-displacement offset of a memory operand.
// Selector 6 yields BP; the direct-address form (mod 00) is resolved by the decoder.
func (r *Registers) EffectiveAddressBase(sel byte) (uint16, error) {
	switch sel {
	case 0:
		return r.bx + r.si, nil
	case 1:
		return r.bx + r.di, nil
	case 2:
		return r.bp + r.si, nil
	case 3:
		return r.bp + r.di, nil
	case 4:
		return r.si, nil
	case 5:
		return r.di, nil
	case 6:
		return r.bp, nil
	case 7:
		return r.bx, nil
	}
	return 0, invalidSelector(sel)
}

// DefaultSegment returns the segment a memory operand uses without override.
func (r *Registers) DefaultSegment(sel byte) (uint16, error) {
	switch sel {
	case 2, 3, 6:
		return r.ss, nil
	case 0, 1, 4, 5, 7:
		return r.ds, nil
	}
	return 0, invalidSelector(sel)
}

func invalidSelector(sel byte) error {
	return errors.Wrapf(ErrInvalidSelector, "selector %d", sel)
}

func HighByte(w uint16) byte {
	return byte(w >> 8)
}

func LowByte(w uint16) byte {
	return byte(w & 0xFF)
}

func SetHighByte(w uint16, v byte) uint16 {
	return w&0xFF | uint16(v)<<8
}

func SetLowByte(w uint16, v byte) uint16 {
	return w&0xFF00 | uint16(v)
}

func MakeWord(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

func (r *Registers) AL() byte {
	return LowByte(r.ax)
}

func (r *Registers) AH() byte {
	return HighByte(r.ax)
}

func (r *Registers) AX() uint16 {
	return r.ax
}

func (r *Registers) SetAL(v byte) {
	r.ax = SetLowByte(r.ax, v)
}

func (r *Registers) SetAH(v byte) {
	r.ax = SetHighByte(r.ax, v)
}

func (r *Registers) SetAX(v uint16) {
	r.ax = v
}

func (r *Registers) BL() byte {
	return LowByte(r.bx)
}

func (r *Registers) BH() byte {
	return HighByte(r.bx)
}

func (r *Registers) BX() uint16 {
	return r.bx
}

func (r *Registers) SetBL(v byte) {
	r.bx = SetLowByte(r.bx, v)
}

func (r *Registers) SetBH(v byte) {
	r.bx = SetHighByte(r.bx, v)
}

func (r *Registers) SetBX(v uint16) {
	r.bx = v
}

func (r *Registers) CL() byte {
	return LowByte(r.cx)
}

func (r *Registers) CH() byte {
	return HighByte(r.cx)
}

func (r *Registers) CX() uint16 {
	return r.cx
}

func (r *Registers) SetCL(v byte) {
	r.cx = SetLowByte(r.cx, v)
}

func (r *Registers) SetCH(v byte) {
	r.cx = SetHighByte(r.cx, v)
}

func (r *Registers) SetCX(v uint16) {
	r.cx = v
}

func (r *Registers) DL() byte {
	return LowByte(r.dx)
}

func (r *Registers) DH() byte {
	return HighByte(r.dx)
}

func (r *Registers) DX() uint16 {
	return r.dx
}

func (r *Registers) SetDL(v byte) {
	r.dx = SetLowByte(r.dx, v)
}

func (r *Registers) SetDH(v byte) {
	r.dx = SetHighByte(r.dx, v)
}

func (r *Registers) SetDX(v uint16) {
	r.dx = v
}

func (r *Registers) SP() uint16 {
	return r.sp
}

func (r *Registers) SetSP(v uint16) {
	r.sp = v
}

func (r *Registers) BP() uint16 {
	return r.bp
}

func (r *Registers) SetBP(v uint16) {
	r.bp = v
}

func (r *Registers) SI() uint16 {
	return r.si
}

func (r *Registers) SetSI(v uint16) {
	r.si = v
}

func (r *Registers) DI() uint16 {
	return r.di
}

func (r *Registers) SetDI(v uint16) {
	r.di = v
}

func (r *Registers) ES() uint16 {
	return r.es
}

func (r *Registers) SetES(v uint16) {
	r.es = v
}

func (r *Registers) CS() uint16 {
	return r.cs
}

func (r *Registers) SetCS(v uint16) {
	r.cs = v
}

func (r *Registers) SS() uint16 {
	return r.ss
}

func (r *Registers) SetSS(v uint16) {
	r.ss = v
}

func (r *Registers) DS() uint16 {
	return r.ds
}

func (r *Registers) SetDS(v uint16) {
	r.ds = v
}

// GetValues returns AX,CX,DX,BX,SP,BP,SI,DI,ES,CS,SS,DS in that order.
func (r *Registers) GetValues() [12]uint16 {
	return [12]uint16{
		r.ax, r.cx, r.dx, r.bx,
		r.sp, r.bp, r.si, r.di,
		r.es, r.cs, r.ss, r.ds,
	}
}

// SetValues is the inverse of GetValues.
func (r *Registers) SetValues(v [12]uint16) {
	r.ax, r.cx, r.dx, r.bx = v[0], v[1], v[2], v[3]
	r.sp, r.bp, r.si, r.di = v[4], v[5], v[6], v[7]
	r.es, r.cs, r.ss, r.ds = v[8], v[9], v[10], v[11]
}
