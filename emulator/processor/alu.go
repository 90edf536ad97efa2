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

// EvenParity reports whether v has an even number of set bits.
func EvenParity(v byte) bool {
	return parityLookup[v]
}

func Add8(a, b byte) (res byte, overflow, carry, aux bool) {
	return Adc8(a, b, false)
}

func Add16(a, b uint16) (res uint16, overflow, carry, aux bool) {
	return Adc16(a, b, false)
}

func Adc8(a, b byte, carryIn bool) (res byte, overflow, carry, aux bool) {
	c := uint16(b2ui8(carryIn))
	sum := uint16(a) + uint16(b) + c
	res = byte(sum)
	carry = sum > 0xFF
	overflow = (a^res)&(b^res)&0x80 != 0
	aux = uint16(a&0xF)+uint16(b&0xF)+c > 0xF
	return
}

func Adc16(a, b uint16, carryIn bool) (res uint16, overflow, carry, aux bool) {
	c := uint32(b2ui8(carryIn))
	sum := uint32(a) + uint32(b) + c
	res = uint16(sum)
	carry = sum > 0xFFFF
	overflow = (a^res)&(b^res)&0x8000 != 0
	aux = uint32(a&0xF)+uint32(b&0xF)+c > 0xF
	return
}

func Sub8(a, b byte) (res byte, overflow, carry, aux bool) {
	return Sbb8(a, b, false)
}

func Sub16(a, b uint16) (res uint16, overflow, carry, aux bool) {
	return Sbb16(a, b, false)
}

// Sbb8 computes a-b-borrowIn. Carry reports an unsigned borrow and aux a
// borrow out of the low nibble.
func Sbb8(a, b byte, borrowIn bool) (res byte, overflow, carry, aux bool) {
	c := uint16(b2ui8(borrowIn))
	res = byte(uint16(a) - uint16(b) - c)
	carry = uint16(b)+c > uint16(a)
	overflow = (a^b)&(a^res)&0x80 != 0
	aux = uint16(b&0xF)+c > uint16(a&0xF)
	return
}

func Sbb16(a, b uint16, borrowIn bool) (res uint16, overflow, carry, aux bool) {
	c := uint32(b2ui8(borrowIn))
	res = uint16(uint32(a) - uint32(b) - c)
	carry = uint32(b)+c > uint32(a)
	overflow = (a^b)&(a^res)&0x8000 != 0
	aux = uint32(b&0xF)+c > uint32(a&0xF)
	return
}

// ApplyResult8 rewrites CF, PF, AF, ZF, SF and OF for a byte result.
func (r *Flags) ApplyResult8(res byte, overflow, carry, aux bool) {
	r.applyResult(uint16(res), 0x80, overflow, carry, aux)
}

// ApplyResult16 rewrites CF, PF, AF, ZF, SF and OF for a word result.
func (r *Flags) ApplyResult16(res uint16, overflow, carry, aux bool) {
	r.applyResult(res, 0x8000, overflow, carry, aux)
}

func (r *Flags) applyResult(res, signBit uint16, overflow, carry, aux bool) {
	r.Clear(ArithmeticFlags)
	r.applySZP(res, signBit)
	r.SetBool(Carry, carry)
	r.SetBool(Overflow, overflow)
	r.SetBool(Adjust, aux)
}

// ApplyLogic8 clears CF and OF and sets ZF, SF and PF. AF is left as is.
func (r *Flags) ApplyLogic8(res byte) {
	r.Clear(Carry | Overflow)
	r.applySZP(uint16(res), 0x80)
}

func (r *Flags) ApplyLogic16(res uint16) {
	r.Clear(Carry | Overflow)
	r.applySZP(res, 0x8000)
}

func (r *Flags) ApplySZP8(res byte) {
	r.applySZP(uint16(res), 0x80)
}

func (r *Flags) applySZP(res, signBit uint16) {
	r.SetBool(Zero, res == 0)
	r.SetBool(Sign, res&signBit != 0)
	r.SetBool(Parity, EvenParity(byte(res&0xFF)))
}

func b2ui8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
