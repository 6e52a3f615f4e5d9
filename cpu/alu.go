// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "errors"

// ErrDivideByZero is returned by Divu and Divs when the divisor is zero. The
// CPU converts it into a zero-divide exception.
var ErrDivideByZero = errors.New("divide by zero")

// Size is the operand size of an instruction.
type Size byte

// Operand sizes
const (
	Byte Size = 1
	Word Size = 2
	Long Size = 4
)

// Mask returns the bit mask covering an operand of this size.
func (s Size) Mask() uint32 {
	switch s {
	case Byte:
		return 0xff
	case Word:
		return 0xffff
	default:
		return 0xffffffff
	}
}

func (s Size) msb() uint32 {
	return s.Mask()>>1 + 1
}

func (s Size) bits() uint32 {
	return uint32(s) * 8
}

// String returns the assembler size suffix.
func (s Size) String() string {
	switch s {
	case Byte:
		return ".B"
	case Word:
		return ".W"
	case Long:
		return ".L"
	default:
		return ""
	}
}

// signExtend extends a value of the given size to 32 bits.
func signExtend(v uint32, sz Size) uint32 {
	switch sz {
	case Byte:
		return uint32(int32(int8(v)))
	case Word:
		return uint32(int32(int16(v)))
	default:
		return v
	}
}

const ccrNZVC = NegativeBit | ZeroBit | OverflowBit | CarryBit

// nz sets N and Z from a result, leaving the other bits unchanged.
func nz(sr uint16, sz Size, res uint32) uint16 {
	sr &^= NegativeBit | ZeroBit
	if res&sz.Mask() == 0 {
		sr |= ZeroBit
	}
	if res&sz.msb() != 0 {
		sr |= NegativeBit
	}
	return sr
}

// nzSticky sets N from a result and clears Z if the result is non-zero.
// Z is never set, so a multi-precision chain reports zero only if every
// partial result was zero.
func nzSticky(sr uint16, sz Size, res uint32) uint16 {
	sr = setBit(sr, NegativeBit, res&sz.msb() != 0)
	if res&sz.Mask() != 0 {
		sr &^= ZeroBit
	}
	return sr
}

func extend(sr uint16) uint32 {
	return uint32(sr>>4) & 1
}

// Add computes dst + src and updates X, N, Z, V and C.
func Add(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
	m := sz.Mask()
	src, dst = src&m, dst&m
	sum := uint64(src) + uint64(dst)
	res := uint32(sum) & m
	sr = nz(sr, sz, res)
	sr = setBit(sr, OverflowBit, (^(src^dst)&(src^res))&sz.msb() != 0)
	sr = setBit(sr, CarryBit|ExtendBit, sum > uint64(m))
	return res, sr
}

// Addx computes dst + src + X. Z is only ever cleared.
func Addx(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
	m := sz.Mask()
	src, dst = src&m, dst&m
	sum := uint64(src) + uint64(dst) + uint64(extend(sr))
	res := uint32(sum) & m
	sr = nzSticky(sr, sz, res)
	sr = setBit(sr, OverflowBit, (^(src^dst)&(src^res))&sz.msb() != 0)
	sr = setBit(sr, CarryBit|ExtendBit, sum > uint64(m))
	return res, sr
}

// Sub computes dst - src and updates X, N, Z, V and C.
func Sub(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
	res, sr := sub(sz, src, dst, 0, sr)
	return res, setBit(sr, ExtendBit, sr&CarryBit != 0)
}

// Subx computes dst - src - X. Z is only ever cleared.
func Subx(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
	x := extend(sr)
	z := sr & ZeroBit
	res, sr := sub(sz, src, dst, x, sr)
	sr = sr&^ZeroBit | z
	if res != 0 {
		sr &^= ZeroBit
	}
	return res, setBit(sr, ExtendBit, sr&CarryBit != 0)
}

// Cmp computes dst - src for its flags only. X is left alone.
func Cmp(sz Size, src, dst uint32, sr uint16) uint16 {
	_, sr = sub(sz, src, dst, 0, sr)
	return sr
}

// Neg computes 0 - dst.
func Neg(sz Size, dst uint32, sr uint16) (uint32, uint16) {
	return Sub(sz, dst, 0, sr)
}

// Negx computes 0 - dst - X.
func Negx(sz Size, dst uint32, sr uint16) (uint32, uint16) {
	return Subx(sz, dst, 0, sr)
}

func sub(sz Size, src, dst, x uint32, sr uint16) (uint32, uint16) {
	m := sz.Mask()
	src, dst = src&m, dst&m
	res := (dst - src - x) & m
	sr = nz(sr, sz, res)
	sr = setBit(sr, OverflowBit, ((src^dst)&(dst^res))&sz.msb() != 0)
	sr = setBit(sr, CarryBit, uint64(src)+uint64(x) > uint64(dst))
	return res, sr
}

// Logic sets the flags for a logical result or data move: N and Z from the
// result, V and C cleared.
func Logic(sz Size, res uint32, sr uint16) uint16 {
	return nz(sr, sz, res) &^ (OverflowBit | CarryBit)
}

// Mulu multiplies the low words of src and dst as unsigned values.
func Mulu(src, dst uint32, sr uint16) (uint32, uint16) {
	res := (src & 0xffff) * (dst & 0xffff)
	return res, Logic(Long, res, sr)
}

// Muls multiplies the low words of src and dst as signed values.
func Muls(src, dst uint32, sr uint16) (uint32, uint16) {
	res := uint32(int32(int16(src)) * int32(int16(dst)))
	return res, Logic(Long, res, sr)
}

// Divu divides the 32-bit dst by the low word of src. The result holds the
// remainder in the upper word and the quotient in the lower word. When the
// quotient does not fit in 16 bits V is set and dst is returned unchanged.
func Divu(src, dst uint32, sr uint16) (uint32, uint16, error) {
	divisor := src & 0xffff
	if divisor == 0 {
		return dst, sr &^ CarryBit, ErrDivideByZero
	}

	q, r := dst/divisor, dst%divisor
	if q > 0xffff {
		sr &^= ZeroBit | CarryBit
		sr = setBit(sr, NegativeBit, q&0x80000000 != 0)
		return dst, sr | OverflowBit, nil
	}

	res := r<<16 | q
	return res, Logic(Word, q, sr), nil
}

// Divs divides the signed 32-bit dst by the signed low word of src.
func Divs(src, dst uint32, sr uint16) (uint32, uint16, error) {
	divisor := int64(int16(src))
	if divisor == 0 {
		return dst, sr &^ CarryBit, ErrDivideByZero
	}

	dividend := int64(int32(dst))
	q, r := dividend/divisor, dividend%divisor
	if q < -0x8000 || q > 0x7fff {
		sr &^= ZeroBit | CarryBit
		sr = setBit(sr, NegativeBit, q < 0)
		return dst, sr | OverflowBit, nil
	}

	res := uint32(uint16(r))<<16 | uint32(uint16(q))
	return res, Logic(Word, uint32(q), sr), nil
}

// Abcd adds two packed BCD bytes plus X.
func Abcd(src, dst uint32, sr uint16) (uint32, uint16) {
	res := src&0x0f + dst&0x0f + extend(sr)
	v := ^res
	if res > 9 {
		res += 6
	}
	res += src&0xf0 + dst&0xf0
	c := res > 0x99
	if c {
		res -= 0xa0
	}
	v &= res
	res &= 0xff

	sr = nzSticky(sr, Byte, res)
	sr = setBit(sr, OverflowBit, v&0x80 != 0)
	sr = setBit(sr, CarryBit|ExtendBit, c)
	return res, sr
}

// Sbcd subtracts src and X from dst as packed BCD bytes.
func Sbcd(src, dst uint32, sr uint16) (uint32, uint16) {
	res := dst&0x0f - src&0x0f - extend(sr)
	v := ^res
	if res > 9 {
		res -= 6
	}
	res += dst&0xf0 - src&0xf0
	c := res > 0x99
	if c {
		res += 0xa0
	}
	v &= res
	res &= 0xff

	sr = nzSticky(sr, Byte, res)
	sr = setBit(sr, OverflowBit, v&0x80 != 0)
	sr = setBit(sr, CarryBit|ExtendBit, c)
	return res, sr
}

// Nbcd computes 0 - dst - X as a packed BCD byte.
func Nbcd(dst uint32, sr uint16) (uint32, uint16) {
	res := (0x9a - dst&0xff - extend(sr)) & 0xff
	if res == 0x9a {
		sr &^= OverflowBit | CarryBit | ExtendBit
		return 0, nzSticky(sr, Byte, 0)
	}

	v := ^res
	if res&0x0f == 0x0a {
		res = res&0xf0 + 0x10
	}
	res &= 0xff
	v &= res

	sr = nzSticky(sr, Byte, res)
	sr = setBit(sr, OverflowBit, v&0x80 != 0)
	return res, sr | CarryBit | ExtendBit
}

// Asl shifts left arithmetically. V is set if the sign bit changes at any
// time during the shift.
func Asl(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	m, bits := sz.Mask(), sz.bits()
	v &= m
	sr &^= ccrNZVC
	if count == 0 {
		return v, nz(sr, sz, v)
	}

	var res uint32
	var c, ovf bool
	if count < bits {
		res = (v << count) & m
		c = (v>>(bits-count))&1 != 0
		top := v >> (bits - count - 1)
		all := uint32(1)<<(count+1) - 1
		ovf = top != 0 && top != all
	} else {
		c = count == bits && v&1 != 0
		ovf = v != 0
	}

	sr = setBit(sr, CarryBit|ExtendBit, c)
	sr = setBit(sr, OverflowBit, ovf)
	return res, nz(sr, sz, res)
}

// Asr shifts right arithmetically, replicating the sign bit.
func Asr(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	m, bits := sz.Mask(), sz.bits()
	v &= m
	sr &^= ccrNZVC
	if count == 0 {
		return v, nz(sr, sz, v)
	}

	neg := v&sz.msb() != 0
	var res uint32
	var c bool
	if count < bits {
		res = uint32(int32(signExtend(v, sz))>>count) & m
		c = (v>>(count-1))&1 != 0
	} else {
		if neg {
			res = m
		}
		c = neg
	}

	sr = setBit(sr, CarryBit|ExtendBit, c)
	return res, nz(sr, sz, res)
}

// Lsl shifts left logically.
func Lsl(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	m, bits := sz.Mask(), sz.bits()
	v &= m
	sr &^= ccrNZVC
	if count == 0 {
		return v, nz(sr, sz, v)
	}

	var res uint32
	var c bool
	if count <= bits {
		res = uint32(uint64(v)<<count) & m
		c = (v>>(bits-count))&1 != 0
	}

	sr = setBit(sr, CarryBit|ExtendBit, c)
	return res, nz(sr, sz, res)
}

// Lsr shifts right logically.
func Lsr(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	v &= sz.Mask()
	sr &^= ccrNZVC
	if count == 0 {
		return v, nz(sr, sz, v)
	}

	var res uint32
	var c bool
	if count <= sz.bits() {
		res = uint32(uint64(v) >> count)
		c = (v>>(count-1))&1 != 0
	}

	sr = setBit(sr, CarryBit|ExtendBit, c)
	return res, nz(sr, sz, res)
}

// Rol rotates left. X is not affected.
func Rol(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	m, bits := sz.Mask(), sz.bits()
	v &= m
	sr &^= ccrNZVC
	if count == 0 {
		return v, nz(sr, sz, v)
	}

	r := count % bits
	res := (v<<r | v>>(bits-r)) & m
	sr = setBit(sr, CarryBit, res&1 != 0)
	return res, nz(sr, sz, res)
}

// Ror rotates right. X is not affected.
func Ror(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	m, bits := sz.Mask(), sz.bits()
	v &= m
	sr &^= ccrNZVC
	if count == 0 {
		return v, nz(sr, sz, v)
	}

	r := count % bits
	res := (v>>r | v<<(bits-r)) & m
	sr = setBit(sr, CarryBit, res&sz.msb() != 0)
	return res, nz(sr, sz, res)
}

// Roxl rotates left through the extend bit.
func Roxl(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	m := sz.Mask()
	v &= m
	x := extend(sr)
	sr &^= ccrNZVC
	for r := count % (sz.bits() + 1); r > 0; r-- {
		out := boolToUint32(v&sz.msb() != 0)
		v = (v<<1 | x) & m
		x = out
	}
	sr = setBit(sr, CarryBit, x != 0)
	if count != 0 {
		sr = setBit(sr, ExtendBit, x != 0)
	}
	return v, nz(sr, sz, v)
}

// Roxr rotates right through the extend bit.
func Roxr(sz Size, v, count uint32, sr uint16) (uint32, uint16) {
	v &= sz.Mask()
	x := extend(sr)
	sr &^= ccrNZVC
	for r := count % (sz.bits() + 1); r > 0; r-- {
		out := v & 1
		v = v>>1 | x<<(sz.bits()-1)
		x = out
	}
	sr = setBit(sr, CarryBit, x != 0)
	if count != 0 {
		sr = setBit(sr, ExtendBit, x != 0)
	}
	return v, nz(sr, sz, v)
}
