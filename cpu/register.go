// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Registers contains the state of all 68000 registers.
type Registers struct {
	D       [8]uint32 // data registers
	A       [8]uint32 // address registers; A[7] is the active stack pointer
	PC      uint32    // program counter
	SR      uint16    // status register (system byte + condition codes)
	OtherSP uint32    // the inactive stack pointer (USP in supervisor mode, SSP otherwise)
}

// Bits assigned to the status register
const (
	CarryBit      = 1 << 0
	OverflowBit   = 1 << 1
	ZeroBit       = 1 << 2
	NegativeBit   = 1 << 3
	ExtendBit     = 1 << 4
	IPLMask       = 7 << 8
	SupervisorBit = 1 << 13
	TraceBit      = 1 << 15

	// Only these bits persist in the status register.
	SRMask = 0xa71f

	// Condition code bits (the user byte of the status register).
	CCRMask = 0x1f
)

// Init initializes all registers. The CPU starts in supervisor mode with
// all interrupts masked.
func (r *Registers) Init() {
	*r = Registers{SR: SupervisorBit | IPLMask}
}

// Supervisor returns true if the status register's supervisor bit is set.
func (r *Registers) Supervisor() bool {
	return r.SR&SupervisorBit != 0
}

// IPL returns the interrupt priority mask.
func (r *Registers) IPL() int {
	return int(r.SR&IPLMask) >> 8
}

// SetSR updates the status register, masking out undefined bits. When the
// supervisor bit flips, A7 and the inactive stack pointer trade places.
func (r *Registers) SetSR(sr uint16) {
	sr &= SRMask
	if (sr^r.SR)&SupervisorBit != 0 {
		r.A[7], r.OtherSP = r.OtherSP, r.A[7]
	}
	r.SR = sr
}

// SetCCR replaces the condition code bits, leaving the system byte alone.
func (r *Registers) SetCCR(ccr byte) {
	r.SR = r.SR&0xff00 | uint16(ccr)&CCRMask
}

// USP returns the user stack pointer regardless of the current mode.
func (r *Registers) USP() uint32 {
	if r.Supervisor() {
		return r.OtherSP
	}
	return r.A[7]
}

// SSP returns the supervisor stack pointer regardless of the current mode.
func (r *Registers) SSP() uint32 {
	if r.Supervisor() {
		return r.A[7]
	}
	return r.OtherSP
}

// SetUSP updates the user stack pointer.
func (r *Registers) SetUSP(v uint32) {
	if r.Supervisor() {
		r.OtherSP = v
	} else {
		r.A[7] = v
	}
}

// SetSSP updates the supervisor stack pointer.
func (r *Registers) SetSSP(v uint32) {
	if r.Supervisor() {
		r.A[7] = v
	} else {
		r.OtherSP = v
	}
}

func (r *Registers) flag(bit uint16) bool {
	return r.SR&bit != 0
}

func boolToUint32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

func setBit(sr uint16, bit uint16, on bool) uint16 {
	if on {
		return sr | bit
	}
	return sr &^ bit
}
