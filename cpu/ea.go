// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Addressing modes, as encoded in the 3-bit mode field of an effective
// address.
const (
	modeDn      = 0 // Dn
	modeAn      = 1 // An
	modeInd     = 2 // (An)
	modePostInc = 3 // (An)+
	modePreDec  = 4 // -(An)
	modeDisp    = 5 // d16(An)
	modeIndex   = 6 // d8(An,Xn)
	modeOther   = 7 // selected by the register field
)

// Mode 7 register field values
const (
	regAbsW    = 0 // abs.W
	regAbsL    = 1 // abs.L
	regPCDisp  = 2 // d16(PC)
	regPCIndex = 3 // d8(PC,Xn)
	regImm     = 4 // #imm
)

// Effective address classes, one bit per addressing mode slot. Used by the
// instruction set builder to enumerate legal encodings.
const (
	eaDn = 1 << iota
	eaAn
	eaInd
	eaPostInc
	eaPreDec
	eaDisp
	eaIndexed
	eaAbsW
	eaAbsL
	eaPCDisp
	eaPCIndex
	eaImm

	eaAll              = 1<<12 - 1
	eaData             = eaAll &^ eaAn
	eaMemory           = eaAll &^ (eaDn | eaAn)
	eaControl          = eaInd | eaDisp | eaIndexed | eaAbsW | eaAbsL | eaPCDisp | eaPCIndex
	eaAlterable        = eaDn | eaAn | eaInd | eaPostInc | eaPreDec | eaDisp | eaIndexed | eaAbsW | eaAbsL
	eaDataAlterable    = eaAlterable &^ eaAn
	eaMemoryAlterable  = eaAlterable &^ (eaDn | eaAn)
	eaControlAlterable = eaControl &^ (eaPCDisp | eaPCIndex)
)

// Effective address calculation times from the 68000 timing tables,
// indexed by slot: byte/word, long.
var eaCycles = [12][2]byte{
	{0, 0},   // Dn
	{0, 0},   // An
	{4, 8},   // (An)
	{4, 8},   // (An)+
	{6, 10},  // -(An)
	{8, 12},  // d16(An)
	{10, 14}, // d8(An,Xn)
	{8, 12},  // abs.W
	{12, 16}, // abs.L
	{8, 12},  // d16(PC)
	{10, 14}, // d8(PC,Xn)
	{4, 8},   // #imm
}

// eaSlot maps a mode/register pair onto one of the 12 addressing mode
// slots. Undefined mode 7 encodings return -1.
func eaSlot(mode, reg int) int {
	switch {
	case mode < modeOther:
		return mode
	case reg <= regImm:
		return modeOther + reg
	default:
		return -1
	}
}

func eaTime(mode, reg int, sz Size) int {
	s := eaSlot(mode, reg)
	if s < 0 {
		return 0
	}
	if sz == Long {
		return int(eaCycles[s][1])
	}
	return int(eaCycles[s][0])
}

// forEachEA calls fn for every mode/register pair in the class mask.
func forEachEA(mask int, fn func(mode, reg int)) {
	for mode := 0; mode < 8; mode++ {
		for reg := 0; reg < 8; reg++ {
			s := eaSlot(mode, reg)
			if s >= 0 && mask&(1<<s) != 0 {
				fn(mode, reg)
			}
		}
	}
}

type operandKind byte

const (
	opndDataReg operandKind = iota
	opndAddrReg
	opndMemory
	opndImmediate
)

// An operand is a resolved effective address. Resolving consumes extension
// words and performs any register adjustment exactly once, so a
// read-modify-write instruction reads and writes the same location.
type operand struct {
	kind    operandKind
	reg     int
	addr    uint32 // memory address, or the value of an immediate
	program bool   // PC-relative operands are program space reads
}

// stepSize returns the (An)+ and -(An) adjustment. A7 always moves by at
// least 2 to keep the stack word aligned.
func stepSize(reg int, sz Size) uint32 {
	if sz == Byte && reg == 7 {
		return 2
	}
	return uint32(sz)
}

// resolve computes the operand location for the effective address.
func (cpu *CPU) resolve(mode, reg int, sz Size) operand {
	switch mode {
	case modeDn:
		return operand{kind: opndDataReg, reg: reg}

	case modeAn:
		if sz == Byte {
			cpu.raise(VectorIllegal)
		}
		return operand{kind: opndAddrReg, reg: reg}

	case modeInd:
		return operand{kind: opndMemory, addr: cpu.Reg.A[reg]}

	case modePostInc:
		addr := cpu.Reg.A[reg]
		cpu.Reg.A[reg] += stepSize(reg, sz)
		return operand{kind: opndMemory, addr: addr}

	case modePreDec:
		cpu.Reg.A[reg] -= stepSize(reg, sz)
		return operand{kind: opndMemory, addr: cpu.Reg.A[reg]}

	case modeDisp, modeIndex:
		return operand{kind: opndMemory, addr: cpu.effectiveAddress(mode, reg)}

	case modeOther:
		switch reg {
		case regAbsW, regAbsL:
			return operand{kind: opndMemory, addr: cpu.effectiveAddress(mode, reg)}
		case regPCDisp, regPCIndex:
			return operand{kind: opndMemory, addr: cpu.effectiveAddress(mode, reg), program: true}
		case regImm:
			return operand{kind: opndImmediate, addr: cpu.fetchImmediate(sz)}
		}
	}

	cpu.raise(VectorIllegal)
	return operand{}
}

// effectiveAddress computes the address for a control addressing mode
// without accessing the operand. Used by LEA, PEA, JMP, JSR and MOVEM.
func (cpu *CPU) effectiveAddress(mode, reg int) uint32 {
	switch mode {
	case modeInd:
		return cpu.Reg.A[reg]
	case modeDisp:
		d := signExtend(uint32(cpu.fetchWord()), Word)
		return cpu.Reg.A[reg] + d
	case modeIndex:
		return cpu.indexed(cpu.Reg.A[reg])
	case modeOther:
		switch reg {
		case regAbsW:
			return signExtend(uint32(cpu.fetchWord()), Word)
		case regAbsL:
			return cpu.fetchLong()
		case regPCDisp:
			base := cpu.Reg.PC
			return base + signExtend(uint32(cpu.fetchWord()), Word)
		case regPCIndex:
			return cpu.indexed(cpu.Reg.PC)
		}
	}

	cpu.raise(VectorIllegal)
	return 0
}

// indexed decodes a brief extension word: D/A in bit 15, register in bits
// 12-14, W/L in bit 11 and a signed 8-bit displacement.
func (cpu *CPU) indexed(base uint32) uint32 {
	ext := cpu.fetchWord()
	xn := int(ext>>12) & 7

	var x uint32
	if ext&0x8000 != 0 {
		x = cpu.Reg.A[xn]
	} else {
		x = cpu.Reg.D[xn]
	}
	if ext&0x0800 == 0 {
		x = signExtend(x, Word)
	}
	return base + x + signExtend(uint32(ext), Byte)
}

func (cpu *CPU) fetchImmediate(sz Size) uint32 {
	switch sz {
	case Byte:
		return uint32(cpu.fetchWord()) & 0xff
	case Word:
		return uint32(cpu.fetchWord())
	default:
		return cpu.fetchLong()
	}
}

// read loads the operand value, masked to the operand size.
func (cpu *CPU) read(o operand, sz Size) uint32 {
	switch o.kind {
	case opndDataReg:
		return cpu.Reg.D[o.reg] & sz.Mask()
	case opndAddrReg:
		return cpu.Reg.A[o.reg] & sz.Mask()
	case opndImmediate:
		return o.addr & sz.Mask()
	default:
		return cpu.load(sz, o.addr, o.program)
	}
}

// write stores a value to the operand. Data register writes replace only
// the bits covered by the operand size; address register writes replace the
// whole register with the sign-extended value.
func (cpu *CPU) write(o operand, sz Size, v uint32) {
	switch o.kind {
	case opndDataReg:
		m := sz.Mask()
		cpu.Reg.D[o.reg] = cpu.Reg.D[o.reg]&^m | v&m
	case opndAddrReg:
		cpu.Reg.A[o.reg] = signExtend(v&sz.Mask(), sz)
	case opndImmediate:
		cpu.raise(VectorIllegal)
	default:
		if o.program {
			cpu.raise(VectorIllegal)
		}
		cpu.store(cpu, sz, o.addr, v)
	}
}

// readEA resolves and reads an effective address in one step.
func (cpu *CPU) readEA(mode, reg int, sz Size) uint32 {
	return cpu.read(cpu.resolve(mode, reg, sz), sz)
}
