// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// An aluFunc computes a two-operand result and the updated status register.
type aluFunc func(sz Size, src, dst uint32, sr uint16) (uint32, uint16)

func registerArith(s *InstructionSet) {
	registerAddSub(s, 0xd000, "ADD", (*CPU).opADDToReg, (*CPU).opADDToEA, (*CPU).opADDA)
	registerAddSub(s, 0x9000, "SUB", (*CPU).opSUBToReg, (*CPU).opSUBToEA, (*CPU).opSUBA)
	registerImmediate(s, 0x0600, "ADDI", eaDataAlterable, (*CPU).opADDI)
	registerImmediate(s, 0x0400, "SUBI", eaDataAlterable, (*CPU).opSUBI)
	registerImmediate(s, 0x0c00, "CMPI", eaDataAlterable, (*CPU).opCMPI)
	registerQuick(s)
	registerExtended(s, 0xd100, "ADDX", (*CPU).opADDX)
	registerExtended(s, 0x9100, "SUBX", (*CPU).opSUBX)
	registerCMP(s)
	registerMulDiv(s)
	registerUnary(s)
	registerCHK(s)
}

// registerAddSub registers <ea>,Dn, Dn,<ea> and <ea>,An forms.
// Encoding: oooo DDD OOO mmm rrr
func registerAddSub(s *InstructionSet, base uint16, name string, toReg, toEA, toAddr instfunc) {
	for dn := uint16(0); dn < 8; dn++ {
		for _, e := range sizeEncodings {
			srcMask := eaAll
			if e.sz == Byte {
				srcMask = eaData
			}
			cycles := 4
			if e.sz == Long {
				cycles = 6
			}
			s.addEA(base|dn<<9|e.bits<<6, srcMask, name+e.sz.String(), e.sz, FmtEAToDn, cycles, toReg)
			s.addEA(base|dn<<9|(e.bits+4)<<6, eaMemoryAlterable, name+e.sz.String(), e.sz, FmtDnToEA, 2*cycles, toEA)
		}
		s.addEA(base|dn<<9|3<<6, eaAll, name+"A.W", Word, FmtEAToAn, 8, toAddr)
		s.addEA(base|dn<<9|7<<6, eaAll, name+"A.L", Long, FmtEAToAn, 6, toAddr)
	}
}

// aluToReg computes <ea> op Dn -> Dn.
func (cpu *CPU) aluToReg(inst *Instruction, fn aluFunc) {
	src := cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size)
	dn := inst.reg9()
	m := inst.Size.Mask()
	res, sr := fn(inst.Size, src, cpu.Reg.D[dn]&m, cpu.Reg.SR)
	cpu.Reg.D[dn] = cpu.Reg.D[dn]&^m | res
	cpu.Reg.SR = sr
}

// aluToEA computes Dn op <ea> -> <ea>.
func (cpu *CPU) aluToEA(inst *Instruction, fn aluFunc) {
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), inst.Size)
	d := cpu.read(dst, inst.Size)
	res, sr := fn(inst.Size, cpu.Reg.D[inst.reg9()]&inst.Size.Mask(), d, cpu.Reg.SR)
	cpu.write(dst, inst.Size, res)
	cpu.Reg.SR = sr
}

// aluImmediate computes #imm op <ea> -> <ea>. The immediate data precedes
// the destination's extension words.
func (cpu *CPU) aluImmediate(inst *Instruction, fn aluFunc) {
	imm := cpu.fetchImmediate(inst.Size)
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), inst.Size)
	d := cpu.read(dst, inst.Size)
	res, sr := fn(inst.Size, imm, d, cpu.Reg.SR)
	cpu.write(dst, inst.Size, res)
	cpu.Reg.SR = sr
}

// Add
func (cpu *CPU) opADDToReg(inst *Instruction) { cpu.aluToReg(inst, Add) }
func (cpu *CPU) opADDToEA(inst *Instruction)  { cpu.aluToEA(inst, Add) }

// Subtract
func (cpu *CPU) opSUBToReg(inst *Instruction) { cpu.aluToReg(inst, Sub) }
func (cpu *CPU) opSUBToEA(inst *Instruction)  { cpu.aluToEA(inst, Sub) }

// Add address. Condition codes are not affected.
func (cpu *CPU) opADDA(inst *Instruction) {
	src := signExtend(cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size), inst.Size)
	cpu.Reg.A[inst.reg9()] += src
}

// Subtract address. Condition codes are not affected.
func (cpu *CPU) opSUBA(inst *Instruction) {
	src := signExtend(cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size), inst.Size)
	cpu.Reg.A[inst.reg9()] -= src
}

// registerImmediate registers #imm,<ea> forms.
// Encoding: 0000 ooo0 SS mmm rrr
func registerImmediate(s *InstructionSet, base uint16, name string, mask int, fn instfunc) {
	for _, e := range sizeEncodings {
		cycles := 8
		if e.sz == Long {
			cycles = 16
		}
		s.addEA(base|e.bits<<6, mask, name+e.sz.String(), e.sz, FmtImmToEA, cycles, fn)
	}
}

// Add immediate
func (cpu *CPU) opADDI(inst *Instruction) { cpu.aluImmediate(inst, Add) }

// Subtract immediate
func (cpu *CPU) opSUBI(inst *Instruction) { cpu.aluImmediate(inst, Sub) }

// Compare immediate
func (cpu *CPU) opCMPI(inst *Instruction) {
	imm := cpu.fetchImmediate(inst.Size)
	d := cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size)
	cpu.Reg.SR = Cmp(inst.Size, imm, d, cpu.Reg.SR)
}

// ADDQ and SUBQ
// Encoding: 0101 ddd OSS mmm rrr, where a data field of 0 means 8
func registerQuick(s *InstructionSet) {
	for d := uint16(0); d < 8; d++ {
		for _, e := range sizeEncodings {
			mask := eaAlterable
			if e.sz == Byte {
				mask = eaDataAlterable
			}
			cycles := 4
			if e.sz == Long {
				cycles = 8
			}
			s.addEA(0x5000|d<<9|e.bits<<6, mask, "ADDQ"+e.sz.String(), e.sz, FmtQuickToEA, cycles, (*CPU).opADDQ)
			s.addEA(0x5100|d<<9|e.bits<<6, mask, "SUBQ"+e.sz.String(), e.sz, FmtQuickToEA, cycles, (*CPU).opSUBQ)
		}
	}
}

func quickData(opcode uint16) uint32 {
	d := uint32(opcode>>9) & 7
	if d == 0 {
		d = 8
	}
	return d
}

// quick applies ADDQ/SUBQ. Address register destinations are updated as a
// whole and leave the condition codes alone.
func (cpu *CPU) quick(inst *Instruction, fn aluFunc) {
	q := quickData(inst.Opcode)
	if inst.eaMode() == modeAn {
		an := inst.eaReg()
		cpu.Reg.A[an], _ = fn(Long, q, cpu.Reg.A[an], 0)
		return
	}

	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), inst.Size)
	d := cpu.read(dst, inst.Size)
	res, sr := fn(inst.Size, q, d, cpu.Reg.SR)
	cpu.write(dst, inst.Size, res)
	cpu.Reg.SR = sr
}

// Add quick
func (cpu *CPU) opADDQ(inst *Instruction) { cpu.quick(inst, Add) }

// Subtract quick
func (cpu *CPU) opSUBQ(inst *Instruction) { cpu.quick(inst, Sub) }

// registerExtended registers the Dy,Dx and -(Ay),-(Ax) forms used by ADDX,
// SUBX, ABCD and SBCD.
// Encoding: oooo XXX 1SS 00m YYY
func registerExtended(s *InstructionSet, base uint16, name string, fn instfunc) {
	for x := uint16(0); x < 8; x++ {
		for y := uint16(0); y < 8; y++ {
			for _, e := range sizeEncodings {
				cycles := 4
				if e.sz == Long {
					cycles = 8
				}
				op := base | x<<9 | e.bits<<6 | y
				s.add(op, name+e.sz.String(), e.sz, FmtRegPair, cycles, fn)
				s.add(op|1<<3, name+e.sz.String(), e.sz, FmtRegPair, 3*cycles+6, fn)
			}
		}
	}
}

// extended computes Dy op Dx -> Dx or -(Ay) op -(Ax) -> (Ax).
func (cpu *CPU) extended(inst *Instruction, fn aluFunc) {
	x, y := inst.reg9(), inst.eaReg()
	sz := inst.Size

	if inst.Opcode&0x08 == 0 {
		m := sz.Mask()
		res, sr := fn(sz, cpu.Reg.D[y]&m, cpu.Reg.D[x]&m, cpu.Reg.SR)
		cpu.Reg.D[x] = cpu.Reg.D[x]&^m | res
		cpu.Reg.SR = sr
		return
	}

	src := cpu.readEA(modePreDec, y, sz)
	dst := cpu.resolve(modePreDec, x, sz)
	res, sr := fn(sz, src, cpu.read(dst, sz), cpu.Reg.SR)
	cpu.write(dst, sz, res)
	cpu.Reg.SR = sr
}

// Add extended
func (cpu *CPU) opADDX(inst *Instruction) { cpu.extended(inst, Addx) }

// Subtract extended
func (cpu *CPU) opSUBX(inst *Instruction) { cpu.extended(inst, Subx) }

// CMP <ea>,Dn, CMPA <ea>,An and CMPM (Ay)+,(Ax)+
// Encoding: 1011 DDD OOO mmm rrr
func registerCMP(s *InstructionSet) {
	for dn := uint16(0); dn < 8; dn++ {
		for _, e := range sizeEncodings {
			srcMask := eaAll
			if e.sz == Byte {
				srcMask = eaData
			}
			cycles := 4
			if e.sz == Long {
				cycles = 6
			}
			s.addEA(0xb000|dn<<9|e.bits<<6, srcMask, "CMP"+e.sz.String(), e.sz, FmtEAToDn, cycles, (*CPU).opCMP)
			for ay := uint16(0); ay < 8; ay++ {
				op := 0xb108 | dn<<9 | e.bits<<6 | ay
				s.add(op, "CMPM"+e.sz.String(), e.sz, FmtCmpm, 3*cycles, (*CPU).opCMPM)
			}
		}
		s.addEA(0xb0c0|dn<<9, eaAll, "CMPA.W", Word, FmtEAToAn, 6, (*CPU).opCMPA)
		s.addEA(0xb1c0|dn<<9, eaAll, "CMPA.L", Long, FmtEAToAn, 6, (*CPU).opCMPA)
	}
}

// Compare
func (cpu *CPU) opCMP(inst *Instruction) {
	src := cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size)
	cpu.Reg.SR = Cmp(inst.Size, src, cpu.Reg.D[inst.reg9()], cpu.Reg.SR)
}

// Compare address. Word sources are sign-extended and compared as longs.
func (cpu *CPU) opCMPA(inst *Instruction) {
	src := signExtend(cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size), inst.Size)
	cpu.Reg.SR = Cmp(Long, src, cpu.Reg.A[inst.reg9()], cpu.Reg.SR)
}

// Compare memory
func (cpu *CPU) opCMPM(inst *Instruction) {
	src := cpu.readEA(modePostInc, inst.eaReg(), inst.Size)
	dst := cpu.readEA(modePostInc, inst.reg9(), inst.Size)
	cpu.Reg.SR = Cmp(inst.Size, src, dst, cpu.Reg.SR)
}

// MULU, MULS, DIVU and DIVS
// Encoding: 1100 DDD 011 mmm rrr (MULU), 1100 DDD 111 (MULS),
// 1000 DDD 011 (DIVU), 1000 DDD 111 (DIVS)
func registerMulDiv(s *InstructionSet) {
	for dn := uint16(0); dn < 8; dn++ {
		s.addEA(0xc0c0|dn<<9, eaData, "MULU.W", Word, FmtEAToDn, 70, (*CPU).opMULU)
		s.addEA(0xc1c0|dn<<9, eaData, "MULS.W", Word, FmtEAToDn, 70, (*CPU).opMULS)
		s.addEA(0x80c0|dn<<9, eaData, "DIVU.W", Word, FmtEAToDn, 140, (*CPU).opDIVU)
		s.addEA(0x81c0|dn<<9, eaData, "DIVS.W", Word, FmtEAToDn, 158, (*CPU).opDIVS)
	}
}

// Unsigned multiply
func (cpu *CPU) opMULU(inst *Instruction) {
	src := cpu.readEA(inst.eaMode(), inst.eaReg(), Word)
	dn := inst.reg9()
	cpu.Reg.D[dn], cpu.Reg.SR = Mulu(src, cpu.Reg.D[dn], cpu.Reg.SR)
}

// Signed multiply
func (cpu *CPU) opMULS(inst *Instruction) {
	src := cpu.readEA(inst.eaMode(), inst.eaReg(), Word)
	dn := inst.reg9()
	cpu.Reg.D[dn], cpu.Reg.SR = Muls(src, cpu.Reg.D[dn], cpu.Reg.SR)
}

func (cpu *CPU) divide(inst *Instruction, fn func(src, dst uint32, sr uint16) (uint32, uint16, error)) {
	src := cpu.readEA(inst.eaMode(), inst.eaReg(), Word)
	dn := inst.reg9()
	res, sr, err := fn(src, cpu.Reg.D[dn], cpu.Reg.SR)
	cpu.Reg.SR = sr
	if err != nil {
		cpu.exception(VectorZeroDivide)
		return
	}
	cpu.Reg.D[dn] = res
}

// Unsigned divide
func (cpu *CPU) opDIVU(inst *Instruction) { cpu.divide(inst, Divu) }

// Signed divide
func (cpu *CPU) opDIVS(inst *Instruction) { cpu.divide(inst, Divs) }

// NEGX, CLR, NEG, NOT and TST
// Encoding: 0100 oooo SS mmm rrr
func registerUnary(s *InstructionSet) {
	ops := []struct {
		base uint16
		name string
		fn   instfunc
	}{
		{0x4000, "NEGX", (*CPU).opNEGX},
		{0x4200, "CLR", (*CPU).opCLR},
		{0x4400, "NEG", (*CPU).opNEG},
		{0x4600, "NOT", (*CPU).opNOT},
		{0x4a00, "TST", (*CPU).opTST},
	}
	for _, o := range ops {
		for _, e := range sizeEncodings {
			cycles := 4
			if e.sz == Long {
				cycles = 6
			}
			s.addEA(o.base|e.bits<<6, eaDataAlterable, o.name+e.sz.String(), e.sz, FmtEA, cycles, o.fn)
		}
	}
}

// unary applies a single-operand operation in place.
func (cpu *CPU) unary(inst *Instruction, fn func(sz Size, v uint32, sr uint16) (uint32, uint16)) {
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), inst.Size)
	res, sr := fn(inst.Size, cpu.read(dst, inst.Size), cpu.Reg.SR)
	cpu.write(dst, inst.Size, res)
	cpu.Reg.SR = sr
}

// Negate
func (cpu *CPU) opNEG(inst *Instruction) { cpu.unary(inst, Neg) }

// Negate with extend
func (cpu *CPU) opNEGX(inst *Instruction) { cpu.unary(inst, Negx) }

// Logical complement
func (cpu *CPU) opNOT(inst *Instruction) {
	cpu.unary(inst, func(sz Size, v uint32, sr uint16) (uint32, uint16) {
		res := ^v & sz.Mask()
		return res, Logic(sz, res, sr)
	})
}

// Clear an operand
func (cpu *CPU) opCLR(inst *Instruction) {
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), inst.Size)
	cpu.write(dst, inst.Size, 0)
	cpu.Reg.SR = Logic(inst.Size, 0, cpu.Reg.SR)
}

// Test an operand
func (cpu *CPU) opTST(inst *Instruction) {
	v := cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size)
	cpu.Reg.SR = Logic(inst.Size, v, cpu.Reg.SR)
}

// CHK <ea>,Dn
// Encoding: 0100 DDD 110 mmm rrr
func registerCHK(s *InstructionSet) {
	for dn := uint16(0); dn < 8; dn++ {
		s.addEA(0x4180|dn<<9, eaData, "CHK.W", Word, FmtEAToDn, 10, (*CPU).opCHK)
	}
}

// Check register against bounds
func (cpu *CPU) opCHK(inst *Instruction) {
	bound := int16(cpu.readEA(inst.eaMode(), inst.eaReg(), Word))
	v := int16(cpu.Reg.D[inst.reg9()])
	switch {
	case v < 0:
		cpu.Reg.SR |= NegativeBit
		cpu.exception(VectorCHK)
	case v > bound:
		cpu.Reg.SR &^= NegativeBit
		cpu.exception(VectorCHK)
	}
}
