// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

var bitNames = [4]string{"BTST", "BCHG", "BCLR", "BSET"}

// BTST, BCHG, BCLR and BSET
// Dynamic encoding: 0000 DDD 1TT mmm rrr
// Static encoding:  0000 100 0TT mmm rrr, followed by the bit number word
func registerBit(s *InstructionSet) {
	for t := uint16(0); t < 4; t++ {
		mask := eaDataAlterable
		if t == 0 {
			mask = eaData
		}
		cycles := 4 + 2*int(boolToUint32(t != 0))

		for dn := uint16(0); dn < 8; dn++ {
			base := 0x0100 | dn<<9 | t<<6
			for r := uint16(0); r < 8; r++ {
				s.add(base|r, bitNames[t]+".L", Long, FmtDnToEA, cycles+2, (*CPU).opBitDynamic)
			}
			forEachEA(mask&^eaDn, func(mode, reg int) {
				op := base | uint16(mode<<3|reg)
				s.add(op, bitNames[t]+".B", Byte, FmtDnToEA, cycles+eaTime(mode, reg, Byte), (*CPU).opBitDynamic)
			})
		}

		base := 0x0800 | t<<6
		for r := uint16(0); r < 8; r++ {
			s.add(base|r, bitNames[t]+".L", Long, FmtBitImm, cycles+6, (*CPU).opBitStatic)
		}
		forEachEA(mask&^(eaDn|eaImm), func(mode, reg int) {
			op := base | uint16(mode<<3|reg)
			s.add(op, bitNames[t]+".B", Byte, FmtBitImm, cycles+4+eaTime(mode, reg, Byte), (*CPU).opBitStatic)
		})
	}
}

// Bit operation with the bit number in a data register
func (cpu *CPU) opBitDynamic(inst *Instruction) {
	cpu.bitOp(inst, cpu.Reg.D[inst.reg9()])
}

// Bit operation with an immediate bit number
func (cpu *CPU) opBitStatic(inst *Instruction) {
	cpu.bitOp(inst, uint32(cpu.fetchWord()))
}

// bitOp tests a bit, setting Z if it was clear, and then changes, clears
// or sets it. Register operands use bits 0-31, memory operands bits 0-7.
func (cpu *CPU) bitOp(inst *Instruction, bit uint32) {
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), inst.Size)
	bit %= inst.Size.bits()
	v := cpu.read(dst, inst.Size)
	m := uint32(1) << bit

	cpu.Reg.SR = setBit(cpu.Reg.SR, ZeroBit, v&m == 0)

	switch inst.Opcode >> 6 & 3 {
	case 0:
		return
	case 1:
		v ^= m
	case 2:
		v &^= m
	case 3:
		v |= m
	}
	cpu.write(dst, inst.Size, v)
}
