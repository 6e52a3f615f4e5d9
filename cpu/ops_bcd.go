// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// ABCD, SBCD and NBCD
// Encoding: 1100 XXX 1000 mYYY (ABCD), 1000 XXX 1000 mYYY (SBCD),
// 0100 1000 00 mmm rrr (NBCD)
func registerBCD(s *InstructionSet) {
	for x := uint16(0); x < 8; x++ {
		for y := uint16(0); y < 8; y++ {
			s.add(0xc100|x<<9|y, "ABCD", Byte, FmtRegPair, 6, (*CPU).opABCD)
			s.add(0xc108|x<<9|y, "ABCD", Byte, FmtRegPair, 18, (*CPU).opABCD)
			s.add(0x8100|x<<9|y, "SBCD", Byte, FmtRegPair, 6, (*CPU).opSBCD)
			s.add(0x8108|x<<9|y, "SBCD", Byte, FmtRegPair, 18, (*CPU).opSBCD)
		}
	}
	s.addEA(0x4800, eaDataAlterable, "NBCD", Byte, FmtEA, 6, (*CPU).opNBCD)
}

func bcd(fn func(src, dst uint32, sr uint16) (uint32, uint16)) aluFunc {
	return func(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
		return fn(src, dst, sr)
	}
}

// Add decimal with extend
func (cpu *CPU) opABCD(inst *Instruction) { cpu.extended(inst, bcd(Abcd)) }

// Subtract decimal with extend
func (cpu *CPU) opSBCD(inst *Instruction) { cpu.extended(inst, bcd(Sbcd)) }

// Negate decimal with extend
func (cpu *CPU) opNBCD(inst *Instruction) {
	cpu.unary(inst, func(sz Size, v uint32, sr uint16) (uint32, uint16) {
		return Nbcd(v, sr)
	})
}
