// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// A shiftFunc shifts or rotates v by count bits.
type shiftFunc func(sz Size, v, count uint32, sr uint16) (uint32, uint16)

// Shift and rotate operations, indexed by type field and then direction.
var shiftOps = [4][2]struct {
	name string
	fn   shiftFunc
}{
	{{"ASR", Asr}, {"ASL", Asl}},
	{{"LSR", Lsr}, {"LSL", Lsl}},
	{{"ROXR", Roxr}, {"ROXL", Roxl}},
	{{"ROR", Ror}, {"ROL", Rol}},
}

// Register shifts: 1110 CCC dSS iTT RRR, where i selects a register count
// Memory shifts:   1110 0TT d11 mmm rrr, shifting a word by one bit
func registerShift(s *InstructionSet) {
	for t := uint16(0); t < 4; t++ {
		for d := uint16(0); d < 2; d++ {
			name := shiftOps[t][d].name
			for c := uint16(0); c < 8; c++ {
				for _, e := range sizeEncodings {
					cycles := 6
					if e.sz == Long {
						cycles = 8
					}
					for i := uint16(0); i < 2; i++ {
						for r := uint16(0); r < 8; r++ {
							op := 0xe000 | c<<9 | d<<8 | e.bits<<6 | i<<5 | t<<3 | r
							s.add(op, name+e.sz.String(), e.sz, FmtShiftReg, cycles, (*CPU).opShiftReg)
						}
					}
				}
			}
			s.addEA(0xe0c0|t<<9|d<<8, eaMemoryAlterable, name+".W", Word, FmtEA, 8, (*CPU).opShiftMem)
		}
	}
}

// Shift or rotate a data register. Immediate counts run 1-8; register
// counts are taken modulo 64.
func (cpu *CPU) opShiftReg(inst *Instruction) {
	count := uint32(inst.reg9())
	if inst.Opcode&0x20 != 0 {
		count = cpu.Reg.D[count] & 63
	} else if count == 0 {
		count = 8
	}

	op := shiftOps[inst.Opcode>>3&3][inst.Opcode>>8&1]
	r := inst.eaReg()
	m := inst.Size.Mask()
	res, sr := op.fn(inst.Size, cpu.Reg.D[r], count, cpu.Reg.SR)
	cpu.Reg.D[r] = cpu.Reg.D[r]&^m | res
	cpu.Reg.SR = sr
	cpu.Cycles += 2 * uint64(count)
}

// Shift or rotate a memory word by one bit
func (cpu *CPU) opShiftMem(inst *Instruction) {
	op := shiftOps[inst.Opcode>>9&3][inst.Opcode>>8&1]
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), Word)
	res, sr := op.fn(Word, cpu.read(dst, Word), 1, cpu.Reg.SR)
	cpu.write(dst, Word, res)
	cpu.Reg.SR = sr
}
