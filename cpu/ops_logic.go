// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

func and(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
	res := src & dst & sz.Mask()
	return res, Logic(sz, res, sr)
}

func or(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
	res := (src | dst) & sz.Mask()
	return res, Logic(sz, res, sr)
}

func eor(sz Size, src, dst uint32, sr uint16) (uint32, uint16) {
	res := (src ^ dst) & sz.Mask()
	return res, Logic(sz, res, sr)
}

func registerLogic(s *InstructionSet) {
	registerAndOr(s, 0xc000, "AND", (*CPU).opANDToReg, (*CPU).opANDToEA)
	registerAndOr(s, 0x8000, "OR", (*CPU).opORToReg, (*CPU).opORToEA)

	// EOR Dn,<ea>
	// Encoding: 1011 DDD 1SS mmm rrr
	for dn := uint16(0); dn < 8; dn++ {
		for _, e := range sizeEncodings {
			cycles := 4
			if e.sz == Long {
				cycles = 8
			}
			s.addEA(0xb100|dn<<9|e.bits<<6, eaDataAlterable, "EOR"+e.sz.String(), e.sz, FmtDnToEA, cycles, (*CPU).opEOR)
		}
	}

	registerImmediate(s, 0x0000, "ORI", eaDataAlterable, (*CPU).opORI)
	registerImmediate(s, 0x0200, "ANDI", eaDataAlterable, (*CPU).opANDI)
	registerImmediate(s, 0x0a00, "EORI", eaDataAlterable, (*CPU).opEORI)

	// Immediate forms targeting the condition codes and the status register
	s.add(0x003c, "ORI", Byte, FmtImmToCCR, 20, (*CPU).opToCCR)
	s.add(0x023c, "ANDI", Byte, FmtImmToCCR, 20, (*CPU).opToCCR)
	s.add(0x0a3c, "EORI", Byte, FmtImmToCCR, 20, (*CPU).opToCCR)
	s.add(0x007c, "ORI", Word, FmtImmToSR, 20, (*CPU).opToSR)
	s.add(0x027c, "ANDI", Word, FmtImmToSR, 20, (*CPU).opToSR)
	s.add(0x0a7c, "EORI", Word, FmtImmToSR, 20, (*CPU).opToSR)
}

// registerAndOr registers the <ea>,Dn and Dn,<ea> forms of AND and OR.
// Encoding: oooo DDD OOO mmm rrr
func registerAndOr(s *InstructionSet, base uint16, name string, toReg, toEA instfunc) {
	for dn := uint16(0); dn < 8; dn++ {
		for _, e := range sizeEncodings {
			cycles := 4
			if e.sz == Long {
				cycles = 6
			}
			s.addEA(base|dn<<9|e.bits<<6, eaData, name+e.sz.String(), e.sz, FmtEAToDn, cycles, toReg)
			s.addEA(base|dn<<9|(e.bits+4)<<6, eaMemoryAlterable, name+e.sz.String(), e.sz, FmtDnToEA, 2*cycles, toEA)
		}
	}
}

// Logical and
func (cpu *CPU) opANDToReg(inst *Instruction) { cpu.aluToReg(inst, and) }
func (cpu *CPU) opANDToEA(inst *Instruction)  { cpu.aluToEA(inst, and) }

// Logical or
func (cpu *CPU) opORToReg(inst *Instruction) { cpu.aluToReg(inst, or) }
func (cpu *CPU) opORToEA(inst *Instruction)  { cpu.aluToEA(inst, or) }

// Exclusive or
func (cpu *CPU) opEOR(inst *Instruction) { cpu.aluToEA(inst, eor) }

// Immediate logical operations
func (cpu *CPU) opANDI(inst *Instruction) { cpu.aluImmediate(inst, and) }
func (cpu *CPU) opORI(inst *Instruction)  { cpu.aluImmediate(inst, or) }
func (cpu *CPU) opEORI(inst *Instruction) { cpu.aluImmediate(inst, eor) }

// logicFunc returns the operation selected by bits 9-11 of an immediate
// logical opcode.
func logicFunc(opcode uint16) aluFunc {
	switch opcode >> 9 & 7 {
	case 0:
		return or
	case 1:
		return and
	default:
		return eor
	}
}

// Logical operation on the condition codes
func (cpu *CPU) opToCCR(inst *Instruction) {
	imm := cpu.fetchImmediate(Byte)
	ccr, _ := logicFunc(inst.Opcode)(Byte, imm, uint32(cpu.Reg.SR&CCRMask), 0)
	cpu.Reg.SetCCR(byte(ccr))
}

// Logical operation on the status register
func (cpu *CPU) opToSR(inst *Instruction) {
	if !cpu.privileged() {
		return
	}
	imm := cpu.fetchImmediate(Word)
	sr, _ := logicFunc(inst.Opcode)(Word, imm, uint32(cpu.Reg.SR), 0)
	cpu.Reg.SetSR(uint16(sr))
}
