// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

func registerControl(s *InstructionSet) {
	registerBranch(s)
	registerDBcc(s)
	registerScc(s)

	s.addEA(0x4ec0, eaControl, "JMP", 0, FmtEA, 4, (*CPU).opJMP)
	s.addEA(0x4e80, eaControl, "JSR", 0, FmtEA, 12, (*CPU).opJSR)
	s.add(0x4e75, "RTS", 0, FmtNone, 16, (*CPU).opRTS)
	s.add(0x4e77, "RTR", 0, FmtNone, 20, (*CPU).opRTR)
	s.add(0x4e76, "TRAPV", 0, FmtNone, 4, (*CPU).opTRAPV)
	s.add(0x4e71, "NOP", 0, FmtNone, 4, (*CPU).opNOP)
	for n := uint16(0); n < 16; n++ {
		s.add(0x4e40|n, "TRAP", 0, FmtTrap, 4, (*CPU).opTRAP)
	}
}

// condition evaluates one of the 16 condition codes against the status
// register.
func (cpu *CPU) condition(cc int) bool {
	sr := cpu.Reg.SR
	c := sr&CarryBit != 0
	v := sr&OverflowBit != 0
	z := sr&ZeroBit != 0
	n := sr&NegativeBit != 0

	switch cc {
	case 0x0: // T
		return true
	case 0x1: // F
		return false
	case 0x2: // HI
		return !c && !z
	case 0x3: // LS
		return c || z
	case 0x4: // CC
		return !c
	case 0x5: // CS
		return c
	case 0x6: // NE
		return !z
	case 0x7: // EQ
		return z
	case 0x8: // VC
		return !v
	case 0x9: // VS
		return v
	case 0xa: // PL
		return !n
	case 0xb: // MI
		return n
	case 0xc: // GE
		return n == v
	case 0xd: // LT
		return n != v
	case 0xe: // GT
		return !z && n == v
	default: // LE
		return z || n != v
	}
}

// Bcc, BRA and BSR
// Encoding: 0110 CCCC dddddddd, where a zero displacement means a 16-bit
// displacement follows
func registerBranch(s *InstructionSet) {
	for cc := uint16(0); cc < 16; cc++ {
		name := "B" + conditionNames[cc]
		fn, cycles := (*CPU).opBcc, 10
		switch cc {
		case 0:
			name = "BRA"
			fn = (*CPU).opBRA
		case 1:
			name, cycles = "BSR", 18
			fn = (*CPU).opBSR
		}

		for d := uint16(0); d < 256; d++ {
			sz := Byte
			if d == 0 {
				sz = Word
			}
			s.add(0x6000|cc<<8|d, name, sz, FmtBranch, cycles, fn)
		}
	}
}

// branchTarget computes the destination of a relative branch. The base is
// the address just past the opcode word.
func (cpu *CPU) branchTarget(inst *Instruction) uint32 {
	base := cpu.Reg.PC
	if d := inst.Opcode & 0xff; d != 0 {
		return base + signExtend(uint32(d), Byte)
	}
	return base + signExtend(uint32(cpu.fetchWord()), Word)
}

// Branch always
func (cpu *CPU) opBRA(inst *Instruction) {
	cpu.Reg.PC = cpu.branchTarget(inst)
}

// Branch to subroutine
func (cpu *CPU) opBSR(inst *Instruction) {
	target := cpu.branchTarget(inst)
	cpu.push(Long, cpu.Reg.PC)
	cpu.Reg.PC = target
}

// Branch conditionally
func (cpu *CPU) opBcc(inst *Instruction) {
	target := cpu.branchTarget(inst)
	if cpu.condition(int(inst.Opcode>>8) & 15) {
		cpu.Reg.PC = target
		return
	}
	cpu.Cycles -= 2
}

// DBcc Dn,<label>
// Encoding: 0101 CCCC 1100 1DDD
func registerDBcc(s *InstructionSet) {
	for cc := uint16(0); cc < 16; cc++ {
		for dn := uint16(0); dn < 8; dn++ {
			s.add(0x50c8|cc<<8|dn, "DB"+conditionNames[cc], Word, FmtDbcc, 10, (*CPU).opDBcc)
		}
	}
}

// Test condition, decrement and branch. The loop ends when the condition
// is true or the counter reaches -1.
func (cpu *CPU) opDBcc(inst *Instruction) {
	base := cpu.Reg.PC
	disp := signExtend(uint32(cpu.fetchWord()), Word)
	if cpu.condition(int(inst.Opcode>>8) & 15) {
		return
	}

	dn := inst.eaReg()
	count := uint16(cpu.Reg.D[dn]) - 1
	cpu.Reg.D[dn] = cpu.Reg.D[dn]&0xffff0000 | uint32(count)
	if count != 0xffff {
		cpu.Reg.PC = base + disp
	}
}

// Scc <ea>
// Encoding: 0101 CCCC 11 mmm rrr
func registerScc(s *InstructionSet) {
	for cc := uint16(0); cc < 16; cc++ {
		s.addEA(0x50c0|cc<<8, eaDataAlterable, "S"+conditionNames[cc], Byte, FmtEA, 4, (*CPU).opScc)
	}
}

// Set according to condition
func (cpu *CPU) opScc(inst *Instruction) {
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), Byte)
	var v uint32
	if cpu.condition(int(inst.Opcode>>8) & 15) {
		v = 0xff
	}
	cpu.write(dst, Byte, v)
}

// Jump
func (cpu *CPU) opJMP(inst *Instruction) {
	cpu.Reg.PC = cpu.effectiveAddress(inst.eaMode(), inst.eaReg())
}

// Jump to subroutine
func (cpu *CPU) opJSR(inst *Instruction) {
	target := cpu.effectiveAddress(inst.eaMode(), inst.eaReg())
	cpu.push(Long, cpu.Reg.PC)
	cpu.Reg.PC = target
}

// Return from subroutine
func (cpu *CPU) opRTS(inst *Instruction) {
	cpu.Reg.PC = cpu.pop(Long)
}

// Return and restore condition codes
func (cpu *CPU) opRTR(inst *Instruction) {
	ccr := cpu.pop(Word)
	cpu.Reg.SetCCR(byte(ccr))
	cpu.Reg.PC = cpu.pop(Long)
}

// Trap through vectors 32-47. The stacked PC is the following instruction.
func (cpu *CPU) opTRAP(inst *Instruction) {
	cpu.exception(VectorTrap + int(inst.Opcode&15))
}

// Trap on overflow
func (cpu *CPU) opTRAPV(inst *Instruction) {
	if cpu.Reg.SR&OverflowBit != 0 {
		cpu.exception(VectorTRAPV)
	}
}

// No operation
func (cpu *CPU) opNOP(inst *Instruction) {
}
