// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

func registerSystem(s *InstructionSet) {
	s.addEA(0x40c0, eaDataAlterable, "MOVE", Word, FmtFromSR, 6, (*CPU).opMOVEFromSR)
	s.addEA(0x44c0, eaData, "MOVE", Word, FmtToCCR, 12, (*CPU).opMOVEToCCR)
	s.addEA(0x46c0, eaData, "MOVE", Word, FmtToSR, 12, (*CPU).opMOVEToSR)

	for an := uint16(0); an < 8; an++ {
		s.add(0x4e60|an, "MOVE", Long, FmtUSP, 4, (*CPU).opMOVEUSP)
		s.add(0x4e68|an, "MOVE", Long, FmtUSP, 4, (*CPU).opMOVEUSP)
	}

	s.add(0x4e73, "RTE", 0, FmtNone, 20, (*CPU).opRTE)
	s.add(0x4e70, "RESET", 0, FmtNone, 132, (*CPU).opRESET)
	s.add(0x4e72, "STOP", 0, FmtImm, 4, (*CPU).opSTOP)
	s.add(0x4afc, "ILLEGAL", 0, FmtNone, 4, (*CPU).opIllegal)
	s.addEA(0x4ac0, eaDataAlterable, "TAS", Byte, FmtEA, 4, (*CPU).opTAS)
}

// Move from the status register. Not privileged on the 68000.
func (cpu *CPU) opMOVEFromSR(inst *Instruction) {
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), Word)
	cpu.write(dst, Word, uint32(cpu.Reg.SR))
}

// Move to the condition codes
func (cpu *CPU) opMOVEToCCR(inst *Instruction) {
	v := cpu.readEA(inst.eaMode(), inst.eaReg(), Word)
	cpu.Reg.SetCCR(byte(v))
}

// Move to the status register
func (cpu *CPU) opMOVEToSR(inst *Instruction) {
	if !cpu.privileged() {
		return
	}
	v := cpu.readEA(inst.eaMode(), inst.eaReg(), Word)
	cpu.Reg.SetSR(uint16(v))
}

// Move to or from the user stack pointer
func (cpu *CPU) opMOVEUSP(inst *Instruction) {
	if !cpu.privileged() {
		return
	}
	an := inst.eaReg()
	if inst.Opcode&0x08 != 0 {
		cpu.Reg.A[an] = cpu.Reg.USP()
	} else {
		cpu.Reg.SetUSP(cpu.Reg.A[an])
	}
}

// Return from exception
func (cpu *CPU) opRTE(inst *Instruction) {
	if !cpu.privileged() {
		return
	}
	sr := cpu.pop(Word)
	pc := cpu.pop(Long)
	cpu.Reg.SetSR(uint16(sr))
	cpu.Reg.PC = pc
}

// Reset external devices. The CPU state is not affected.
func (cpu *CPU) opRESET(inst *Instruction) {
	if !cpu.privileged() {
		return
	}
	log.WithField("pc", cpu.LastPC).Debug("reset instruction")
}

// Load the status register and stop until an interrupt arrives
func (cpu *CPU) opSTOP(inst *Instruction) {
	if !cpu.privileged() {
		return
	}
	sr := cpu.fetchWord()
	cpu.Reg.SetSR(sr)
	cpu.Stop(WakeMask(cpu.Reg.IPL()))
}

// WakeMask returns the set of interrupt levels, bit n for level n, that end
// a stop entered with the given priority mask.
func WakeMask(ipl int) byte {
	return byte(0xff<<(ipl+1)) | 0x80
}

// Test and set an operand
func (cpu *CPU) opTAS(inst *Instruction) {
	dst := cpu.resolve(inst.eaMode(), inst.eaReg(), Byte)
	v := cpu.read(dst, Byte)
	cpu.Reg.SR = Logic(Byte, v, cpu.Reg.SR)
	cpu.write(dst, Byte, v|0x80)
}
