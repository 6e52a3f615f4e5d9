// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

func registerMove(s *InstructionSet) {
	registerMOVE(s)
	registerMOVEQ(s)
	registerMOVEM(s)
	registerMOVEP(s)
	registerLEA(s)
	registerPEA(s)
	registerEXG(s)
	registerSWAP(s)
	registerEXT(s)
	registerLINK(s)
}

// moveSizes maps the MOVE size field (bits 12-13) to operand sizes.
var moveSizes = []struct {
	bits uint16
	sz   Size
}{
	{1, Byte},
	{3, Word},
	{2, Long},
}

// MOVE <ea>,<ea> and MOVEA <ea>,An
// Encoding: 00SS RRR MMM mmm rrr (destination register/mode, source mode/register)
func registerMOVE(s *InstructionSet) {
	for _, e := range moveSizes {
		srcMask := eaAll
		if e.sz == Byte {
			srcMask = eaData
		}
		forEachEA(srcMask, func(srcMode, srcReg int) {
			src := eaTime(srcMode, srcReg, e.sz)
			forEachEA(eaDataAlterable, func(dstMode, dstReg int) {
				opcode := e.bits<<12 | uint16(dstReg<<9|dstMode<<6|srcMode<<3|srcReg)
				dst := eaTime(dstMode, dstReg, e.sz)
				if dstMode == modePreDec {
					dst -= 2
				}
				s.add(opcode, "MOVE"+e.sz.String(), e.sz, FmtMove, 4+src+dst, (*CPU).opMOVE)
			})
			if e.sz != Byte {
				for an := 0; an < 8; an++ {
					opcode := e.bits<<12 | uint16(an<<9|modeAn<<6|srcMode<<3|srcReg)
					s.add(opcode, "MOVEA"+e.sz.String(), e.sz, FmtEAToAn, 4+src, (*CPU).opMOVEA)
				}
			}
		})
	}
}

// Move data
func (cpu *CPU) opMOVE(inst *Instruction) {
	v := cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size)
	dstMode, dstReg := int(inst.Opcode>>6)&7, inst.reg9()
	dst := cpu.resolve(dstMode, dstReg, inst.Size)
	cpu.write(dst, inst.Size, v)
	cpu.Reg.SR = Logic(inst.Size, v, cpu.Reg.SR)
}

// Move address
func (cpu *CPU) opMOVEA(inst *Instruction) {
	v := cpu.readEA(inst.eaMode(), inst.eaReg(), inst.Size)
	cpu.Reg.A[inst.reg9()] = signExtend(v, inst.Size)
}

// MOVEQ #d8,Dn
// Encoding: 0111 DDD 0 dddddddd
func registerMOVEQ(s *InstructionSet) {
	for dn := uint16(0); dn < 8; dn++ {
		for d := uint16(0); d < 256; d++ {
			s.add(0x7000|dn<<9|d, "MOVEQ", Long, FmtMoveq, 4, (*CPU).opMOVEQ)
		}
	}
}

// Move quick
func (cpu *CPU) opMOVEQ(inst *Instruction) {
	v := signExtend(uint32(inst.Opcode), Byte)
	cpu.Reg.D[inst.reg9()] = v
	cpu.Reg.SR = Logic(Long, v, cpu.Reg.SR)
}

// MOVEM <list>,<ea> and MOVEM <ea>,<list>
// Encoding: 0100 1D00 1S mmm rrr, followed by the register mask
func registerMOVEM(s *InstructionSet) {
	for _, sz := range []Size{Word, Long} {
		var szBit uint16
		if sz == Long {
			szBit = 1 << 6
		}
		s.addEA(0x4880|szBit, eaControlAlterable|eaPreDec, "MOVEM"+sz.String(), sz, FmtMovem, 8, (*CPU).opMOVEMToMem)
		s.addEA(0x4c80|szBit, eaControl|eaPostInc, "MOVEM"+sz.String(), sz, FmtMovem, 12, (*CPU).opMOVEMToReg)
	}
}

// regValue returns register n of the combined D0-D7/A0-A7 list.
func (cpu *CPU) regValue(n int) uint32 {
	if n < 8 {
		return cpu.Reg.D[n]
	}
	return cpu.Reg.A[n-8]
}

func (cpu *CPU) setRegValue(n int, v uint32) {
	if n < 8 {
		cpu.Reg.D[n] = v
	} else {
		cpu.Reg.A[n-8] = v
	}
}

// Move multiple registers to memory
func (cpu *CPU) opMOVEMToMem(inst *Instruction) {
	mask := cpu.fetchWord()
	mode, reg := inst.eaMode(), inst.eaReg()
	sz := inst.Size
	count := 0

	if mode == modePreDec {
		// The mask is reversed: bit 0 selects A7 and bit 15 selects D0.
		// The address register is stored with its initial value.
		addr := cpu.Reg.A[reg]
		for i := 0; i < 16; i++ {
			if mask&(1<<i) != 0 {
				addr -= uint32(sz)
				cpu.store(cpu, sz, addr, cpu.regValue(15-i))
				count++
			}
		}
		cpu.Reg.A[reg] = addr
	} else {
		addr := cpu.effectiveAddress(mode, reg)
		for i := 0; i < 16; i++ {
			if mask&(1<<i) != 0 {
				cpu.store(cpu, sz, addr, cpu.regValue(i))
				addr += uint32(sz)
				count++
			}
		}
	}

	cpu.Cycles += uint64(count * int(sz) * 2)
}

// Move multiple registers from memory. Words are sign-extended to 32 bits.
func (cpu *CPU) opMOVEMToReg(inst *Instruction) {
	mask := cpu.fetchWord()
	mode, reg := inst.eaMode(), inst.eaReg()
	sz := inst.Size

	var addr uint32
	if mode == modePostInc {
		addr = cpu.Reg.A[reg]
	} else {
		addr = cpu.effectiveAddress(mode, reg)
	}

	count := 0
	for i := 0; i < 16; i++ {
		if mask&(1<<i) != 0 {
			v := signExtend(cpu.load(sz, addr, false), sz)
			cpu.setRegValue(i, v)
			addr += uint32(sz)
			count++
		}
	}

	if mode == modePostInc {
		cpu.Reg.A[reg] = addr
	}
	cpu.Cycles += uint64(count * int(sz) * 2)
}

// MOVEP Dx,d16(Ay) and MOVEP d16(Ay),Dx
// Encoding: 0000 DDD 1OO 001 AAA
func registerMOVEP(s *InstructionSet) {
	for dn := uint16(0); dn < 8; dn++ {
		for ay := uint16(0); ay < 8; ay++ {
			base := dn<<9 | 1<<3 | ay
			s.add(base|4<<6, "MOVEP.W", Word, FmtMovep, 16, (*CPU).opMOVEP)
			s.add(base|5<<6, "MOVEP.L", Long, FmtMovep, 24, (*CPU).opMOVEP)
			s.add(base|6<<6, "MOVEP.W", Word, FmtMovep, 16, (*CPU).opMOVEP)
			s.add(base|7<<6, "MOVEP.L", Long, FmtMovep, 24, (*CPU).opMOVEP)
		}
	}
}

// Move peripheral data, one byte to every other address
func (cpu *CPU) opMOVEP(inst *Instruction) {
	addr := cpu.Reg.A[inst.eaReg()] + signExtend(uint32(cpu.fetchWord()), Word)
	dn := inst.reg9()
	n := int(inst.Size)

	if inst.Opcode&0x80 != 0 {
		v := cpu.Reg.D[dn]
		for i := n - 1; i >= 0; i-- {
			cpu.store(cpu, Byte, addr, v>>(uint(i)*8))
			addr += 2
		}
		return
	}

	var v uint32
	for i := 0; i < n; i++ {
		v = v<<8 | cpu.load(Byte, addr, false)
		addr += 2
	}
	m := inst.Size.Mask()
	cpu.Reg.D[dn] = cpu.Reg.D[dn]&^m | v
}

// LEA <ea>,An
// Encoding: 0100 AAA 111 mmm rrr
func registerLEA(s *InstructionSet) {
	for an := uint16(0); an < 8; an++ {
		s.addEA(0x41c0|an<<9, eaControl, "LEA", Long, FmtEAToAn, 0, (*CPU).opLEA)
	}
}

// Load effective address
func (cpu *CPU) opLEA(inst *Instruction) {
	cpu.Reg.A[inst.reg9()] = cpu.effectiveAddress(inst.eaMode(), inst.eaReg())
}

// PEA <ea>
// Encoding: 0100 1000 01 mmm rrr
func registerPEA(s *InstructionSet) {
	s.addEA(0x4840, eaControl, "PEA", Long, FmtEA, 8, (*CPU).opPEA)
}

// Push effective address
func (cpu *CPU) opPEA(inst *Instruction) {
	addr := cpu.effectiveAddress(inst.eaMode(), inst.eaReg())
	cpu.push(Long, addr)
}

// EXG Rx,Ry
// Encoding: 1100 XXX 1 OOOOO YYY
func registerEXG(s *InstructionSet) {
	for x := uint16(0); x < 8; x++ {
		for y := uint16(0); y < 8; y++ {
			s.add(0xc140|x<<9|y, "EXG", Long, FmtExg, 6, (*CPU).opEXG)
			s.add(0xc148|x<<9|y, "EXG", Long, FmtExg, 6, (*CPU).opEXG)
			s.add(0xc188|x<<9|y, "EXG", Long, FmtExg, 6, (*CPU).opEXG)
		}
	}
}

// Exchange registers
func (cpu *CPU) opEXG(inst *Instruction) {
	x, y := inst.reg9(), inst.eaReg()
	switch (inst.Opcode >> 3) & 0x1f {
	case 0x08:
		cpu.Reg.D[x], cpu.Reg.D[y] = cpu.Reg.D[y], cpu.Reg.D[x]
	case 0x09:
		cpu.Reg.A[x], cpu.Reg.A[y] = cpu.Reg.A[y], cpu.Reg.A[x]
	default:
		cpu.Reg.D[x], cpu.Reg.A[y] = cpu.Reg.A[y], cpu.Reg.D[x]
	}
}

// SWAP Dn
// Encoding: 0100 1000 0100 0DDD
func registerSWAP(s *InstructionSet) {
	for dn := uint16(0); dn < 8; dn++ {
		s.add(0x4840|dn, "SWAP", Word, FmtDn, 4, (*CPU).opSWAP)
	}
}

// Swap register halves
func (cpu *CPU) opSWAP(inst *Instruction) {
	dn := inst.eaReg()
	v := cpu.Reg.D[dn]<<16 | cpu.Reg.D[dn]>>16
	cpu.Reg.D[dn] = v
	cpu.Reg.SR = Logic(Long, v, cpu.Reg.SR)
}

// EXT.W Dn and EXT.L Dn
// Encoding: 0100 1000 1S00 0DDD
func registerEXT(s *InstructionSet) {
	for dn := uint16(0); dn < 8; dn++ {
		s.add(0x4880|dn, "EXT.W", Word, FmtDn, 4, (*CPU).opEXT)
		s.add(0x48c0|dn, "EXT.L", Long, FmtDn, 4, (*CPU).opEXT)
	}
}

// Sign extend
func (cpu *CPU) opEXT(inst *Instruction) {
	dn := inst.eaReg()
	var v uint32
	if inst.Size == Word {
		v = signExtend(cpu.Reg.D[dn], Byte) & 0xffff
	} else {
		v = signExtend(cpu.Reg.D[dn], Word)
	}
	m := inst.Size.Mask()
	cpu.Reg.D[dn] = cpu.Reg.D[dn]&^m | v
	cpu.Reg.SR = Logic(inst.Size, v, cpu.Reg.SR)
}

// LINK An,#d16 and UNLK An
// Encoding: 0100 1110 0101 0AAA and 0100 1110 0101 1AAA
func registerLINK(s *InstructionSet) {
	for an := uint16(0); an < 8; an++ {
		s.add(0x4e50|an, "LINK", Word, FmtLink, 16, (*CPU).opLINK)
		s.add(0x4e58|an, "UNLK", 0, FmtAn, 12, (*CPU).opUNLK)
	}
}

// Link and allocate
func (cpu *CPU) opLINK(inst *Instruction) {
	an := inst.eaReg()
	d := signExtend(uint32(cpu.fetchWord()), Word)
	cpu.push(Long, cpu.Reg.A[an])
	cpu.Reg.A[an] = cpu.Reg.A[7]
	cpu.Reg.A[7] += d
}

// Unlink
func (cpu *CPU) opUNLK(inst *Instruction) {
	an := inst.eaReg()
	cpu.Reg.A[7] = cpu.Reg.A[an]
	cpu.Reg.A[an] = cpu.pop(Long)
}
