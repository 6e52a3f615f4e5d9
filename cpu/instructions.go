// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"strings"
	"sync"
)

// An instfunc is the emulator implementation of a 68000 instruction.
type instfunc func(c *CPU, inst *Instruction)

// Format describes the operand layout of an instruction, so that a
// disassembler can decode the extension words that follow the opcode.
type Format byte

// Operand formats
const (
	FmtNone      Format = iota // no operands
	FmtEA                      // <ea>
	FmtEAToDn                  // <ea>,Dn (Dn in bits 9-11)
	FmtDnToEA                  // Dn,<ea> (Dn in bits 9-11)
	FmtEAToAn                  // <ea>,An (An in bits 9-11)
	FmtImmToEA                 // #imm,<ea>
	FmtQuickToEA               // #1-8,<ea>
	FmtMove                    // <ea>,<ea> with the destination in bits 6-11
	FmtMoveq                   // #d8,Dn
	FmtBranch                  // 8-bit or 16-bit PC displacement
	FmtDbcc                    // Dn,d16
	FmtRegPair                 // Dy,Dx or -(Ay),-(Ax)
	FmtCmpm                    // (Ay)+,(Ax)+
	FmtShiftReg                // #1-8,Dy or Dx,Dy
	FmtBitImm                  // #bit,<ea>
	FmtTrap                    // #vector
	FmtImmToCCR                // #imm,CCR
	FmtImmToSR                 // #imm,SR
	FmtFromSR                  // SR,<ea>
	FmtToCCR                   // <ea>,CCR
	FmtToSR                    // <ea>,SR
	FmtUSP                     // An,USP or USP,An
	FmtDn                      // Dn in bits 0-2
	FmtAn                      // An in bits 0-2
	FmtLink                    // An,#d16
	FmtExg                     // Rx,Ry
	FmtMovem                   // register list and <ea>
	FmtMovep                   // Dx,d16(Ay) or d16(Ay),Dx
	FmtImm                     // #imm16
	FmtData                    // not an instruction
)

// An Instruction describes a CPU instruction, including its mnemonic, its
// opcode value, its operand size and its CPU cycle cost.
type Instruction struct {
	Name   string   // all-caps mnemonic including the size suffix
	Opcode uint16   // opcode word
	Size   Size     // operand size, or 0 if the instruction has none
	Format Format   // operand format
	Cycles byte     // base cost plus effective address calculation time
	fn     instfunc // emulator implementation of the instruction
}

// An InstructionSet defines the set of all possible instructions that can
// run on the emulated CPU, indexed by opcode.
type InstructionSet struct {
	instructions [65536]Instruction
	variants     map[string][]*Instruction
}

// Lookup retrieves the CPU instruction corresponding to the requested
// opcode.
func (s *InstructionSet) Lookup(opcode uint16) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns all opcodes whose mnemonic matches the provided
// string, for example "ADD.W" or "BRA".
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

func (inst *Instruction) eaMode() int { return int(inst.Opcode>>3) & 7 }
func (inst *Instruction) eaReg() int  { return int(inst.Opcode) & 7 }
func (inst *Instruction) reg9() int   { return int(inst.Opcode>>9) & 7 }

// add installs an instruction in the table.
func (s *InstructionSet) add(opcode uint16, name string, sz Size, f Format, cycles int, fn instfunc) {
	if cycles > 255 {
		cycles = 255
	}
	s.instructions[opcode] = Instruction{
		Name:   name,
		Opcode: opcode,
		Size:   sz,
		Format: f,
		Cycles: byte(cycles),
		fn:     fn,
	}
}

// addEA installs one instruction per mode/register pair in the class mask.
// The cost of each is the base cost plus the effective address time.
func (s *InstructionSet) addEA(base uint16, mask int, name string, sz Size, f Format, cycles int, fn instfunc) {
	forEachEA(mask, func(mode, reg int) {
		opcode := base | uint16(mode<<3|reg)
		s.add(opcode, name, sz, f, cycles+eaTime(mode, reg, sz), fn)
	})
}

// sizeEncodings lists the standard 2-bit size field values.
var sizeEncodings = []struct {
	bits uint16
	sz   Size
}{
	{0, Byte},
	{1, Word},
	{2, Long},
}

// Condition mnemonics, indexed by condition code.
var conditionNames = [16]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

// NewInstructionSet builds a complete dispatch table covering all 65536
// opcodes. The result depends on nothing but the instruction definitions.
func NewInstructionSet() *InstructionSet {
	set := &InstructionSet{
		variants: make(map[string][]*Instruction),
	}

	// Every slot starts out unhandled. The two vendor extension lines
	// trap through their own vectors.
	for i := range set.instructions {
		opcode := uint16(i)
		switch opcode >> 12 {
		case 0xa:
			set.add(opcode, "LINEA", 0, FmtData, 4, (*CPU).opLineA)
		case 0xf:
			set.add(opcode, "LINEF", 0, FmtData, 4, (*CPU).opLineF)
		default:
			set.add(opcode, "", 0, FmtData, 4, (*CPU).opIllegal)
		}
	}

	registerMove(set)
	registerArith(set)
	registerLogic(set)
	registerBit(set)
	registerShift(set)
	registerBCD(set)
	registerControl(set)
	registerSystem(set)

	// Label the remaining unhandled slots as data words.
	for i := range set.instructions {
		inst := &set.instructions[i]
		if inst.Name == "" {
			inst.Name = fmt.Sprintf("DC.W $%04X", inst.Opcode)
		}
		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
	}

	return set
}

var (
	instructionSet     *InstructionSet
	instructionSetOnce sync.Once
)

// GetInstructionSet returns the process-wide 68000 instruction set. It is
// built on first use and never modified afterwards.
func GetInstructionSet() *InstructionSet {
	instructionSetOnce.Do(func() {
		instructionSet = NewInstructionSet()
	})
	return instructionSet
}

// Illegal instruction
func (cpu *CPU) opIllegal(inst *Instruction) {
	cpu.raise(VectorIllegal)
}

// Line 1010 emulator
func (cpu *CPU) opLineA(inst *Instruction) {
	cpu.raise(VectorLineA)
}

// Line 1111 emulator
func (cpu *CPU) opLineF(inst *Instruction) {
	cpu.raise(VectorLineF)
}
