// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 68000 instruction set disassembler.
package disasm

import (
	"fmt"
	"strings"

	"github.com/beevik/go68k/cpu"
)

// A decoder walks the extension words that follow an opcode.
type decoder struct {
	m    cpu.Memory
	addr uint32 // address of the next extension word
}

func (d *decoder) word() uint16 {
	w := d.m.LoadWord(d.addr & cpu.AddressMask)
	d.addr += 2
	return w
}

func (d *decoder) long() uint32 {
	hi := uint32(d.word())
	return hi<<16 | uint32(d.word())
}

func (d *decoder) imm(sz cpu.Size) uint32 {
	switch sz {
	case cpu.Byte:
		return uint32(d.word()) & 0xff
	case cpu.Long:
		return d.long()
	default:
		return uint32(d.word())
	}
}

// signed formats a displacement as a signed hexadecimal value.
func signed(v int32) string {
	if v < 0 {
		return fmt.Sprintf("-$%X", -v)
	}
	return fmt.Sprintf("$%X", v)
}

// index decodes a brief extension word into its index register string and
// 8-bit displacement.
func index(ext uint16) (string, int32) {
	r := "D"
	if ext&0x8000 != 0 {
		r = "A"
	}
	sz := ".W"
	if ext&0x0800 != 0 {
		sz = ".L"
	}
	return fmt.Sprintf("%s%d%s", r, (ext>>12)&7, sz), int32(int8(ext))
}

// ea formats an effective address, consuming its extension words.
func (d *decoder) ea(mode, reg int, sz cpu.Size) string {
	switch mode {
	case 0:
		return fmt.Sprintf("D%d", reg)
	case 1:
		return fmt.Sprintf("A%d", reg)
	case 2:
		return fmt.Sprintf("(A%d)", reg)
	case 3:
		return fmt.Sprintf("(A%d)+", reg)
	case 4:
		return fmt.Sprintf("-(A%d)", reg)
	case 5:
		return fmt.Sprintf("%s(A%d)", signed(int32(int16(d.word()))), reg)
	case 6:
		x, disp := index(d.word())
		return fmt.Sprintf("%s(A%d,%s)", signed(disp), reg, x)
	}

	switch reg {
	case 0:
		return fmt.Sprintf("$%04X.W", d.word())
	case 1:
		return fmt.Sprintf("$%06X", d.long())
	case 2:
		base := d.addr
		target := base + uint32(int32(int16(d.word())))
		return fmt.Sprintf("$%06X(PC)", target&cpu.AddressMask)
	case 3:
		base := d.addr
		x, disp := index(d.word())
		return fmt.Sprintf("$%06X(PC,%s)", (base+uint32(disp))&cpu.AddressMask, x)
	case 4:
		return fmt.Sprintf("#$%X", d.imm(sz))
	default:
		return "?"
	}
}

// regList formats a MOVEM register mask. Bit 0 selects D0 and bit 15
// selects A7 unless the mask is reversed, as it is for -(An).
func regList(mask uint16, reversed bool) string {
	var groups []string
	for bank, prefix := range []string{"D", "A"} {
		start := -1
		for i := 0; i <= 8; i++ {
			on := false
			if i < 8 {
				bit := bank*8 + i
				if reversed {
					bit = 15 - bit
				}
				on = mask&(1<<bit) != 0
			}
			switch {
			case on && start < 0:
				start = i
			case !on && start >= 0:
				if start == i-1 {
					groups = append(groups, fmt.Sprintf("%s%d", prefix, start))
				} else {
					groups = append(groups, fmt.Sprintf("%s%d-%s%d", prefix, start, prefix, i-1))
				}
				start = -1
			}
		}
	}
	return strings.Join(groups, "/")
}

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(m cpu.Memory, addr uint32) (line string, next uint32) {
	addr &= cpu.AddressMask &^ 1
	opcode := m.LoadWord(addr)
	inst := cpu.GetInstructionSet().Lookup(opcode)

	d := &decoder{m: m, addr: addr + 2}
	mode, reg := int(opcode>>3)&7, int(opcode)&7
	reg9 := int(opcode>>9) & 7

	var operands string
	switch inst.Format {
	case cpu.FmtNone:
	case cpu.FmtEA:
		operands = d.ea(mode, reg, inst.Size)
	case cpu.FmtEAToDn:
		operands = fmt.Sprintf("%s,D%d", d.ea(mode, reg, inst.Size), reg9)
	case cpu.FmtDnToEA:
		operands = fmt.Sprintf("D%d,%s", reg9, d.ea(mode, reg, inst.Size))
	case cpu.FmtEAToAn:
		operands = fmt.Sprintf("%s,A%d", d.ea(mode, reg, inst.Size), reg9)
	case cpu.FmtImmToEA:
		imm := d.imm(inst.Size)
		operands = fmt.Sprintf("#$%X,%s", imm, d.ea(mode, reg, inst.Size))
	case cpu.FmtQuickToEA:
		q := reg9
		if q == 0 {
			q = 8
		}
		operands = fmt.Sprintf("#%d,%s", q, d.ea(mode, reg, inst.Size))
	case cpu.FmtMove:
		src := d.ea(mode, reg, inst.Size)
		operands = src + "," + d.ea(int(opcode>>6)&7, reg9, inst.Size)
	case cpu.FmtMoveq:
		operands = fmt.Sprintf("#%d,D%d", int8(opcode), reg9)
	case cpu.FmtBranch:
		base := d.addr
		disp := int32(int8(opcode))
		suffix := ".S"
		if disp == 0 {
			disp = int32(int16(d.word()))
			suffix = ".W"
		}
		line = inst.Name + suffix + fmt.Sprintf(" $%06X", (base+uint32(disp))&cpu.AddressMask)
		return line, d.addr
	case cpu.FmtDbcc:
		base := d.addr
		target := base + uint32(int32(int16(d.word())))
		operands = fmt.Sprintf("D%d,$%06X", reg, target&cpu.AddressMask)
	case cpu.FmtRegPair:
		if opcode&0x08 != 0 {
			operands = fmt.Sprintf("-(A%d),-(A%d)", reg, reg9)
		} else {
			operands = fmt.Sprintf("D%d,D%d", reg, reg9)
		}
	case cpu.FmtCmpm:
		operands = fmt.Sprintf("(A%d)+,(A%d)+", reg, reg9)
	case cpu.FmtShiftReg:
		if opcode&0x20 != 0 {
			operands = fmt.Sprintf("D%d,D%d", reg9, reg)
		} else {
			c := reg9
			if c == 0 {
				c = 8
			}
			operands = fmt.Sprintf("#%d,D%d", c, reg)
		}
	case cpu.FmtBitImm:
		bit := d.word() & 0xff
		operands = fmt.Sprintf("#%d,%s", bit, d.ea(mode, reg, inst.Size))
	case cpu.FmtTrap:
		operands = fmt.Sprintf("#%d", opcode&15)
	case cpu.FmtImmToCCR:
		operands = fmt.Sprintf("#$%02X,CCR", d.word()&0xff)
	case cpu.FmtImmToSR:
		operands = fmt.Sprintf("#$%04X,SR", d.word())
	case cpu.FmtFromSR:
		operands = "SR," + d.ea(mode, reg, cpu.Word)
	case cpu.FmtToCCR:
		operands = d.ea(mode, reg, cpu.Word) + ",CCR"
	case cpu.FmtToSR:
		operands = d.ea(mode, reg, cpu.Word) + ",SR"
	case cpu.FmtUSP:
		if opcode&0x08 != 0 {
			operands = fmt.Sprintf("USP,A%d", reg)
		} else {
			operands = fmt.Sprintf("A%d,USP", reg)
		}
	case cpu.FmtDn:
		operands = fmt.Sprintf("D%d", reg)
	case cpu.FmtAn:
		operands = fmt.Sprintf("A%d", reg)
	case cpu.FmtLink:
		operands = fmt.Sprintf("A%d,#%d", reg, int16(d.word()))
	case cpu.FmtExg:
		switch (opcode >> 3) & 0x1f {
		case 0x08:
			operands = fmt.Sprintf("D%d,D%d", reg9, reg)
		case 0x09:
			operands = fmt.Sprintf("A%d,A%d", reg9, reg)
		default:
			operands = fmt.Sprintf("D%d,A%d", reg9, reg)
		}
	case cpu.FmtMovem:
		mask := d.word()
		if opcode&0x0400 != 0 {
			operands = d.ea(mode, reg, inst.Size) + "," + regList(mask, false)
		} else {
			list := regList(mask, mode == 4)
			operands = list + "," + d.ea(mode, reg, inst.Size)
		}
	case cpu.FmtMovep:
		disp := signed(int32(int16(d.word())))
		if opcode&0x80 != 0 {
			operands = fmt.Sprintf("D%d,%s(A%d)", reg9, disp, reg)
		} else {
			operands = fmt.Sprintf("%s(A%d),D%d", disp, reg, reg9)
		}
	case cpu.FmtImm:
		operands = fmt.Sprintf("#$%04X", d.word())
	case cpu.FmtData:
		if !strings.HasPrefix(inst.Name, "DC.") {
			operands = fmt.Sprintf("$%04X", opcode)
		}
	}

	line = inst.Name
	if operands != "" {
		line += " " + operands
	}
	return line, d.addr
}

// GetRegisterString returns a multi-line string describing the contents of
// the registers.
func GetRegisterString(r *cpu.Registers) string {
	var b strings.Builder
	for i, bank := range [][8]uint32{r.D, r.A} {
		prefix := "D"
		if i == 1 {
			prefix = "A"
		}
		for n, v := range bank {
			sep := " "
			if n == 3 || n == 7 {
				sep = "\n"
			}
			fmt.Fprintf(&b, "%s%d=%08X%s", prefix, n, v, sep)
		}
	}

	flags := []byte("XNZVC")
	for i := range flags {
		if r.SR&(1<<(4-i)) == 0 {
			flags[i] = '-'
		}
	}
	mode := "U"
	if r.Supervisor() {
		mode = "S"
	}
	if r.SR&cpu.TraceBit != 0 {
		mode += "T"
	}
	fmt.Fprintf(&b, "PC=%06X SR=%04X USP=%08X SSP=%08X %s I=%d %s",
		r.PC, r.SR, r.USP(), r.SSP(), mode, r.IPL(), flags)
	return b.String()
}
