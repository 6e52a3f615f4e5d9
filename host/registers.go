// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"

	"github.com/beevik/go68k/cpu"
	"github.com/beevik/prefixtree/v2"
)

// A register names a CPU register the host can read and write.
type register struct {
	name string
	size cpu.Size
	get  func(r *cpu.Registers) uint32
	set  func(r *cpu.Registers, v uint32)
}

var registerTree = prefixtree.New[*register]()

func addRegister(r *register) {
	registerTree.Add(r.name, r)
}

func init() {
	for i := 0; i < 8; i++ {
		n := i
		addRegister(&register{
			name: fmt.Sprintf("d%d", n),
			size: cpu.Long,
			get:  func(r *cpu.Registers) uint32 { return r.D[n] },
			set:  func(r *cpu.Registers, v uint32) { r.D[n] = v },
		})
		addRegister(&register{
			name: fmt.Sprintf("a%d", n),
			size: cpu.Long,
			get:  func(r *cpu.Registers) uint32 { return r.A[n] },
			set:  func(r *cpu.Registers, v uint32) { r.A[n] = v },
		})
	}

	addRegister(&register{
		name: "sp",
		size: cpu.Long,
		get:  func(r *cpu.Registers) uint32 { return r.A[7] },
		set:  func(r *cpu.Registers, v uint32) { r.A[7] = v },
	})
	addRegister(&register{
		name: "pc",
		size: cpu.Long,
		get:  func(r *cpu.Registers) uint32 { return r.PC },
		set:  func(r *cpu.Registers, v uint32) { r.PC = v & cpu.AddressMask },
	})
	addRegister(&register{
		name: "sr",
		size: cpu.Word,
		get:  func(r *cpu.Registers) uint32 { return uint32(r.SR) },
		set:  func(r *cpu.Registers, v uint32) { r.SetSR(uint16(v)) },
	})
	addRegister(&register{
		name: "ccr",
		size: cpu.Byte,
		get:  func(r *cpu.Registers) uint32 { return uint32(r.SR) & cpu.CCRMask },
		set:  func(r *cpu.Registers, v uint32) { r.SetCCR(byte(v)) },
	})
	addRegister(&register{
		name: "usp",
		size: cpu.Long,
		get:  func(r *cpu.Registers) uint32 { return r.USP() },
		set:  func(r *cpu.Registers, v uint32) { r.SetUSP(v) },
	})
	addRegister(&register{
		name: "ssp",
		size: cpu.Long,
		get:  func(r *cpu.Registers) uint32 { return r.SSP() },
		set:  func(r *cpu.Registers, v uint32) { r.SetSSP(v) },
	})
}

// lookupRegister finds a register by name or unique prefix. The name "."
// is the program counter.
func lookupRegister(name string) (*register, error) {
	name = strings.ToLower(name)
	if name == "." {
		name = "pc"
	}
	return registerTree.FindValue(name)
}
