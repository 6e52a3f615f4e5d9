// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a 68000 CPU instruction set and emulator, as found
// in the TI-89, TI-92 Plus and Voyage 200 family of calculators.
package cpu

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Errors
var (
	ErrHalted   = errors.New("cpu halted by double fault")
	ErrDispatch = errors.New("no handler installed for opcode")
)

var log = logrus.WithField("pkg", "cpu")

// CPU represents a single 68000 CPU. It contains a pointer to the memory
// associated with the CPU.
type CPU struct {
	Reg      Registers       // CPU registers
	Mem      Memory          // assigned memory
	Cycles   uint64          // total executed CPU cycles
	LastPC   uint32          // address of the most recently fetched instruction
	IR       uint16          // instruction register (opcode being executed)
	InstSet  *InstructionSet // instruction set used by the CPU
	pending  byte            // pending interrupt levels, bit n for level n
	wakeMask byte            // levels that end the stopped state
	stopped  bool            // low-power state entered via STOP or a port write
	halted   bool            // double fault
	faulting bool            // a group 0 exception is being processed
	noTrace  bool            // the instruction ended in an illegal or privilege exception
	debugger *Debugger
	store    func(cpu *CPU, sz Size, addr, v uint32)
}

// NewCPU creates an emulated 68000 CPU bound to the specified memory.
func NewCPU(m Memory) *CPU {
	cpu := &CPU{
		Mem:     m,
		InstSet: GetInstructionSet(),
		store:   (*CPU).storeNormal,
	}

	cpu.Reg.Init()
	return cpu
}

// Reset puts the CPU into supervisor mode with interrupts masked and loads
// the stack pointer and program counter. All pending interrupts are dropped.
func (cpu *CPU) Reset(ssp, pc uint32) {
	cpu.Reg.Init()
	cpu.Reg.A[7] = ssp
	cpu.Reg.PC = pc
	cpu.LastPC = pc
	cpu.Cycles = 0
	cpu.pending = 0
	cpu.wakeMask = 0
	cpu.stopped = false
	cpu.halted = false
	cpu.faulting = false
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint32) {
	cpu.Reg.PC = addr
}

// Stopped returns true while the CPU is in the low-power stopped state.
func (cpu *CPU) Stopped() bool {
	return cpu.stopped
}

// Halted returns true if the CPU stopped after a double fault. Only a reset
// recovers from this state.
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// Stop enters the low-power state. The CPU resumes when an interrupt whose
// level is set in the wake mask, or an interrupt at level 6 or 7, arrives.
func (cpu *CPU) Stop(wake byte) {
	cpu.stopped = true
	cpu.wakeMask = wake
}

// GetInstruction returns the instruction whose opcode is stored at the
// requested address.
func (cpu *CPU) GetInstruction(addr uint32) *Instruction {
	opcode := cpu.Mem.LoadWord(addr & AddressMask &^ 1)
	return cpu.InstSet.Lookup(opcode)
}

// Step the cpu by one instruction. Pending interrupts are evaluated after
// the instruction completes.
func (cpu *CPU) Step() {
	if cpu.halted || cpu.stopped {
		return
	}

	trace := cpu.Reg.SR&TraceBit != 0
	if cpu.exec() {
		cpu.faulting = false
		if trace && !cpu.noTrace {
			cpu.exception(VectorTrace)
		}
	}

	cpu.checkInterrupts()

	// Update the debugger so it handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
}

// Run executes a batch of up to n instructions. The batch ends early when
// the CPU stops or halts. It returns the number of instructions executed.
func (cpu *CPU) Run(n int) (int, error) {
	for i := 0; i < n; i++ {
		if cpu.halted {
			return i, ErrHalted
		}
		if cpu.stopped {
			return i, nil
		}

		opcode := cpu.peekOpcode()
		if inst := cpu.InstSet.Lookup(opcode); inst.fn == nil {
			log.WithFields(logrus.Fields{
				"pc":     cpu.Reg.PC,
				"opcode": opcode,
			}).Error("dispatch table lookup failed")
			return i, ErrDispatch
		}

		cpu.Step()
	}
	return n, nil
}

func (cpu *CPU) peekOpcode() uint16 {
	return cpu.Mem.LoadWord(cpu.Reg.PC & AddressMask &^ 1)
}

// exec fetches and executes a single instruction. It returns false if the
// instruction was aborted by a group 0 exception.
func (cpu *CPU) exec() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = cpu.recoverFault(r)
		}
	}()

	cpu.noTrace = false
	cpu.LastPC = cpu.Reg.PC
	cpu.IR = cpu.fetchWord()
	inst := cpu.InstSet.Lookup(cpu.IR)
	cpu.Cycles += uint64(inst.Cycles)
	inst.fn(cpu, inst)
	return true
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a value
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.store = (*CPU).storeDebugger
}

// DetachDebugger detaches the currently debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.store = (*CPU).storeNormal
}

// load reads a value of the given size. Word and long reads from odd
// addresses abort the instruction with an address error.
func (cpu *CPU) load(sz Size, addr uint32, program bool) uint32 {
	addr &= AddressMask
	if sz != Byte && addr&1 != 0 {
		panic(busFault{addr: addr, read: true, program: program})
	}

	switch sz {
	case Byte:
		return uint32(cpu.Mem.LoadByte(addr))
	case Word:
		return uint32(cpu.Mem.LoadWord(addr))
	default:
		return cpu.Mem.LoadLong(addr)
	}
}

func (cpu *CPU) storeNormal(sz Size, addr, v uint32) {
	addr &= AddressMask
	if sz != Byte && addr&1 != 0 {
		panic(busFault{addr: addr})
	}

	switch sz {
	case Byte:
		cpu.Mem.StoreByte(addr, byte(v))
	case Word:
		cpu.Mem.StoreWord(addr, uint16(v))
	default:
		cpu.Mem.StoreLong(addr, v)
	}
}

func (cpu *CPU) storeDebugger(sz Size, addr, v uint32) {
	cpu.storeNormal(sz, addr, v)
	cpu.debugger.onDataStore(cpu, addr&AddressMask, sz, v&sz.Mask())
}

func (cpu *CPU) fetchWord() uint16 {
	v := cpu.load(Word, cpu.Reg.PC, true)
	cpu.Reg.PC += 2
	return uint16(v)
}

func (cpu *CPU) fetchLong() uint32 {
	hi := uint32(cpu.fetchWord())
	return hi<<16 | uint32(cpu.fetchWord())
}

func (cpu *CPU) push(sz Size, v uint32) {
	if sz == Byte {
		sz = Word
	}
	cpu.Reg.A[7] -= uint32(sz)
	cpu.store(cpu, sz, cpu.Reg.A[7], v)
}

func (cpu *CPU) pop(sz Size) uint32 {
	v := cpu.load(sz, cpu.Reg.A[7], false)
	cpu.Reg.A[7] += uint32(sz)
	return v
}

// privileged reports whether the CPU is in supervisor mode. If it is not,
// a privilege violation is raised.
func (cpu *CPU) privileged() bool {
	if cpu.Reg.Supervisor() {
		return true
	}
	cpu.Reg.PC = cpu.LastPC
	cpu.exception(VectorPrivilege)
	cpu.noTrace = true
	return false
}
