// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "github.com/sirupsen/logrus"

// Exception vectors
const (
	VectorBusError     = 2
	VectorAddressError = 3
	VectorIllegal      = 4
	VectorZeroDivide   = 5
	VectorCHK          = 6
	VectorTRAPV        = 7
	VectorPrivilege    = 8
	VectorTrace        = 9
	VectorLineA        = 10
	VectorLineF        = 11
	VectorSpurious     = 24
	VectorAutovector   = 24 // level n interrupts use VectorAutovector+n
	VectorTrap         = 32 // TRAP #n uses VectorTrap+n
)

// Function codes placed in the group 0 exception status word.
const (
	fcUserData          = 1
	fcUserProgram       = 2
	fcSupervisorData    = 5
	fcSupervisorProgram = 6
)

// A busFault aborts the executing instruction when a word or long access
// hits an odd address.
type busFault struct {
	addr    uint32
	read    bool
	program bool
}

// An abort unwinds the executing instruction and raises the exception
// vector it carries, with the stacked PC pointing at the instruction.
type abort int

// raise aborts the executing instruction with the requested exception.
func (cpu *CPU) raise(vector int) {
	panic(abort(vector))
}

func (cpu *CPU) recoverFault(r any) bool {
	switch f := r.(type) {
	case busFault:
		cpu.addressError(f)
		return false
	case abort:
		cpu.Reg.PC = cpu.LastPC
		cpu.exception(int(f))
		cpu.noTrace = true
		return true
	default:
		panic(r)
	}
}

// exception saves the status register and program counter on the
// supervisor stack and jumps through the requested vector.
func (cpu *CPU) exception(vector int) {
	sr := cpu.Reg.SR
	if !cpu.enterSupervisor() {
		return
	}

	cpu.push(Long, cpu.Reg.PC)
	cpu.push(Word, uint32(sr))
	cpu.Reg.PC = cpu.Mem.LoadLong(uint32(vector) * 4)
	cpu.Cycles += 34

	log.WithFields(logrus.Fields{
		"vector": vector,
		"from":   cpu.LastPC,
		"to":     cpu.Reg.PC,
	}).Debug("exception")
}

// addressError delivers a group 0 exception. Besides the normal frame it
// pushes the instruction register, the faulting address and a status word
// holding R/W in bit 4, I/N in bit 3 and the function code in bits 0-2.
func (cpu *CPU) addressError(f busFault) {
	if cpu.faulting {
		cpu.halt("address error during group 0 exception", f.addr)
		return
	}

	sr := cpu.Reg.SR
	fc := fcUserData
	switch {
	case sr&SupervisorBit != 0 && f.program:
		fc = fcSupervisorProgram
	case sr&SupervisorBit != 0:
		fc = fcSupervisorData
	case f.program:
		fc = fcUserProgram
	}

	status := uint16(fc)
	if f.read {
		status |= 1 << 4
	}
	if !f.program {
		status |= 1 << 3
	}

	if !cpu.enterSupervisor() {
		return
	}
	cpu.faulting = true

	cpu.push(Long, cpu.Reg.PC)
	cpu.push(Word, uint32(sr))
	cpu.push(Word, uint32(cpu.IR))
	cpu.push(Long, f.addr)
	cpu.push(Word, uint32(status))
	cpu.Reg.PC = cpu.Mem.LoadLong(VectorAddressError * 4)
	cpu.Cycles += 50

	log.WithFields(logrus.Fields{
		"addr":   f.addr,
		"read":   f.read,
		"status": status,
		"pc":     cpu.LastPC,
	}).Debug("address error")
}

// enterSupervisor switches to supervisor mode with tracing disabled. A
// misaligned supervisor stack would fault on every push, so the CPU halts.
func (cpu *CPU) enterSupervisor() bool {
	cpu.Reg.SetSR((cpu.Reg.SR | SupervisorBit) &^ TraceBit)
	if cpu.Reg.A[7]&1 != 0 {
		cpu.halt("odd supervisor stack pointer", cpu.Reg.A[7])
		return false
	}
	return true
}

func (cpu *CPU) halt(reason string, addr uint32) {
	cpu.halted = true
	log.WithFields(logrus.Fields{
		"addr": addr,
		"pc":   cpu.LastPC,
	}).Warn("double fault: " + reason)
}

// Interrupt asserts an autovectored interrupt at the requested level (1-7).
// A stopped CPU resumes if the level is in its wake mask or is 6 or 7.
func (cpu *CPU) Interrupt(level int) {
	if level < 1 || level > 7 {
		return
	}

	cpu.pending |= 1 << level
	if cpu.stopped && cpu.wakes(level) {
		cpu.stopped = false
		cpu.checkInterrupts()
	}
}

func (cpu *CPU) wakes(level int) bool {
	return cpu.wakeMask&(1<<level) != 0 || level >= 6
}

// wakesOnDelivery returns true if some pending level above the priority
// mask is one that ends the stopped state.
func (cpu *CPU) wakesOnDelivery(ipl int) bool {
	for level := 7; level >= 1; level-- {
		if level <= ipl && level != 7 {
			break
		}
		if cpu.pending&(1<<level) != 0 && cpu.wakes(level) {
			return true
		}
	}
	return false
}

// Pending returns the set of asserted interrupt levels, bit n for level n.
func (cpu *CPU) Pending() byte {
	return cpu.pending
}

// checkInterrupts delivers the highest pending interrupt if the priority
// mask allows it. Level 7 is never masked. At most one interrupt is taken.
// A stopped CPU resumes when a deliverable level is one that wakes it;
// other levels stay pending until it does.
func (cpu *CPU) checkInterrupts() {
	if cpu.pending == 0 || cpu.halted {
		return
	}

	ipl := cpu.Reg.IPL()
	for level := 7; level >= 1; level-- {
		if cpu.pending&(1<<level) == 0 {
			continue
		}
		if level <= ipl && level != 7 {
			return
		}
		if cpu.stopped && !cpu.wakesOnDelivery(ipl) {
			return
		}

		cpu.stopped = false
		cpu.pending &^= 1 << level
		cpu.exception(VectorAutovector + level)
		cpu.Reg.SR = cpu.Reg.SR&^IPLMask | uint16(level)<<8
		return
	}
}
