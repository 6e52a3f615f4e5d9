// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package port implements the minimal hardware port bank needed to run the
// calculator operating system: the low-power command, the periodic timer
// interrupts and the keyboard row read.
package port

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "port")

// Port addresses. The 32-byte ASIC page repeats throughout
// 0x600000-0x6fffff; a second page repeats throughout 0x700000-0x7fffff.
const (
	LowPower    = 0x600005 // write: stop the CPU; the value is the wake mask
	TimerReload = 0x600017 // write: timer reload value; read: timer value
	KeyMaskLow  = 0x600019 // keyboard row mask, low byte
	KeyMaskHigh = 0x600018 // keyboard row mask, high two bits
	KeyRead     = 0x60001b // read: keyboard column bits, active low

	pageSize = 0x20
)

// Interrupt levels raised by the bank
const (
	LevelTick  = 1 // every tick
	LevelTimer = 5 // programmable timer overflow
)

// DefaultTimerReload is the reload value the operating system programs at
// boot.
const DefaultTimerReload = 0xb2

// An Interrupter receives the interrupt requests raised by the bank.
type Interrupter interface {
	Interrupt(level int)
}

// Bank is the hardware port bank. It implements memory.PortBank.
type Bank struct {
	asic     [2][pageSize]byte
	timer    byte
	reload   byte
	irq      Interrupter
	lowPower func(wake byte)
	keys     func(rowMask uint16) byte
}

// NewBank creates a port bank that raises interrupts through irq.
func NewBank(irq Interrupter, reload byte) *Bank {
	b := &Bank{irq: irq, reload: reload}
	b.Reset()
	return b
}

// SetLowPower installs the handler called when the low-power port is
// written.
func (b *Bank) SetLowPower(fn func(wake byte)) {
	b.lowPower = fn
}

// SetKeySource installs the keyboard matrix reader. It receives the
// selected row mask and returns the active-low column bits.
func (b *Bank) SetKeySource(fn func(rowMask uint16) byte) {
	b.keys = fn
}

// Reset clears all ports and reloads the programmable timer.
func (b *Bank) Reset() {
	b.asic = [2][pageSize]byte{}
	b.asic[0][TimerReload&(pageSize-1)] = b.reload
	b.timer = b.reload
}

// Timer returns the programmable timer value.
func (b *Bank) Timer() byte {
	return b.timer
}

func page(addr uint32) int {
	if addr >= 0x700000 {
		return 1
	}
	return 0
}

// LoadPort reads a port byte.
func (b *Bank) LoadPort(addr uint32) byte {
	p, off := page(addr), addr&(pageSize-1)
	if p == 0 {
		switch off {
		case TimerReload & (pageSize - 1):
			return b.timer
		case KeyRead & (pageSize - 1):
			if b.keys == nil {
				return 0xff
			}
			return b.keys(b.rowMask())
		}
	}
	return b.asic[p][off]
}

// StorePort writes a port byte.
func (b *Bank) StorePort(addr uint32, v byte) {
	p, off := page(addr), addr&(pageSize-1)
	b.asic[p][off] = v
	if p != 0 {
		return
	}

	switch off {
	case LowPower & (pageSize - 1):
		log.WithField("wake", v).Debug("low power")
		if b.lowPower != nil {
			b.lowPower(v)
		}
	case TimerReload & (pageSize - 1):
		b.reload = v
	}
}

func (b *Bank) rowMask() uint16 {
	hi := uint16(b.asic[0][KeyMaskHigh&(pageSize-1)]) & 3
	return hi<<8 | uint16(b.asic[0][KeyMaskLow&(pageSize-1)])
}

// Tick advances the periodic timers by one step. Level 1 is raised on
// every tick; level 5 when the programmable timer wraps, after which it
// restarts from the reload value.
func (b *Bank) Tick() {
	b.interrupt(LevelTick)

	b.timer++
	if b.timer == 0 {
		b.timer = b.reload
		b.interrupt(LevelTimer)
	}
}

func (b *Bank) interrupt(level int) {
	if b.irq != nil {
		b.irq.Interrupt(level)
	}
}
