// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"errors"
	"fmt"

	"github.com/beevik/go68k/cpu"
	"github.com/sirupsen/logrus"
)

// ErrImageSize is returned when a flash image exceeds the model's flash
// device.
var ErrImageSize = errors.New("image larger than flash device")

var log = logrus.WithField("pkg", "memory")

// A PortBank handles byte accesses to the hardware port window.
type PortBank interface {
	LoadPort(addr uint32) byte
	StorePort(addr uint32, v byte)
}

// Router maps the 24-bit address space of one calculator model onto RAM,
// the flash device and the hardware ports. It implements cpu.Memory.
type Router struct {
	Model  Model
	layout Layout
	ram    []byte
	flash  *Flash
	ports  PortBank
	pc     func() uint32 // address of the executing instruction
	load   func(r *Router, addr uint32) byte
	store  func(r *Router, addr uint32, b []byte)
}

var _ cpu.Memory = (*Router)(nil)

// NewRouter creates a router for the model. The image is copied into the
// flash device; the rest of the device reads as erased.
func NewRouter(model Model, image []byte, ports PortBank) (*Router, error) {
	layout, ok := model.Layout()
	if !ok {
		return nil, fmt.Errorf("memory: unknown model %d", byte(model))
	}
	if uint32(len(image)) > layout.FlashSize {
		return nil, fmt.Errorf("memory: %d bytes for %s: %w", len(image), model, ErrImageSize)
	}

	r := &Router{
		Model:  model,
		layout: layout,
		ram:    make([]byte, layout.RAMSize),
		flash:  newFlash(layout.FlashSize),
		ports:  ports,
	}
	copy(r.flash.data, image)
	r.Reset()
	return r, nil
}

// Layout returns the memory layout in use.
func (r *Router) Layout() Layout {
	return r.layout
}

// Flash returns the flash device.
func (r *Router) Flash() *Flash {
	return r.flash
}

// RAM returns the physical RAM.
func (r *Router) RAM() []byte {
	return r.ram
}

// SetPCSource installs the function used to find the executing
// instruction. Flash commands issued by code running from flash are
// ignored.
func (r *Router) SetPCSource(pc func() uint32) {
	r.pc = pc
}

// Reset returns the flash device to read-array mode and reinstalls the
// normal access strategy.
func (r *Router) Reset() {
	r.flash.Reset()
	r.updateStrategy()
}

// ClearRAM zeroes physical RAM.
func (r *Router) ClearRAM() {
	for i := range r.ram {
		r.ram[i] = 0
	}
}

// Special returns true while the flash-special access strategy is
// installed.
func (r *Router) Special() bool {
	return r.flash.special()
}

func (r *Router) updateStrategy() {
	if r.flash.special() {
		r.load = (*Router).loadSpecial
		r.store = (*Router).storeSpecial
	} else {
		r.load = (*Router).loadNormal
		r.store = (*Router).storeNormal
	}
}

// LoadByte loads a single byte from the address and returns it.
func (r *Router) LoadByte(addr uint32) byte {
	return r.load(r, addr&cpu.AddressMask)
}

// LoadWord loads a big-endian 16-bit value. Bit 0 of the address is
// ignored.
func (r *Router) LoadWord(addr uint32) uint16 {
	addr &= cpu.AddressMask &^ 1
	return uint16(r.load(r, addr))<<8 | uint16(r.load(r, addr+1))
}

// LoadLong loads a big-endian 32-bit value. Bit 0 of the address is
// ignored.
func (r *Router) LoadLong(addr uint32) uint32 {
	addr &= cpu.AddressMask &^ 1
	return uint32(r.LoadWord(addr))<<16 | uint32(r.LoadWord(addr+2))
}

// StoreByte stores a byte at the address.
func (r *Router) StoreByte(addr uint32, v byte) {
	r.store(r, addr&cpu.AddressMask, []byte{v})
}

// StoreWord stores a big-endian 16-bit value. Bit 0 of the address is
// ignored.
func (r *Router) StoreWord(addr uint32, v uint16) {
	r.store(r, addr&cpu.AddressMask&^1, []byte{byte(v >> 8), byte(v)})
}

// StoreLong stores a big-endian 32-bit value as two word writes.
func (r *Router) StoreLong(addr uint32, v uint32) {
	addr &= cpu.AddressMask &^ 1
	r.StoreWord(addr, uint16(v>>16))
	r.StoreWord(addr+2, uint16(v))
}

// ramOffset maps an address in the RAM window onto physical RAM. The
// second return value is false for an address past physical RAM on a
// model without ghosting.
func (r *Router) ramOffset(addr uint32) (uint32, bool) {
	if r.layout.Ghost {
		return addr % r.layout.RAMSize, true
	}
	return addr, r.layout.InRAM(addr)
}

// loadCommon handles RAM, ports and unmapped space. It returns false for
// flash addresses.
func (r *Router) loadCommon(addr uint32) (byte, bool) {
	switch {
	case r.layout.InFlash(addr):
		return 0, false
	case addr < RAMWindow:
		if off, ok := r.ramOffset(addr); ok {
			return r.ram[off], true
		}
		return 0, true
	case addr >= PortBase && addr < PortEnd:
		if r.ports != nil {
			return r.ports.LoadPort(addr), true
		}
		return 0, true
	default:
		return 0, true
	}
}

func (r *Router) loadNormal(addr uint32) byte {
	if v, ok := r.loadCommon(addr); ok {
		return v
	}
	return r.flash.data[addr-r.layout.FlashBase]
}

func (r *Router) loadSpecial(addr uint32) byte {
	if v, ok := r.loadCommon(addr); ok {
		return v
	}
	return r.flash.read(addr - r.layout.FlashBase)
}

// storeCommon handles RAM, ports and unmapped space. It returns false for
// flash addresses.
func (r *Router) storeCommon(addr uint32, b []byte) bool {
	switch {
	case r.layout.InFlash(addr):
		return false
	case addr < RAMWindow:
		for i, v := range b {
			if off, ok := r.ramOffset(addr + uint32(i)); ok {
				r.ram[off] = v
			}
		}
	case addr >= PortBase && addr < PortEnd:
		if r.ports != nil {
			for i, v := range b {
				r.ports.StorePort(addr+uint32(i), v)
			}
		}
	}
	return true
}

func (r *Router) storeNormal(addr uint32, b []byte) {
	if r.storeCommon(addr, b) {
		return
	}
	r.flashCommand(addr, b)
}

func (r *Router) storeSpecial(addr uint32, b []byte) {
	if r.storeCommon(addr, b) {
		return
	}
	if r.flash.program(addr-r.layout.FlashBase, b) {
		r.updateStrategy()
		return
	}
	r.flashCommand(addr, b)
}

// flashCommand passes the low byte of a write to the flash command
// interpreter and switches strategy if the device changed mode.
func (r *Router) flashCommand(addr uint32, b []byte) {
	if r.pc != nil && r.layout.InFlash(r.pc()&cpu.AddressMask) {
		log.WithFields(logrus.Fields{
			"addr": addr,
			"pc":   r.pc(),
		}).Warn("ignored flash command issued from flash")
		return
	}

	r.flash.command(addr-r.layout.FlashBase, b[len(b)-1])
	r.updateStrategy()
}
