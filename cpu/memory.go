// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// AddressMask limits addresses to the 24-bit external address bus.
const AddressMask = 0xffffff

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur. Addresses are already masked to 24 bits. The CPU
// never issues a word or long access to an odd address; it raises an address
// error instead.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint32) byte

	// LoadWord loads a big-endian 16-bit value from the address.
	LoadWord(addr uint32) uint16

	// LoadLong loads a big-endian 32-bit value from the address.
	LoadLong(addr uint32) uint32

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint32, v byte)

	// StoreWord stores a big-endian 16-bit value to the requested address.
	StoreWord(addr uint32, v uint16)

	// StoreLong stores a big-endian 32-bit value to the requested address.
	StoreLong(addr uint32, v uint32)
}

// FlatMemory represents an entire 16MiB address space as a flat byte array.
type FlatMemory struct {
	b [AddressMask + 1]byte
}

// NewFlatMemory creates a new 16MiB memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// LoadByte loads a single byte from the address and returns it.
func (m *FlatMemory) LoadByte(addr uint32) byte {
	return m.b[addr&AddressMask]
}

// LoadWord loads a big-endian 16-bit value from the address.
func (m *FlatMemory) LoadWord(addr uint32) uint16 {
	return uint16(m.LoadByte(addr))<<8 | uint16(m.LoadByte(addr+1))
}

// LoadLong loads a big-endian 32-bit value from the address.
func (m *FlatMemory) LoadLong(addr uint32) uint32 {
	return uint32(m.LoadWord(addr))<<16 | uint32(m.LoadWord(addr+2))
}

// StoreByte stores a byte at the requested address.
func (m *FlatMemory) StoreByte(addr uint32, v byte) {
	m.b[addr&AddressMask] = v
}

// StoreWord stores a big-endian 16-bit value at the requested address.
func (m *FlatMemory) StoreWord(addr uint32, v uint16) {
	m.StoreByte(addr, byte(v>>8))
	m.StoreByte(addr+1, byte(v))
}

// StoreLong stores a big-endian 32-bit value at the requested address.
func (m *FlatMemory) StoreLong(addr uint32, v uint32) {
	m.StoreWord(addr, uint16(v>>16))
	m.StoreWord(addr+2, uint16(v))
}

// StoreWords stores a sequence of 16-bit words, typically a short machine
// code program, starting at the requested address.
func (m *FlatMemory) StoreWords(addr uint32, w ...uint16) {
	for i, v := range w {
		m.StoreWord(addr+uint32(2*i), v)
	}
}
