// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "github.com/sirupsen/logrus"

// FlashState is the state of the flash command interpreter.
type FlashState byte

// Flash states
const (
	ReadArray      FlashState = iota // reads return the array
	IdentifyCodes                    // reads return manufacturer and device codes
	EraseSetup                       // waiting for the erase confirm command
	WriteReady                       // the next write programs the array
	EraseConfirmed                   // a block was erased; reads return status
)

var flashStateNames = [...]string{
	ReadArray:      "read-array",
	IdentifyCodes:  "identify",
	EraseSetup:     "erase-setup",
	WriteReady:     "write-ready",
	EraseConfirmed: "erase-confirmed",
}

func (s FlashState) String() string {
	if int(s) < len(flashStateNames) {
		return flashStateNames[s]
	}
	return "unknown"
}

// Flash commands, taken from the low byte of the written value
const (
	cmdProgram     = 0x10
	cmdEraseSetup  = 0x20
	cmdProgramAlt  = 0x40
	cmdClearStatus = 0x50
	cmdIdentify    = 0x90
	cmdConfirm     = 0xd0
	cmdReadArray   = 0xff
)

// Identifier codes
const (
	ManufacturerCode = 0x0089
	DeviceCode       = 0x00b5
)

// Flash is an Intel-style flash device. Programming can only clear bits;
// erasing a block sets all of its bits.
type Flash struct {
	data       []byte
	state      FlashState
	orMask     byte // ORed into array reads after a program or erase
	writeReady int  // pending program operations
}

func newFlash(size uint32) *Flash {
	f := &Flash{data: make([]byte, size)}
	for i := range f.data {
		f.data[i] = 0xff
	}
	return f
}

// State returns the current command state.
func (f *Flash) State() FlashState {
	return f.state
}

// Data returns the flash array.
func (f *Flash) Data() []byte {
	return f.data
}

// Reset returns the device to the read-array state.
func (f *Flash) Reset() {
	f.state = ReadArray
	f.orMask = 0
	f.writeReady = 0
}

// special returns true while reads must go through the command state
// instead of the plain array.
func (f *Flash) special() bool {
	return f.state != ReadArray || f.orMask != 0
}

// read returns the byte at the flash offset in the current state.
func (f *Flash) read(off uint32) byte {
	if f.state == IdentifyCodes {
		switch off & (BlockSize - 1) {
		case 1:
			return ManufacturerCode
		case 3:
			return DeviceCode
		default:
			return 0
		}
	}
	return f.data[off] | f.orMask
}

// program ANDs the value into the array. It returns false if no program
// operation is pending.
func (f *Flash) program(off uint32, b []byte) bool {
	if f.state != WriteReady || f.writeReady == 0 {
		return false
	}
	for i, v := range b {
		if int(off)+i < len(f.data) {
			f.data[int(off)+i] &= v
		}
	}
	f.writeReady--
	f.state = ReadArray
	f.orMask = 0xff
	return true
}

// command decodes a command written to the flash offset.
func (f *Flash) command(off uint32, cmd byte) {
	prev := f.state
	switch cmd {
	case cmdReadArray:
		f.Reset()
	case cmdClearStatus:
		f.state = ReadArray
		f.orMask = 0
	case cmdIdentify:
		f.state = IdentifyCodes
	case cmdProgram, cmdProgramAlt:
		f.state = WriteReady
		f.writeReady = 1
	case cmdEraseSetup:
		f.state = EraseSetup
	case cmdConfirm:
		if f.state != EraseSetup {
			return
		}
		f.erase(off)
		f.state = EraseConfirmed
		f.orMask = 0xff
	default:
		return
	}

	log.WithFields(logrus.Fields{
		"offset": off,
		"cmd":    cmd,
		"from":   prev.String(),
		"to":     f.state.String(),
	}).Debug("flash command")
}

// erase fills the 64KiB block containing the offset with all-one bits.
func (f *Flash) erase(off uint32) {
	start := off &^ (BlockSize - 1)
	end := start + BlockSize
	if end > uint32(len(f.data)) {
		end = uint32(len(f.data))
	}
	for i := start; i < end; i++ {
		f.data[i] = 0xff
	}
}
