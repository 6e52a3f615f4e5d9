// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memory implements the address decoding of the TI-89 family: RAM
// with ghosting, the flash ROM and its command state machine, and the
// hardware port window.
package memory

import (
	"fmt"
	"strings"
)

// Model identifies a calculator variant by the hardware ID found in its
// boot code header.
type Model byte

// Supported models
const (
	TI92Plus     Model = 1
	TI89         Model = 3
	V200         Model = 8
	TI89Titanium Model = 9
)

// Address windows shared by every model
const (
	RAMWindow = 0x200000 // RAM and its ghosts occupy 0x000000-0x1fffff
	RAMSize   = 256 * 1024
	PortBase  = 0x600000
	PortEnd   = 0x800000
	BlockSize = 0x10000 // flash erase block
)

// A Layout describes where a model maps its memories.
type Layout struct {
	RAMSize   uint32 // physical RAM size
	FlashBase uint32 // start of the flash window
	FlashSize uint32 // size of the flash device
	Ghost     bool   // RAM repeats through the RAM window
}

var layouts = map[Model]Layout{
	TI92Plus:     {RAMSize: RAMSize, FlashBase: 0x400000, FlashSize: 2 << 20, Ghost: true},
	TI89:         {RAMSize: RAMSize, FlashBase: 0x200000, FlashSize: 2 << 20, Ghost: true},
	V200:         {RAMSize: RAMSize, FlashBase: 0x200000, FlashSize: 4 << 20, Ghost: true},
	TI89Titanium: {RAMSize: RAMSize, FlashBase: 0x800000, FlashSize: 4 << 20, Ghost: false},
}

var modelNames = map[Model]string{
	TI92Plus:     "ti92p",
	TI89:         "ti89",
	V200:         "v200",
	TI89Titanium: "ti89t",
}

// Models returns every supported model in hardware ID order.
func Models() []Model {
	return []Model{TI92Plus, TI89, V200, TI89Titanium}
}

// Layout returns the memory layout of the model. The second return value
// is false for an unknown model.
func (m Model) Layout() (Layout, bool) {
	l, ok := layouts[m]
	return l, ok
}

// InFlash returns true if the address lies inside the flash window.
func (l Layout) InFlash(addr uint32) bool {
	return addr >= l.FlashBase && addr-l.FlashBase < l.FlashSize
}

// InRAM returns true if the address lies inside physical RAM.
func (l Layout) InRAM(addr uint32) bool {
	return addr < l.RAMSize
}

func (m Model) String() string {
	if s, ok := modelNames[m]; ok {
		return s
	}
	return fmt.Sprintf("model(%d)", byte(m))
}

// ParseModel converts a model name such as "ti89" into a Model.
func ParseModel(s string) (Model, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Models() {
		if modelNames[m] == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown model %q", s)
}
