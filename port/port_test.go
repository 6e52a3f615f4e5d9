// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package port_test

import (
	"testing"

	"github.com/beevik/go68k/port"
)

type recorder struct {
	levels []int
}

func (r *recorder) Interrupt(level int) {
	r.levels = append(r.levels, level)
}

func count(levels []int, level int) int {
	n := 0
	for _, l := range levels {
		if l == level {
			n++
		}
	}
	return n
}

func TestTickRaisesLevelOne(t *testing.T) {
	r := &recorder{}
	b := port.NewBank(r, 0x00)
	for i := 0; i < 10; i++ {
		b.Tick()
	}
	if got := count(r.levels, port.LevelTick); got != 10 {
		t.Errorf("level 1 count incorrect. exp: 10, got: %d", got)
	}
	if got := count(r.levels, port.LevelTimer); got != 0 {
		t.Errorf("level 5 count incorrect. exp: 0, got: %d", got)
	}
}

func TestTimerWrap(t *testing.T) {
	r := &recorder{}
	b := port.NewBank(r, 0xfe)

	b.Tick()
	if b.Timer() != 0xff {
		t.Errorf("timer incorrect. exp: $FF, got: $%02X", b.Timer())
	}
	b.Tick()
	if b.Timer() != 0xfe {
		t.Errorf("timer not reloaded. exp: $FE, got: $%02X", b.Timer())
	}
	if got := count(r.levels, port.LevelTimer); got != 1 {
		t.Errorf("level 5 count incorrect. exp: 1, got: %d", got)
	}
}

func TestTimerReloadPort(t *testing.T) {
	r := &recorder{}
	b := port.NewBank(r, port.DefaultTimerReload)
	b.StorePort(port.TimerReload, 0xff)
	b.Tick() // timer 0xb2 -> 0xb3

	for i := 0; i < 0x4c; i++ {
		b.Tick()
	}
	if b.Timer() != 0xff {
		t.Errorf("timer incorrect. exp: $FF, got: $%02X", b.Timer())
	}
	if got := b.LoadPort(port.TimerReload); got != 0xff {
		t.Errorf("timer port incorrect. exp: $FF, got: $%02X", got)
	}

	b.Tick()
	b.Tick()
	if got := count(r.levels, port.LevelTimer); got != 2 {
		t.Errorf("level 5 count incorrect. exp: 2, got: %d", got)
	}
}

func TestLowPower(t *testing.T) {
	b := port.NewBank(nil, 0)
	var wake byte
	called := false
	b.SetLowPower(func(w byte) {
		called = true
		wake = w
	})

	b.StorePort(port.LowPower, 0x16)
	if !called {
		t.Fatal("low power handler not called")
	}
	if wake != 0x16 {
		t.Errorf("wake mask incorrect. exp: $16, got: $%02X", wake)
	}

	// The ASIC page repeats through the port window.
	called = false
	b.StorePort(port.LowPower+0x20, 0x02)
	if !called || wake != 0x02 {
		t.Errorf("mirrored low power write not handled")
	}
}

func TestKeyboard(t *testing.T) {
	b := port.NewBank(nil, 0)
	if got := b.LoadPort(port.KeyRead); got != 0xff {
		t.Errorf("key read incorrect. exp: $FF, got: $%02X", got)
	}

	var mask uint16
	b.SetKeySource(func(rows uint16) byte {
		mask = rows
		return 0xfe
	})
	b.StorePort(port.KeyMaskHigh, 0x03)
	b.StorePort(port.KeyMaskLow, 0xbf)
	if got := b.LoadPort(port.KeyRead); got != 0xfe {
		t.Errorf("key read incorrect. exp: $FE, got: $%02X", got)
	}
	if mask != 0x3bf {
		t.Errorf("row mask incorrect. exp: $3BF, got: $%03X", mask)
	}
}

func TestPortStorage(t *testing.T) {
	b := port.NewBank(nil, 0)
	b.StorePort(0x600010, 0x5a)
	b.StorePort(0x700010, 0xa5)
	if got := b.LoadPort(0x600030); got != 0x5a {
		t.Errorf("mirrored port incorrect. exp: $5A, got: $%02X", got)
	}
	if got := b.LoadPort(0x700010); got != 0xa5 {
		t.Errorf("second page incorrect. exp: $A5, got: $%02X", got)
	}

	b.Reset()
	if got := b.LoadPort(0x600010); got != 0 {
		t.Errorf("port not cleared by reset: $%02X", got)
	}
}
