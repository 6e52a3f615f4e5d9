// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package machine assembles a complete calculator from a ROM image: the
// CPU, the memory router with its flash device, and the hardware port bank.
//
// A Machine is single-threaded. Disassembly, memory dumps and register
// inspection must not run while a batch is executing; callers serialize
// them with the driver themselves.
package machine

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/go68k/config"
	"github.com/beevik/go68k/cpu"
	"github.com/beevik/go68k/memory"
	"github.com/beevik/go68k/port"
	"github.com/beevik/go68k/rom"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "machine")

// A Machine is an emulated calculator.
type Machine struct {
	Config *config.Config
	Image  *rom.Image
	State  rom.State // initial state derived from the ROM header
	CPU    *cpu.CPU
	Mem    *memory.Router
	Ports  *port.Bank
}

var _ port.Interrupter = (*Machine)(nil)

// New builds a machine for the ROM image and resets it.
func New(cfg *config.Config, img *rom.Image) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{Config: cfg.Clone()}
	if err := m.Load(img); err != nil {
		return nil, err
	}
	return m, nil
}

// Load replaces the ROM image. The model is detected again, all devices
// are rebuilt and the machine is reset. On error the machine is left
// unchanged.
func (m *Machine) Load(img *rom.Image) error {
	var (
		state rom.State
		err   error
	)
	if model, ok := m.Config.ModelID(); ok {
		state, err = rom.DetectAs(img, model)
	} else {
		state, err = rom.Detect(img)
	}
	if err != nil {
		return err
	}

	ports := port.NewBank(m, m.Config.TimerReload)
	mem, err := memory.NewRouter(state.Model, img.Data, ports)
	if err != nil {
		return fmt.Errorf("machine: %w", err)
	}
	c := cpu.NewCPU(mem)

	ports.SetLowPower(func(wake byte) { c.Stop(wake) })
	mem.SetPCSource(func() uint32 { return c.LastPC })

	m.Image, m.State = img, state
	m.CPU, m.Mem, m.Ports = c, mem, ports

	log.WithFields(logrus.Fields{
		"model":  state.Model.String(),
		"header": state.Header,
	}).Info("machine created")

	m.reset(state)
	return nil
}

// Reset re-derives the initial stack pointer and program counter from the
// current flash contents, returns the flash device to read-array mode and
// resets the ports and the CPU. RAM is zeroed if the configuration asks
// for it. If the flash no longer holds a valid header, the state found at
// load time is used.
func (m *Machine) Reset() {
	state, err := rom.DetectAs(&rom.Image{Data: m.Mem.Flash().Data()}, m.State.Model)
	if err != nil {
		log.WithError(err).Warn("flash header invalid; using load-time state")
		state = m.State
	}
	m.reset(state)
}

func (m *Machine) reset(state rom.State) {
	m.Mem.Reset()
	m.Ports.Reset()
	if m.Config.ClearRAMOnReset {
		m.Mem.ClearRAM()
	}
	m.CPU.Reset(state.SSP, state.PC)

	log.WithFields(logrus.Fields{
		"ssp": state.SSP,
		"pc":  state.PC,
	}).Debug("reset")
}

// Interrupt asserts an autovectored interrupt on the CPU.
func (m *Machine) Interrupt(level int) {
	m.CPU.Interrupt(level)
}

// Tick advances the hardware timers by one period.
func (m *Machine) Tick() {
	m.Ports.Tick()
}

// RunBatch executes one batch of instructions. It returns the number of
// instructions executed.
func (m *Machine) RunBatch() (int, error) {
	return m.CPU.Run(m.Config.BatchSize)
}

// Run drives the machine at the configured tick rate until the context is
// canceled or the CPU halts. Each period raises the timer interrupts and
// then runs one batch. A batch in progress always completes.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(m.Config.TickHz))
	defer ticker.Stop()

	log.WithField("tick_hz", m.Config.TickHz).Info("running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Tick()
			if _, err := m.RunBatch(); err != nil {
				log.WithError(err).WithField("pc", m.CPU.LastPC).Error("execution stopped")
				return err
			}
		}
	}
}
