// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"strings"

	"github.com/beevik/go68k/cpu"
	lua "github.com/yuin/gopher-lua"
)

// RunScript runs a Lua script against the host. Besides the standard Lua
// libraries, the script sees these globals:
//
//	command(line)        run a host command
//	reg(name)            read a register
//	setreg(name, v)      write a register
//	peek(a) peekw(a) peekl(a)
//	poke(a, v)           store a byte through the memory router
//	step([n])            step n instructions; returns the new PC
//	batch()              run one instruction batch; returns the count
//	tick()               advance the hardware timers
//	interrupt(level)     raise an autovectored interrupt
//	print(...)           write to the host output
//
// If the script runs the quit command, RunScript stops it and returns an
// error for which errors.Is(err, ErrQuit) holds.
func (h *Host) RunScript(filename string) error {
	L := lua.NewState()
	defer L.Close()

	for name, fn := range h.luaFunctions() {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	h.quit = false
	err := L.DoFile(filename)
	if h.quit {
		h.quit = false
		return ErrQuit
	}
	return err
}

func (h *Host) luaFunctions() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"command":   h.luaCommand,
		"reg":       h.luaReg,
		"setreg":    h.luaSetReg,
		"peek":      h.luaPeek,
		"peekw":     h.luaPeekWord,
		"peekl":     h.luaPeekLong,
		"poke":      h.luaPoke,
		"step":      h.luaStep,
		"batch":     h.luaBatch,
		"tick":      h.luaTick,
		"interrupt": h.luaInterrupt,
		"print":     h.luaPrint,
	}
}

func (h *Host) luaCommand(L *lua.LState) int {
	if err := h.execLine(L.CheckString(1)); err != nil {
		if errors.Is(err, ErrQuit) {
			h.quit = true
		}
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) luaRegister(L *lua.LState) *register {
	r, err := lookupRegister(L.CheckString(1))
	if err != nil {
		L.ArgError(1, "unknown register")
	}
	return r
}

func (h *Host) luaReg(L *lua.LState) int {
	r := h.luaRegister(L)
	L.Push(lua.LNumber(r.get(&h.m.CPU.Reg)))
	return 1
}

func (h *Host) luaSetReg(L *lua.LState) int {
	r := h.luaRegister(L)
	r.set(&h.m.CPU.Reg, luaUint32(L, 2))
	return 0
}

func luaUint32(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func luaAddr(L *lua.LState, n int) uint32 {
	return luaUint32(L, n) & cpu.AddressMask
}

func (h *Host) luaPeek(L *lua.LState) int {
	L.Push(lua.LNumber(h.m.Mem.LoadByte(luaAddr(L, 1))))
	return 1
}

func (h *Host) luaPeekWord(L *lua.LState) int {
	L.Push(lua.LNumber(h.m.Mem.LoadWord(luaAddr(L, 1))))
	return 1
}

func (h *Host) luaPeekLong(L *lua.LState) int {
	L.Push(lua.LNumber(h.m.Mem.LoadLong(luaAddr(L, 1))))
	return 1
}

func (h *Host) luaPoke(L *lua.LState) int {
	h.m.Mem.StoreByte(luaAddr(L, 1), byte(luaUint32(L, 2)))
	return 0
}

func (h *Host) luaStep(L *lua.LState) int {
	n := L.OptInt(1, 1)
	h.state = stateRunning
	for i := 0; i < n && h.state == stateRunning; i++ {
		h.step()
	}
	h.state = stateProcessingCommands

	L.Push(lua.LNumber(h.m.CPU.Reg.PC))
	return 1
}

func (h *Host) luaBatch(L *lua.LState) int {
	n, err := h.m.RunBatch()
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (h *Host) luaTick(L *lua.LState) int {
	h.m.Tick()
	return 0
}

func (h *Host) luaInterrupt(L *lua.LState) int {
	level := L.CheckInt(1)
	if level < 1 || level > 7 {
		L.ArgError(1, "level must be between 1 and 7")
	}
	h.m.Interrupt(level)
	return 0
}

func (h *Host) luaPrint(L *lua.LState) int {
	args := make([]string, L.GetTop())
	for i := range args {
		args[i] = L.Get(i + 1).String()
	}
	h.println(strings.Join(args, "\t"))
	return 0
}
