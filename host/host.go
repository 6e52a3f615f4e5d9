// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive debugger around an emulated
// calculator.
//
// Within the host it is possible to step through and run the operating
// system, measure the number of CPU cycles elapsed, set address and data
// breakpoints, dump and disassemble memory, manipulate CPU registers and
// memory, raise interrupts, evaluate arbitrary expressions and drive the
// machine from Lua scripts.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/go68k/cpu"
	"github.com/beevik/go68k/disasm"
	"github.com/beevik/go68k/machine"
	"github.com/beevik/go68k/rom"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "host")

// ErrQuit is returned when the quit command runs.
var ErrQuit = errors.New("exiting program")

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
	stateStepOverBreakpoint
)

// A Host wraps an emulated calculator with a command interpreter and a
// debugger.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	m           *machine.Machine
	debugger    *cpu.Debugger
	lastCmd     *cmd.Selection
	state       state
	exprParser  *exprParser
	settings    *settings
	sinceTick   int  // instructions stepped since the last timer tick
	quit        bool // a script ran the quit command
}

// breakpoints forwards debugger callbacks to the host.
type breakpoints struct {
	h *Host
}

func (b breakpoints) OnBreakpoint(c *cpu.CPU, bp *cpu.Breakpoint) {
	b.h.onBreakpoint(c, bp)
}

func (b breakpoints) OnDataBreakpoint(c *cpu.CPU, bp *cpu.DataBreakpoint) {
	b.h.onDataBreakpoint(c, bp)
}

// New creates a host for the machine and attaches a debugger to its CPU.
func New(m *machine.Machine) *Host {
	h := &Host{
		output:     bufio.NewWriter(os.Stdout),
		m:          m,
		state:      stateProcessingCommands,
		exprParser: newExprParser(),
		settings:   newSettings(m.Config.BatchSize),
	}

	h.debugger = cpu.NewDebugger(breakpoints{h})
	h.attach()
	return h
}

// attach connects the debugger to the machine's current CPU.
func (h *Host) attach() {
	h.m.CPU.AttachDebugger(h.debugger)
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.output = bufio.NewWriter(w)
	h.runCommands(r, interactive)
}

func (h *Host) runCommands(r io.Reader, interactive bool) error {
	h.input = bufio.NewScanner(r)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	h.displayPC()

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		if err := h.execLine(line); err != nil {
			h.flush()
			return err
		}
	}

	h.flush()
	return nil
}

// execLine runs one command line. An empty line repeats the previous
// command when the host is interactive.
func (h *Host) execLine(line string) error {
	var c cmd.Selection
	line = strings.TrimSpace(line)
	if line != "" {
		var err error
		c, err = cmds.Lookup(line)
		switch {
		case errors.Is(err, cmd.ErrNotFound):
			h.println("Command not found.")
			return nil
		case errors.Is(err, cmd.ErrAmbiguous):
			h.println("Command is ambiguous.")
			return nil
		case err != nil:
			h.printf("ERROR: %v.\n", err)
			return nil
		}
	} else if h.lastCmd != nil && h.interactive {
		c = *h.lastCmd
	}

	if c.Command == nil {
		return nil
	}
	h.lastCmd = &c

	return c.Command.Data.(*command).run(h, c)
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.println()

	if h.state == stateRunning {
		h.displayPC()
	}
	if h.state == stateProcessingCommands {
		h.prompt()
	}
	h.state = stateProcessingCommands
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.m.CPU.Reg.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.displayCommands(rootGroup)
		return nil
	}

	name := strings.ToLower(strings.Join(c.Args, " "))
	for _, g := range rootGroup.groups {
		if g.name == name {
			h.displayCommands(g)
			return nil
		}
	}

	s, err := cmds.Lookup(name)
	if err != nil || s.Command == nil {
		h.println("Command not found.")
		return nil
	}

	hc := s.Command.Data.(*command)
	if hc.usage != "" {
		h.printf("Syntax: %s\n\n", hc.usage)
	}
	switch {
	case hc.description != "":
		h.printf("Description:\n%s\n\n", indentWrap(3, hc.description))
	case hc.brief != "":
		h.printf("Description:\n%s.\n\n", indentWrap(3, hc.brief))
	}
	return nil
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	h.println("Addr    Enabled")
	h.println("------- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%06X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%06X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%06X.\n", addr)
		return nil
	}

	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%06X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c cmd.Selection) error {
	return h.enableBreakpoint(c, true)
}

func (h *Host) cmdBreakpointDisable(c cmd.Selection) error {
	return h.enableBreakpoint(c, false)
}

func (h *Host) enableBreakpoint(c cmd.Selection, enable bool) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%06X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Breakpoint at $%06X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDataBreakpointList(c cmd.Selection) error {
	h.println("Addr    Enabled  Value")
	h.println("------- -------  ---------")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%06X %-5v    $%08X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%06X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c cmd.Selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	if len(c.Args) > 1 {
		value, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, uint32(value))
		h.printf("Conditional data breakpoint added at $%06X for value $%X.\n", addr, uint32(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%06X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c cmd.Selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%06X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%06X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c cmd.Selection) error {
	return h.enableDataBreakpoint(c, true)
}

func (h *Host) cmdDataBreakpointDisable(c cmd.Selection) error {
	return h.enableDataBreakpoint(c, false)
}

func (h *Host) enableDataBreakpoint(c cmd.Selection, enable bool) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%06X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Data breakpoint at $%06X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	addr, ok := h.continueArg(c.Args[0], h.settings.NextDisasmAddr)
	if !ok {
		return nil
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		l, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr, 0)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr & cpu.AddressMask
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	v, err := h.parseExpr(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%08X (%d)\n", uint32(v), v)
	return nil
}

func (h *Host) cmdExecute(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	file, err := os.Open(c.Args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(c.Args[0]), err)
		return nil
	}
	defer file.Close()

	input, interactive := h.input, h.interactive
	err = h.runCommands(file, false)
	h.input, h.interactive = input, interactive
	return err
}

func (h *Host) cmdInterrupt(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	level, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if level < 1 || level > 7 {
		h.println("Interrupt level must be between 1 and 7.")
		return nil
	}

	h.m.Interrupt(int(level))
	h.printf("Interrupt level %d asserted.\n", level)
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	filename := c.Args[0]
	img, err := rom.Load(filename)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	if err := h.m.Load(img); err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	h.attach()
	h.sinceTick = 0
	h.settings.NextDisasmAddr = 0
	h.settings.NextMemDumpAddr = 0

	h.printf("Loaded '%s': %s.\n", filepath.Base(filename), h.m.State)
	h.displayPC()
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	addr, ok := h.continueArg(c.Args[0], h.settings.NextMemDumpAddr)
	if !ok {
		return nil
	}

	bytes := uint32(h.settings.MemDumpBytes)
	if len(c.Args) > 1 {
		n, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if n < 0 || n > 0x10000 {
			h.println("Byte count must be between 0 and 65536.")
			return nil
		}
		bytes = uint32(n)
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = (addr + bytes) & cpu.AddressMask
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	values := make([]byte, 0, len(c.Args)-1)
	for _, arg := range c.Args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		values = append(values, byte(v))
	}

	for i, v := range values {
		h.m.Mem.StoreByte(addr+uint32(i), v)
	}
	h.printf("Stored %d bytes at $%06X.\n", len(values), addr)
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return ErrQuit
}

func (h *Host) cmdRegisters(c cmd.Selection) error {
	d, _ := h.disassemble(h.m.CPU.Reg.PC, displayAll)
	h.println(d)
	return nil
}

func (h *Host) cmdReset(c cmd.Selection) error {
	h.m.Reset()
	h.sinceTick = 0
	h.settings.NextDisasmAddr = 0
	h.println("Machine reset.")
	h.displayPC()
	return nil
}

func (h *Host) cmdRun(c cmd.Selection) error {
	if len(c.Args) > 0 {
		pc, err := h.parseAddr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.m.CPU.SetPC(pc)
	}

	h.printf("Running from $%06X. Press ctrl-C to break.\n", h.m.CPU.Reg.PC)

	h.state = stateRunning
	for h.state == stateRunning {
		h.step()
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.m.CPU.Reg.PC
	return nil
}

func (h *Host) cmdScript(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	if err := h.RunScript(c.Args[0]); err != nil {
		if errors.Is(err, ErrQuit) {
			return err
		}
		h.printf("Script error: %v\n", err)
	}
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		// Setting a register?
		if r, err := lookupRegister(key); err == nil {
			v, err := h.parseExpr(value)
			if err != nil {
				h.printf("%v\n", err)
				return nil
			}
			r.set(&h.m.CPU.Reg, uint32(v))
			h.printf("Register %s set to $%0*X.\n", strings.ToUpper(r.name), int(r.size)*2, r.get(&h.m.CPU.Reg))
			return nil
		}

		// Setting a debugger setting?
		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var b bool
			b, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, b)
			}
		default:
			var v int64
			v, err = h.parseExpr(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(c cmd.Selection) error {
	return h.stepCommand(c, h.step)
}

func (h *Host) cmdStepOver(c cmd.Selection) error {
	return h.stepCommand(c, h.stepOver)
}

func (h *Host) stepCommand(c cmd.Selection, step func()) error {
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		step()
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.m.CPU.Reg.PC
	return nil
}

func (h *Host) cmdStepOut(c cmd.Selection) error {
	h.state = stateRunning
	h.stepOut()
	if h.state == stateRunning {
		h.displayPC()
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.m.CPU.Reg.PC
	return nil
}

// step executes one instruction and raises a timer tick every
// TickInterval steps. Steps taken while the CPU is stopped still count, so
// a stopped CPU is eventually woken.
func (h *Host) step() {
	c := h.m.CPU
	c.Step()

	h.sinceTick++
	if h.sinceTick >= h.settings.TickInterval {
		h.sinceTick = 0
		h.m.Tick()
	}

	if c.Halted() && h.state == stateRunning {
		h.println("CPU halted. Use reset to recover.")
		h.state = stateBreakpoint
	}
}

func isCall(name string) bool {
	switch name {
	case "JSR", "BSR", "TRAP":
		return true
	}
	return false
}

func isReturn(name string) bool {
	switch name {
	case "RTS", "RTR", "RTE":
		return true
	}
	return false
}

func (h *Host) stepOver() {
	c := h.m.CPU

	inst := c.GetInstruction(c.Reg.PC)
	if !isCall(inst.Name) {
		h.step()
		return
	}

	// Place a step-over breakpoint on the instruction following the call.
	// Either modify an already existing breakpoint on that instruction, or
	// create a temporary one.
	_, next := disasm.Disassemble(h.m.Mem, c.Reg.PC)
	next &= cpu.AddressMask
	tmp := false
	b := h.debugger.GetBreakpoint(next)
	if b == nil {
		b = h.debugger.AddBreakpoint(next)
		tmp = true
	}
	disabled := b.Disabled
	b.Disabled, b.StepOver = false, true

	for h.state == stateRunning {
		h.step()
	}
	b.Disabled, b.StepOver = disabled, false

	if h.state == stateStepOverBreakpoint {
		h.state = stateRunning
	}
	if tmp {
		h.debugger.RemoveBreakpoint(next)
	}
}

// stepOut runs until a return instruction executes with the stack at or
// above its level when stepping began.
func (h *Host) stepOut() {
	c := h.m.CPU
	sp := c.Reg.A[7]
	for h.state == stateRunning {
		inst := c.GetInstruction(c.Reg.PC)
		done := !c.Stopped() && isReturn(inst.Name) && c.Reg.A[7] >= sp
		h.step()
		if done {
			return
		}
	}
}

func (h *Host) onSettingsUpdate() {
	h.exprParser.hexMode = h.settings.HexMode
}

func (h *Host) parseExpr(expr string) (int64, error) {
	return h.exprParser.Parse(expr, h)
}

func (h *Host) parseAddr(expr string) (uint32, error) {
	v, err := h.parseExpr(expr)
	if err != nil {
		return 0, err
	}
	return uint32(v) & cpu.AddressMask, nil
}

// addressArg parses the first argument of a command as an address. It
// reports problems itself and returns false when the command should stop.
func (h *Host) addressArg(c cmd.Selection) (uint32, bool) {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return 0, false
	}
	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

// continueArg parses an address argument where "$" continues from next
// and "." is the program counter.
func (h *Host) continueArg(arg string, next uint32) (uint32, bool) {
	switch arg {
	case "$":
		if next == 0 {
			return h.m.CPU.Reg.PC, true
		}
		return next, true
	case ".":
		return h.m.CPU.Reg.PC, true
	}

	addr, err := h.parseAddr(arg)
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

func (h *Host) disassemble(addr uint32, flags displayFlags) (str string, next uint32) {
	addr &= cpu.AddressMask &^ 1

	var line string
	line, next = disasm.Disassemble(h.m.Mem, addr)

	words := make([]uint16, 0, 5)
	for a := addr; a < next; a += 2 {
		words = append(words, h.m.Mem.LoadWord(a))
	}

	str = fmt.Sprintf("%06X-  %-24s  %s", addr, codeString(words), line)

	if (flags & displayCycles) != 0 {
		str = fmt.Sprintf("%-60s C=%d", str, h.m.CPU.Cycles)
	}
	if (flags & displayRegisters) != 0 {
		str = disasm.GetRegisterString(&h.m.CPU.Reg) + "\n" + str
	}

	return str, next
}

func (h *Host) dumpMemory(addr0, bytes uint32) {
	if bytes == 0 {
		return
	}

	addr0 &= cpu.AddressMask
	addr1 := addr0 + bytes - 1

	var ascii [16]byte
	for row := addr0 &^ 15; row <= addr1; row += 16 {
		var b strings.Builder
		fmt.Fprintf(&b, "%06X-", row&cpu.AddressMask)
		for i := uint32(0); i < 16; i++ {
			a := row + i
			if a < addr0 || a > addr1 {
				b.WriteString("   ")
				ascii[i] = ' '
				continue
			}
			v := h.m.Mem.LoadByte(a & cpu.AddressMask)
			fmt.Fprintf(&b, " %02X", v)
			ascii[i] = toPrintableChar(v)
		}
		h.printf("%s  %s\n", b.String(), ascii[:])
	}
}

func (h *Host) displayUsage(c cmd.Selection) {
	if hc, ok := c.Command.Data.(*command); ok && hc.usage != "" {
		h.printf("Syntax: %s\n", hc.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(g *commandGroup) {
	h.printf("%s commands:\n", g.name)
	for _, c := range g.commands {
		if c.brief != "" {
			h.printf("    %-15s  %s\n", c.name, c.brief)
		}
	}
	for _, sub := range g.groups {
		h.printf("    %-15s  %s\n", sub.name, sub.brief)
	}
}

func (h *Host) resolveIdentifier(s string) (int64, error) {
	r, err := lookupRegister(s)
	if err != nil {
		return 0, fmt.Errorf("identifier '%s' not found", s)
	}
	return int64(r.get(&h.m.CPU.Reg)), nil
}

func (h *Host) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if b.StepOver {
		h.state = stateStepOverBreakpoint
		return
	}

	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%06X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.printf("Data breakpoint hit on address $%06X.\n", b.Address)
	log.WithFields(logrus.Fields{
		"addr": b.Address,
		"pc":   c.LastPC,
	}).Debug("data breakpoint")

	h.state = stateBreakpoint

	if c.LastPC != c.Reg.PC {
		d, _ := h.disassemble(c.LastPC, 0)
		h.println(d)
	}

	h.displayPC()
}

func enabledString(enable bool) string {
	if enable {
		return "enabled"
	}
	return "disabled"
}
