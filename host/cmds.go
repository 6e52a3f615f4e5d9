// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command is the data stored with each entry of the command tree.
type command struct {
	name        string
	brief       string
	description string
	usage       string
	run         func(h *Host, c cmd.Selection) error
}

// A commandGroup lists the commands of one tree level, for help output.
type commandGroup struct {
	name     string
	brief    string
	commands []*command
	groups   []*commandGroup
}

var (
	cmds      *cmd.Tree
	rootGroup = &commandGroup{name: "go68k"}
)

func add(t *cmd.Tree, g *commandGroup, c *command) {
	t.AddCommand(cmd.CommandDescriptor{
		Name:        c.name,
		Brief:       c.brief,
		Description: c.description,
		Usage:       c.usage,
		Data:        c,
	})
	g.commands = append(g.commands, c)
}

func addGroup(t *cmd.Tree, name, brief string) (*cmd.Tree, *commandGroup) {
	sub := t.AddSubtree(cmd.TreeDescriptor{Name: name, Brief: brief})
	g := &commandGroup{name: name, brief: brief}
	rootGroup.groups = append(rootGroup.groups, g)
	return sub, g
}

// breakpointCommands adds the list/add/remove/enable/disable commands
// shared by both breakpoint kinds.
func breakpointCommands(t *cmd.Tree, g *commandGroup, kind string, handlers [5]func(*Host, cmd.Selection) error) {
	add(t, g, &command{
		name:        "list",
		brief:       "List " + kind + "s",
		description: "List all current " + kind + "s.",
		usage:       g.name + " list",
		run:         handlers[0],
	})
	addUsage := g.name + " add <address>"
	addDesc := "Add a " + kind + " at the specified address. The " + kind + " starts enabled."
	if kind == "data breakpoint" {
		addUsage += " [<value>]"
		addDesc = "Add a data breakpoint at the specified address. When the CPU" +
			" stores data covering this address, the breakpoint stops the CPU." +
			" Optionally a value may be specified, and the CPU stops only" +
			" when the stored value equals it. The data breakpoint starts enabled."
	}
	add(t, g, &command{
		name:        "add",
		brief:       "Add a " + kind,
		description: addDesc,
		usage:       addUsage,
		run:         handlers[1],
	})
	add(t, g, &command{
		name:        "remove",
		brief:       "Remove a " + kind,
		description: "Remove a " + kind + " at the specified address.",
		usage:       g.name + " remove <address>",
		run:         handlers[2],
	})
	add(t, g, &command{
		name:        "enable",
		brief:       "Enable a " + kind,
		description: "Enable a previously added " + kind + ".",
		usage:       g.name + " enable <address>",
		run:         handlers[3],
	})
	add(t, g, &command{
		name:  "disable",
		brief: "Disable a " + kind,
		description: "Disable a previously added " + kind + ". This prevents" +
			" it from stopping the CPU.",
		usage: g.name + " disable <address>",
		run:   handlers[4],
	})
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "go68k"})
	add(root, rootGroup, &command{
		name:        "help",
		description: "Display help for a command.",
		usage:       "help [<command>]",
		run:         (*Host).cmdHelp,
	})

	// Breakpoint commands
	bp, bpg := addGroup(root, "breakpoint", "Breakpoint commands")
	breakpointCommands(bp, bpg, "breakpoint", [5]func(*Host, cmd.Selection) error{
		(*Host).cmdBreakpointList,
		(*Host).cmdBreakpointAdd,
		(*Host).cmdBreakpointRemove,
		(*Host).cmdBreakpointEnable,
		(*Host).cmdBreakpointDisable,
	})

	// Data breakpoint commands
	db, dbg := addGroup(root, "databreakpoint", "Data breakpoint commands")
	breakpointCommands(db, dbg, "data breakpoint", [5]func(*Host, cmd.Selection) error{
		(*Host).cmdDataBreakpointList,
		(*Host).cmdDataBreakpointAdd,
		(*Host).cmdDataBreakpointRemove,
		(*Host).cmdDataBreakpointEnable,
		(*Host).cmdDataBreakpointDisable,
	})

	add(root, rootGroup, &command{
		name:  "disassemble",
		brief: "Disassemble code",
		description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		usage: "disassemble [<address>] [<lines>]",
		run:   (*Host).cmdDisassemble,
	})
	add(root, rootGroup, &command{
		name:  "evaluate",
		brief: "Evaluate an expression",
		description: "Evaluate an integer expression. Registers may be" +
			" referenced by name, and '.' is the program counter.",
		usage: "evaluate <expression>",
		run:   (*Host).cmdEvaluate,
	})
	add(root, rootGroup, &command{
		name:  "execute",
		brief: "Execute a command file",
		description: "Load a file of host commands from disk and execute" +
			" the commands it contains.",
		usage: "execute <filename>",
		run:   (*Host).cmdExecute,
	})
	add(root, rootGroup, &command{
		name:  "interrupt",
		brief: "Raise an interrupt",
		description: "Assert an autovectored interrupt at the requested" +
			" level (1-7). Level 7 cannot be masked.",
		usage: "interrupt <level>",
		run:   (*Host).cmdInterrupt,
	})
	add(root, rootGroup, &command{
		name:  "load",
		brief: "Load a ROM image",
		description: "Load a ROM dump from disk, detect the calculator model" +
			" from its header and reset the machine. Breakpoints are kept.",
		usage: "load <filename>",
		run:   (*Host).cmdLoad,
	})

	// Memory commands
	me, meg := addGroup(root, "memory", "Memory commands")
	add(me, meg, &command{
		name:  "dump",
		brief: "Dump memory at address",
		description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		usage: "memory dump [<address>] [<bytes>]",
		run:   (*Host).cmdMemoryDump,
	})
	add(me, meg, &command{
		name:  "set",
		brief: "Set memory at address",
		description: "Store a series of space-separated byte values starting" +
			" at the specified address. Each value may be an expression." +
			" Stores go through the memory router, so writes to the flash" +
			" window are flash commands.",
		usage: "memory set <address> <byte> [<byte> ...]",
		run:   (*Host).cmdMemorySet,
	})

	add(root, rootGroup, &command{
		name:        "quit",
		brief:       "Quit the program",
		description: "Quit the program.",
		usage:       "quit",
		run:         (*Host).cmdQuit,
	})
	add(root, rootGroup, &command{
		name:  "registers",
		brief: "Display register values",
		description: "Display the current contents of the CPU registers," +
			" the cycle count and the next instruction. Use set to change a" +
			" register.",
		usage: "registers",
		run:   (*Host).cmdRegisters,
	})
	add(root, rootGroup, &command{
		name:  "reset",
		brief: "Reset the machine",
		description: "Reset the CPU from the ROM header, return the flash to" +
			" read-array mode and reset the hardware ports.",
		usage: "reset",
		run:   (*Host).cmdReset,
	})
	add(root, rootGroup, &command{
		name:  "run",
		brief: "Run the CPU",
		description: "Run the CPU until a breakpoint is hit or until the" +
			" user types Ctrl-C. Timer interrupts are raised every" +
			" TickInterval instructions.",
		usage: "run [<address>]",
		run:   (*Host).cmdRun,
	})
	add(root, rootGroup, &command{
		name:  "script",
		brief: "Run a Lua script",
		description: "Run a Lua script that drives the emulator. Scripts may" +
			" call command, reg, setreg, peek, peekw, peekl, poke, step," +
			" batch, tick and interrupt.",
		usage: "script <filename>",
		run:   (*Host).cmdScript,
	})
	add(root, rootGroup, &command{
		name:  "set",
		brief: "Set a register or configuration variable",
		description: "Set the value of a CPU register or a configuration" +
			" variable. To see the current values of all configuration" +
			" variables, type set without any arguments.",
		usage: "set [<name> <value>]",
		run:   (*Host).cmdSet,
	})

	// Step commands
	st, stg := addGroup(root, "step", "Step the CPU")
	add(st, stg, &command{
		name:  "in",
		brief: "Step into next instruction",
		description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call or trap, step into it." +
			" The number of steps may be specified as an option.",
		usage: "step in [<count>]",
		run:   (*Host).cmdStepIn,
	})
	add(st, stg, &command{
		name:  "over",
		brief: "Step over next instruction",
		description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call or trap, run until it" +
			" returns. The number of steps may be specified as an option.",
		usage: "step over [<count>]",
		run:   (*Host).cmdStepOver,
	})
	add(st, stg, &command{
		name:  "out",
		brief: "Step out of the current subroutine",
		description: "Run the CPU until it returns from the current" +
			" subroutine or exception handler.",
		usage: "step out",
		run:   (*Host).cmdStepOut,
	})

	// Add command shortcuts.
	root.AddShortcut("b", "breakpoint")
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("db", "databreakpoint")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("n", "step over")
	root.AddShortcut("r", "registers")
	root.AddShortcut("s", "step in")
	root.AddShortcut("so", "step out")
	root.AddShortcut("?", "help")

	cmds = root
}
