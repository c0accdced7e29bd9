package mos6502

import (
	"context"
	"fmt"
)

// Machine owns a CPU and its memory for the lifetime of an emulation
// session: the host creates a Machine, drives it with Step or Run,
// and can swap in or snapshot its state at any point between steps.
type Machine struct {
	CPU *CPU
}

// NewMachine returns a Machine with a fresh CPU and RAM at their
// reset defaults.
func NewMachine() *Machine {
	return &Machine{CPU: New(NewMemory())}
}

// Reset reinitializes the CPU and RAM to their defaults, discarding
// whatever was installed before.
func (m *Machine) Reset() {
	m.CPU = New(NewMemory())
}

// LoadImage installs caller-supplied CPU and/or RAM. Either argument
// may be nil, in which case the Machine's current value is kept. If
// cpu is supplied without its own Mem wired up, it inherits the
// Machine's current memory.
func (m *Machine) LoadImage(cpu *CPU, mem *Memory) {
	if cpu != nil {
		if cpu.Mem == nil {
			cpu.Mem = m.CPU.Mem
		}
		m.CPU = cpu
	}
	if mem != nil {
		m.CPU.Mem = mem
	}
}

// Snapshot is an in-memory copy of a Machine's full state: the
// register file plus every byte of RAM. It owns its own memory array,
// independent of whatever Machine produced it.
type Snapshot struct {
	PC uint16
	SP uint8
	SR uint8
	X  uint8
	Y  uint8
	A  uint8
	CC uint64
	RAM [MemSize]uint8
}

// SaveImage returns a snapshot pair of the current CPU and RAM.
func (m *Machine) SaveImage() Snapshot {
	return Snapshot{
		PC:  m.CPU.PC,
		SP:  m.CPU.SP,
		SR:  m.CPU.SR,
		X:   m.CPU.X,
		Y:   m.CPU.Y,
		A:   m.CPU.A,
		CC:  m.CPU.CC,
		RAM: m.CPU.Mem.cells,
	}
}

// RestoreImage installs s as the Machine's entire state, replacing
// both the register file and RAM.
func (m *Machine) RestoreImage(s Snapshot) {
	mem := &Memory{cells: s.RAM}
	m.CPU = &CPU{
		PC:  s.PC,
		SP:  s.SP,
		SR:  s.SR,
		X:   s.X,
		Y:   s.Y,
		A:   s.A,
		CC:  s.CC,
		Mem: mem,
	}
}

// Run steps the CPU in a loop until ctx is cancelled or PC lands on
// one of breakpoints, checked before each instruction. A nil
// breakpoints map means "run until cancelled".
func (c *CPU) Run(ctx context.Context, breakpoints map[uint16]struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, hit := breakpoints[c.PC]; hit {
			return nil
		}

		if _, err := c.Step(); err != nil {
			return err
		}
	}
}

// DisassembleAt renders the instruction at addr as "MNEMONIC operand"
// using the opcode table's byte-length metadata, without interpreting
// the addressing mode's effective address - a plain hex dump of
// whatever operand bytes follow the opcode. The full assembler and
// disassembler front end remains a collaborator outside this core;
// this exists only to back the terminal and wire debuggers.
func (c *CPU) DisassembleAt(addr uint16) string {
	b := c.Mem.ReadByte(addr)
	op := table[b]
	if op == nil {
		return fmt.Sprintf("0x%02X ???", b)
	}

	switch op.Bytes {
	case 2:
		return fmt.Sprintf("%s $%02X", op.Mnemonic, c.Mem.ReadByte(addr+1))
	case 3:
		return fmt.Sprintf("%s $%04X", op.Mnemonic, c.Mem.ReadWord(addr+1, false))
	default:
		return op.Mnemonic
	}
}
