package mos6502

// operandKind tags what an addressing mode resolved to: a CPU
// register (accumulator), a memory address, or nothing at all
// (implied), in place of coupling each mode to a writer closure.
type operandKind uint8

const (
	operandImplied operandKind = iota
	operandAccumulator
	operandAddress
)

// operand is the result of resolving an addressing mode: either a
// register designator, an effective memory address, or nothing.
// crossed records whether the effective address's high byte differs
// from the mode's reference address - callers decide for themselves
// whether that matters for cycle accounting.
type operand struct {
	kind    operandKind
	addr    uint16
	crossed bool
}

// readOperand returns the current value the operand designates. It
// must not be called on an implied operand.
func (c *CPU) readOperand(o operand) uint8 {
	switch o.kind {
	case operandAccumulator:
		return c.A
	case operandAddress:
		return c.Mem.ReadByte(o.addr)
	default:
		panic("mos6502: readOperand called on an implied operand")
	}
}

// writeOperand stores v wherever the operand designates. It must not
// be called on an implied operand.
func (c *CPU) writeOperand(o operand, v uint8) {
	switch o.kind {
	case operandAccumulator:
		c.A = v
	case operandAddress:
		c.Mem.WriteByte(o.addr, v)
	default:
		panic("mos6502: writeOperand called on an implied operand")
	}
}

// addrModeFunc resolves an addressing mode against the CPU's current
// state. It must not advance PC, except for relative, which consumes
// its offset byte as specified.
type addrModeFunc func(c *CPU) operand

func modeImplied(c *CPU) operand {
	return operand{kind: operandImplied}
}

func modeAccumulator(c *CPU) operand {
	return operand{kind: operandAccumulator}
}

func modeImmediate(c *CPU) operand {
	return operand{kind: operandAddress, addr: c.PC}
}

func modeZeroPage(c *CPU) operand {
	return operand{kind: operandAddress, addr: uint16(c.Mem.ReadByte(c.PC))}
}

func modeZeroPageX(c *CPU) operand {
	base := c.Mem.ReadByte(c.PC)
	return operand{kind: operandAddress, addr: uint16(base + c.X)}
}

func modeZeroPageY(c *CPU) operand {
	base := c.Mem.ReadByte(c.PC)
	return operand{kind: operandAddress, addr: uint16(base + c.Y)}
}

func modeAbsolute(c *CPU) operand {
	return operand{kind: operandAddress, addr: c.Mem.ReadWord(c.PC, false)}
}

func absoluteIndexed(c *CPU, index uint8) operand {
	base := c.Mem.ReadWord(c.PC, false)
	addr := base + uint16(index)
	return operand{
		kind:    operandAddress,
		addr:    addr,
		crossed: (base & 0xFF00) != (addr & 0xFF00),
	}
}

func modeAbsoluteX(c *CPU) operand {
	return absoluteIndexed(c, c.X)
}

func modeAbsoluteY(c *CPU) operand {
	return absoluteIndexed(c, c.Y)
}

// modeIndirect resolves JMP's indirect operand: the word at the
// absolute address given at PC, with the page-wrap bug on the high
// byte fetch.
func modeIndirect(c *CPU) operand {
	ptr := c.Mem.ReadWord(c.PC, false)
	return operand{kind: operandAddress, addr: c.Mem.ReadWord(ptr, true)}
}

// modeIndirectX resolves (indirect,X): the word at
// ((zero-page + X) & 0xFF), page-wrapped.
func modeIndirectX(c *CPU) operand {
	zp := c.Mem.ReadByte(c.PC)
	ptr := uint16(zp + c.X)
	return operand{kind: operandAddress, addr: c.Mem.ReadWord(ptr, true)}
}

// modeIndirectY resolves (indirect),Y: base = word at zero-page
// (page-wrapped); result = base + Y. The page-cross reference is
// base.
func modeIndirectY(c *CPU) operand {
	zp := c.Mem.ReadByte(c.PC)
	base := c.Mem.ReadWord(uint16(zp), true)
	addr := base + uint16(c.Y)
	return operand{
		kind:    operandAddress,
		addr:    addr,
		crossed: (base & 0xFF00) != (addr & 0xFF00),
	}
}

// modeRelative resolves a branch's signed 8-bit offset, consuming it
// (PC += 1) as it goes. The page-cross reference is PC after that
// consumption.
func modeRelative(c *CPU) operand {
	offset := c.Mem.ReadByte(c.PC)
	c.PC++

	var target uint16
	if offset&0x80 != 0 {
		target = c.PC - uint16(offset^0xFF) - 1
	} else {
		target = c.PC + uint16(offset)
	}

	return operand{
		kind:    operandAddress,
		addr:    target,
		crossed: (target & 0xFF00) != (c.PC & 0xFF00),
	}
}
