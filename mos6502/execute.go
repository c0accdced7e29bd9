package mos6502

// Step executes exactly one instruction: fetch the opcode, resolve
// its addressing mode, run its behavior, advance PC past any
// operands it didn't consume itself, and account cycles. It returns
// the CPU's cumulative cycle count after the step.
//
// An unknown opcode aborts the step before any state but the
// opcode-fetch PC bump is touched, and is reported as
// *UnknownOpcodeError.
func (c *CPU) Step() (uint64, error) {
	opcodePC := c.PC
	b := c.Mem.ReadByte(c.PC)
	c.PC++

	op := table[b]
	if op == nil {
		return c.CC, &UnknownOpcodeError{Opcode: b, PC: opcodePC}
	}

	o := modeFuncs[op.Mode](c)
	extra := op.exec(c, o)

	if !op.PCControlling && op.Bytes > 1 {
		c.PC += uint16(op.Bytes - 1)
	}

	cycles := uint64(op.Cycles)
	if op.PageCrossSensitive && o.crossed {
		cycles++
	}
	cycles += uint64(extra)
	c.CC += cycles

	return c.CC, nil
}

// regSel designates one of the 6502's 8-bit registers for the
// register-parameterized instruction templates below (loads, stores,
// compares, transfers, inc/dec).
type regSel int

const (
	regA regSel = iota
	regX
	regY
)

func (c *CPU) getReg(r regSel) uint8 {
	switch r {
	case regA:
		return c.A
	case regX:
		return c.X
	default:
		return c.Y
	}
}

func (c *CPU) setReg(r regSel, v uint8) {
	switch r {
	case regA:
		c.A = v
	case regX:
		c.X = v
	default:
		c.Y = v
	}
}

// --- Arithmetic ---

func opADC(c *CPU, o operand) int {
	c.adc(c.readOperand(o))
	return 0
}

func opSBC(c *CPU, o operand) int {
	// SBC is ADC with the operand's bits inverted.
	c.adc(c.readOperand(o) ^ 0xFF)
	return 0
}

func (c *CPU) adc(value uint8) {
	a := c.A
	carryIn := uint16(c.GetFlag(FlagCarry))
	sum := uint16(a) + uint16(value) + carryIn
	result := uint8(sum)

	c.setFlagBit(FlagCarry, sum > 0xFF)
	c.setFlagBit(FlagOverflow, (uint16(a)^sum)&(uint16(value)^sum)&0x80 != 0)
	c.A = result
	c.SetFlagsNZ(c.A)
}

// --- Logic ---

func opAND(c *CPU, o operand) int {
	c.A &= c.readOperand(o)
	c.SetFlagsNZ(c.A)
	return 0
}

func opORA(c *CPU, o operand) int {
	c.A |= c.readOperand(o)
	c.SetFlagsNZ(c.A)
	return 0
}

func opEOR(c *CPU, o operand) int {
	c.A ^= c.readOperand(o)
	c.SetFlagsNZ(c.A)
	return 0
}

func opBIT(c *CPU, o operand) int {
	v := c.readOperand(o)
	c.setFlagBit(FlagZero, c.A&v == 0)
	c.setFlagBit(FlagNegative, v&0x80 != 0)
	c.setFlagBit(FlagOverflow, v&0x40 != 0)
	return 0
}

// --- Shifts and rotates ---

func opASL(c *CPU, o operand) int {
	v := c.readOperand(o)
	c.setFlagBit(FlagCarry, v&0x80 != 0)
	result := v << 1
	c.writeOperand(o, result)
	c.SetFlagsNZ(result)
	return 0
}

func opLSR(c *CPU, o operand) int {
	v := c.readOperand(o)
	c.setFlagBit(FlagCarry, v&0x01 != 0)
	result := v >> 1
	c.writeOperand(o, result)
	c.SetFlagsNZ(result)
	return 0
}

func opROL(c *CPU, o operand) int {
	v := c.readOperand(o)
	carryIn := c.GetFlag(FlagCarry)
	c.setFlagBit(FlagCarry, v&0x80 != 0)
	result := (v << 1) | carryIn
	c.writeOperand(o, result)
	c.SetFlagsNZ(result)
	return 0
}

func opROR(c *CPU, o operand) int {
	v := c.readOperand(o)
	carryIn := c.GetFlag(FlagCarry)
	c.setFlagBit(FlagCarry, v&0x01 != 0)
	result := (v >> 1) | (carryIn << 7)
	c.writeOperand(o, result)
	c.SetFlagsNZ(result)
	return 0
}

// --- Compare, increment, decrement ---

func compareWith(r regSel) execFunc {
	return func(c *CPU, o operand) int {
		reg := c.getReg(r)
		v := c.readOperand(o)
		c.setFlagBit(FlagCarry, reg >= v)
		c.SetFlagsNZ(reg - v)
		return 0
	}
}

func opINC(c *CPU, o operand) int {
	result := c.readOperand(o) + 1
	c.writeOperand(o, result)
	c.SetFlagsNZ(result)
	return 0
}

func opDEC(c *CPU, o operand) int {
	result := c.readOperand(o) - 1
	c.writeOperand(o, result)
	c.SetFlagsNZ(result)
	return 0
}

func regStep(r regSel, delta int8) execFunc {
	return func(c *CPU, o operand) int {
		result := c.getReg(r) + uint8(delta)
		c.setReg(r, result)
		c.SetFlagsNZ(result)
		return 0
	}
}

// --- Loads, stores, transfers ---

func loadReg(r regSel) execFunc {
	return func(c *CPU, o operand) int {
		v := c.readOperand(o)
		c.setReg(r, v)
		c.SetFlagsNZ(v)
		return 0
	}
}

func storeReg(r regSel) execFunc {
	return func(c *CPU, o operand) int {
		c.writeOperand(o, c.getReg(r))
		return 0
	}
}

// transfer moves src into dst and updates N/Z - every
// register-to-register transfer does this except TXS, handled
// separately below.
func transfer(src, dst regSel) execFunc {
	return func(c *CPU, o operand) int {
		v := c.getReg(src)
		c.setReg(dst, v)
		c.SetFlagsNZ(v)
		return 0
	}
}

func transferSPtoX(c *CPU, o operand) int {
	c.X = c.SP
	c.SetFlagsNZ(c.X)
	return 0
}

func transferXtoSP(c *CPU, o operand) int {
	c.SP = c.X
	return 0
}

// --- Flags ---

func clearFlag(f Flag) execFunc {
	return func(c *CPU, o operand) int {
		c.setFlagBit(f, false)
		return 0
	}
}

func setFlagOp(f Flag) execFunc {
	return func(c *CPU, o operand) int {
		c.setFlagBit(f, true)
		return 0
	}
}

// --- Control flow ---

func opJMP(c *CPU, o operand) int {
	c.PC = o.addr
	return 0
}

func opJSR(c *CPU, o operand) int {
	// c.PC currently points at the low byte of the target address
	// (mode resolution does not advance PC); +1 makes it point at the
	// high byte, the last operand byte.
	c.PushWord(c.PC + 1)
	c.PC = o.addr
	return 0
}

func opRTS(c *CPU, o operand) int {
	c.PC = c.PopWord() + 1
	return 0
}

func opRTI(c *CPU, o operand) int {
	popped := c.PopByte()
	// The Break bit is never latched in hardware, so RTI discards
	// whatever value it finds on the stack for that bit and leaves
	// it as it was; Unused always reads 1 regardless.
	breakBit := c.SR & (1 << FlagBreak)
	c.writeSR((popped &^ (1 << FlagBreak)) | breakBit)
	c.PC = c.PopWord()
	return 0
}

func opBRK(c *CPU, o operand) int {
	// c.PC points at the signature byte following the BRK opcode;
	// +1 skips it so RTI returns past it.
	c.PushWord(c.PC + 1)
	c.PushByte(c.SR | (1 << FlagBreak) | (1 << FlagUnused))
	c.setFlagBit(FlagInterruptDisable, true)
	c.PC = c.Mem.ReadWord(0xFFFE, false)
	return 0
}

func branch(f Flag, wantSet bool) execFunc {
	return func(c *CPU, o operand) int {
		bit := c.GetFlag(f) == 1
		if bit != wantSet {
			return 0
		}
		c.PC = o.addr
		if o.crossed {
			return 2
		}
		return 1
	}
}

// --- Stack ---

func opPHA(c *CPU, o operand) int {
	c.PushByte(c.A)
	return 0
}

func opPHP(c *CPU, o operand) int {
	c.PushByte(c.SR | (1 << FlagBreak) | (1 << FlagUnused))
	return 0
}

func opPLA(c *CPU, o operand) int {
	c.A = c.PopByte()
	c.SetFlagsNZ(c.A)
	return 0
}

func opPLP(c *CPU, o operand) int {
	c.writeSR(c.PopByte())
	return 0
}

// --- Misc ---

func opNOP(c *CPU, o operand) int {
	return 0
}
