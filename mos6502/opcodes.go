package mos6502

import "fmt"

// Mode identifies an addressing mode for display and table metadata.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type Mode uint8

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeRelative
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
)

var modeNames = map[Mode]string{
	ModeImplied:     "IMPLIED",
	ModeAccumulator: "ACCUMULATOR",
	ModeImmediate:   "IMMEDIATE",
	ModeZeroPage:    "ZERO_PAGE",
	ModeZeroPageX:   "ZERO_PAGE_X",
	ModeZeroPageY:   "ZERO_PAGE_Y",
	ModeRelative:    "RELATIVE",
	ModeAbsolute:    "ABSOLUTE",
	ModeAbsoluteX:   "ABSOLUTE_X",
	ModeAbsoluteY:   "ABSOLUTE_Y",
	ModeIndirect:    "INDIRECT",
	ModeIndirectX:   "INDIRECT_X",
	ModeIndirectY:   "INDIRECT_Y",
}

func (m Mode) String() string {
	return modeNames[m]
}

var modeFuncs = map[Mode]addrModeFunc{
	ModeImplied:     modeImplied,
	ModeAccumulator: modeAccumulator,
	ModeImmediate:   modeImmediate,
	ModeZeroPage:    modeZeroPage,
	ModeZeroPageX:   modeZeroPageX,
	ModeZeroPageY:   modeZeroPageY,
	ModeRelative:    modeRelative,
	ModeAbsolute:    modeAbsolute,
	ModeAbsoluteX:   modeAbsoluteX,
	ModeAbsoluteY:   modeAbsoluteY,
	ModeIndirect:    modeIndirect,
	ModeIndirectX:   modeIndirectX,
	ModeIndirectY:   modeIndirectY,
}

// execFunc carries out a mnemonic's behavior against a resolved
// operand, returning any extra cycles beyond the opcode's base count
// (taken-branch and branch-page-cross penalties; everything else is
// accounted for by opcode.PageCrossSensitive).
type execFunc func(c *CPU, o operand) int

// opcode is one slot of the 256-entry dispatch table: a mnemonic, the
// addressing mode it was assembled with, its total instruction length
// including the opcode byte, its base cycle cost, and whether that
// cost is bumped by a page-crossing effective address. PCControlling
// opcodes (branches, JMP, JSR, RTS, RTI, BRK) manage PC entirely
// themselves and are skipped by the driver's generic PC advance.
type opcode struct {
	Mnemonic           string
	Mode               Mode
	Bytes              uint8
	Cycles             uint8
	PageCrossSensitive bool
	PCControlling      bool
	exec               execFunc
}

func (o opcode) String() string {
	return fmt.Sprintf("%s %s", o.Mnemonic, o.Mode)
}

// table is the process-wide, immutable-after-init opcode table. It is
// read-only once populated and may be shared by multiple CPU
// instances.
var table [256]*opcode

type opcodeOption func(*opcode)

func pageCrossSensitive() opcodeOption {
	return func(o *opcode) { o.PageCrossSensitive = true }
}

func pcControlling() opcodeOption {
	return func(o *opcode) { o.PCControlling = true }
}

func register(b uint8, mnemonic string, mode Mode, bytes, cycles uint8, exec execFunc, opts ...opcodeOption) {
	op := &opcode{
		Mnemonic: mnemonic,
		Mode:     mode,
		Bytes:    bytes,
		Cycles:   cycles,
		exec:     exec,
	}
	for _, opt := range opts {
		opt(op)
	}
	table[b] = op
}

// Lookup returns the table entry for b and whether it is populated.
func Lookup(b uint8) (mnemonic string, mode Mode, bytes, cycles uint8, ok bool) {
	op := table[b]
	if op == nil {
		return "", 0, 0, 0, false
	}
	return op.Mnemonic, op.Mode, op.Bytes, op.Cycles, true
}

func init() {
	initOpcodeTable()
}

// initOpcodeTable populates the 256-slot dispatch table with every
// documented 6502 opcode. Unofficial/undocumented opcodes are left
// empty; dispatching one is an UnknownOpcodeError.
func initOpcodeTable() {
	// ADC - Add with Carry
	register(0x69, "ADC", ModeImmediate, 2, 2, opADC)
	register(0x65, "ADC", ModeZeroPage, 2, 3, opADC)
	register(0x75, "ADC", ModeZeroPageX, 2, 4, opADC)
	register(0x6D, "ADC", ModeAbsolute, 3, 4, opADC)
	register(0x7D, "ADC", ModeAbsoluteX, 3, 4, opADC, pageCrossSensitive())
	register(0x79, "ADC", ModeAbsoluteY, 3, 4, opADC, pageCrossSensitive())
	register(0x61, "ADC", ModeIndirectX, 2, 6, opADC)
	register(0x71, "ADC", ModeIndirectY, 2, 5, opADC, pageCrossSensitive())

	// AND - Logical AND
	register(0x29, "AND", ModeImmediate, 2, 2, opAND)
	register(0x25, "AND", ModeZeroPage, 2, 3, opAND)
	register(0x35, "AND", ModeZeroPageX, 2, 4, opAND)
	register(0x2D, "AND", ModeAbsolute, 3, 4, opAND)
	register(0x3D, "AND", ModeAbsoluteX, 3, 4, opAND, pageCrossSensitive())
	register(0x39, "AND", ModeAbsoluteY, 3, 4, opAND, pageCrossSensitive())
	register(0x21, "AND", ModeIndirectX, 2, 6, opAND)
	register(0x31, "AND", ModeIndirectY, 2, 5, opAND, pageCrossSensitive())

	// ASL - Arithmetic Shift Left
	register(0x0A, "ASL", ModeAccumulator, 1, 2, opASL)
	register(0x06, "ASL", ModeZeroPage, 2, 5, opASL)
	register(0x16, "ASL", ModeZeroPageX, 2, 6, opASL)
	register(0x0E, "ASL", ModeAbsolute, 3, 6, opASL)
	register(0x1E, "ASL", ModeAbsoluteX, 3, 7, opASL)

	// Branches
	register(0x90, "BCC", ModeRelative, 2, 2, branch(FlagCarry, false), pcControlling())
	register(0xB0, "BCS", ModeRelative, 2, 2, branch(FlagCarry, true), pcControlling())
	register(0xF0, "BEQ", ModeRelative, 2, 2, branch(FlagZero, true), pcControlling())
	register(0xD0, "BNE", ModeRelative, 2, 2, branch(FlagZero, false), pcControlling())
	register(0x30, "BMI", ModeRelative, 2, 2, branch(FlagNegative, true), pcControlling())
	register(0x10, "BPL", ModeRelative, 2, 2, branch(FlagNegative, false), pcControlling())
	register(0x50, "BVC", ModeRelative, 2, 2, branch(FlagOverflow, false), pcControlling())
	register(0x70, "BVS", ModeRelative, 2, 2, branch(FlagOverflow, true), pcControlling())

	// BIT - Bit Test
	register(0x24, "BIT", ModeZeroPage, 2, 3, opBIT)
	register(0x2C, "BIT", ModeAbsolute, 3, 4, opBIT)

	// BRK - Force Interrupt
	register(0x00, "BRK", ModeImplied, 2, 7, opBRK, pcControlling())

	// Flag clear/set, single byte, no operand.
	register(0x18, "CLC", ModeImplied, 1, 2, clearFlag(FlagCarry))
	register(0xD8, "CLD", ModeImplied, 1, 2, clearFlag(FlagDecimal))
	register(0x58, "CLI", ModeImplied, 1, 2, clearFlag(FlagInterruptDisable))
	register(0xB8, "CLV", ModeImplied, 1, 2, clearFlag(FlagOverflow))
	register(0x38, "SEC", ModeImplied, 1, 2, setFlagOp(FlagCarry))
	register(0xF8, "SED", ModeImplied, 1, 2, setFlagOp(FlagDecimal))
	register(0x78, "SEI", ModeImplied, 1, 2, setFlagOp(FlagInterruptDisable))

	// CMP/CPX/CPY - Compare
	register(0xC9, "CMP", ModeImmediate, 2, 2, compareWith(regA))
	register(0xC5, "CMP", ModeZeroPage, 2, 3, compareWith(regA))
	register(0xD5, "CMP", ModeZeroPageX, 2, 4, compareWith(regA))
	register(0xCD, "CMP", ModeAbsolute, 3, 4, compareWith(regA))
	register(0xDD, "CMP", ModeAbsoluteX, 3, 4, compareWith(regA), pageCrossSensitive())
	register(0xD9, "CMP", ModeAbsoluteY, 3, 4, compareWith(regA), pageCrossSensitive())
	register(0xC1, "CMP", ModeIndirectX, 2, 6, compareWith(regA))
	register(0xD1, "CMP", ModeIndirectY, 2, 5, compareWith(regA), pageCrossSensitive())
	register(0xE0, "CPX", ModeImmediate, 2, 2, compareWith(regX))
	register(0xE4, "CPX", ModeZeroPage, 2, 3, compareWith(regX))
	register(0xEC, "CPX", ModeAbsolute, 3, 4, compareWith(regX))
	register(0xC0, "CPY", ModeImmediate, 2, 2, compareWith(regY))
	register(0xC4, "CPY", ModeZeroPage, 2, 3, compareWith(regY))
	register(0xCC, "CPY", ModeAbsolute, 3, 4, compareWith(regY))

	// DEC/INC - memory increment/decrement
	register(0xC6, "DEC", ModeZeroPage, 2, 5, opDEC)
	register(0xD6, "DEC", ModeZeroPageX, 2, 6, opDEC)
	register(0xCE, "DEC", ModeAbsolute, 3, 6, opDEC)
	register(0xDE, "DEC", ModeAbsoluteX, 3, 7, opDEC)
	register(0xE6, "INC", ModeZeroPage, 2, 5, opINC)
	register(0xF6, "INC", ModeZeroPageX, 2, 6, opINC)
	register(0xEE, "INC", ModeAbsolute, 3, 6, opINC)
	register(0xFE, "INC", ModeAbsoluteX, 3, 7, opINC)

	// DEX/DEY/INX/INY - register increment/decrement
	register(0xCA, "DEX", ModeImplied, 1, 2, regStep(regX, -1))
	register(0x88, "DEY", ModeImplied, 1, 2, regStep(regY, -1))
	register(0xE8, "INX", ModeImplied, 1, 2, regStep(regX, 1))
	register(0xC8, "INY", ModeImplied, 1, 2, regStep(regY, 1))

	// EOR - Exclusive OR
	register(0x49, "EOR", ModeImmediate, 2, 2, opEOR)
	register(0x45, "EOR", ModeZeroPage, 2, 3, opEOR)
	register(0x55, "EOR", ModeZeroPageX, 2, 4, opEOR)
	register(0x4D, "EOR", ModeAbsolute, 3, 4, opEOR)
	register(0x5D, "EOR", ModeAbsoluteX, 3, 4, opEOR, pageCrossSensitive())
	register(0x59, "EOR", ModeAbsoluteY, 3, 4, opEOR, pageCrossSensitive())
	register(0x41, "EOR", ModeIndirectX, 2, 6, opEOR)
	register(0x51, "EOR", ModeIndirectY, 2, 5, opEOR, pageCrossSensitive())

	// JMP/JSR/RTS/RTI
	register(0x4C, "JMP", ModeAbsolute, 3, 3, opJMP, pcControlling())
	register(0x6C, "JMP", ModeIndirect, 3, 5, opJMP, pcControlling())
	register(0x20, "JSR", ModeAbsolute, 3, 6, opJSR, pcControlling())
	register(0x60, "RTS", ModeImplied, 1, 6, opRTS, pcControlling())
	register(0x40, "RTI", ModeImplied, 1, 6, opRTI, pcControlling())

	// LDA/LDX/LDY - Load register
	register(0xA9, "LDA", ModeImmediate, 2, 2, loadReg(regA))
	register(0xA5, "LDA", ModeZeroPage, 2, 3, loadReg(regA))
	register(0xB5, "LDA", ModeZeroPageX, 2, 4, loadReg(regA))
	register(0xAD, "LDA", ModeAbsolute, 3, 4, loadReg(regA))
	register(0xBD, "LDA", ModeAbsoluteX, 3, 4, loadReg(regA), pageCrossSensitive())
	register(0xB9, "LDA", ModeAbsoluteY, 3, 4, loadReg(regA), pageCrossSensitive())
	register(0xA1, "LDA", ModeIndirectX, 2, 6, loadReg(regA))
	register(0xB1, "LDA", ModeIndirectY, 2, 5, loadReg(regA), pageCrossSensitive())
	register(0xA2, "LDX", ModeImmediate, 2, 2, loadReg(regX))
	register(0xA6, "LDX", ModeZeroPage, 2, 3, loadReg(regX))
	register(0xB6, "LDX", ModeZeroPageY, 2, 4, loadReg(regX))
	register(0xAE, "LDX", ModeAbsolute, 3, 4, loadReg(regX))
	register(0xBE, "LDX", ModeAbsoluteY, 3, 4, loadReg(regX), pageCrossSensitive())
	register(0xA0, "LDY", ModeImmediate, 2, 2, loadReg(regY))
	register(0xA4, "LDY", ModeZeroPage, 2, 3, loadReg(regY))
	register(0xB4, "LDY", ModeZeroPageX, 2, 4, loadReg(regY))
	register(0xAC, "LDY", ModeAbsolute, 3, 4, loadReg(regY))
	register(0xBC, "LDY", ModeAbsoluteX, 3, 4, loadReg(regY), pageCrossSensitive())

	// LSR - Logical Shift Right
	register(0x4A, "LSR", ModeAccumulator, 1, 2, opLSR)
	register(0x46, "LSR", ModeZeroPage, 2, 5, opLSR)
	register(0x56, "LSR", ModeZeroPageX, 2, 6, opLSR)
	register(0x4E, "LSR", ModeAbsolute, 3, 6, opLSR)
	register(0x5E, "LSR", ModeAbsoluteX, 3, 7, opLSR)

	// NOP
	register(0xEA, "NOP", ModeImplied, 1, 2, opNOP)

	// ORA - Logical Inclusive OR
	register(0x09, "ORA", ModeImmediate, 2, 2, opORA)
	register(0x05, "ORA", ModeZeroPage, 2, 3, opORA)
	register(0x15, "ORA", ModeZeroPageX, 2, 4, opORA)
	register(0x0D, "ORA", ModeAbsolute, 3, 4, opORA)
	register(0x1D, "ORA", ModeAbsoluteX, 3, 4, opORA, pageCrossSensitive())
	register(0x19, "ORA", ModeAbsoluteY, 3, 4, opORA, pageCrossSensitive())
	register(0x01, "ORA", ModeIndirectX, 2, 6, opORA)
	register(0x11, "ORA", ModeIndirectY, 2, 5, opORA, pageCrossSensitive())

	// Stack ops
	register(0x48, "PHA", ModeImplied, 1, 3, opPHA)
	register(0x08, "PHP", ModeImplied, 1, 3, opPHP)
	register(0x68, "PLA", ModeImplied, 1, 4, opPLA)
	register(0x28, "PLP", ModeImplied, 1, 4, opPLP)

	// ROL/ROR - Rotate
	register(0x2A, "ROL", ModeAccumulator, 1, 2, opROL)
	register(0x26, "ROL", ModeZeroPage, 2, 5, opROL)
	register(0x36, "ROL", ModeZeroPageX, 2, 6, opROL)
	register(0x2E, "ROL", ModeAbsolute, 3, 6, opROL)
	register(0x3E, "ROL", ModeAbsoluteX, 3, 7, opROL)
	register(0x6A, "ROR", ModeAccumulator, 1, 2, opROR)
	register(0x66, "ROR", ModeZeroPage, 2, 5, opROR)
	register(0x76, "ROR", ModeZeroPageX, 2, 6, opROR)
	register(0x6E, "ROR", ModeAbsolute, 3, 6, opROR)
	register(0x7E, "ROR", ModeAbsoluteX, 3, 7, opROR)

	// SBC - Subtract with Carry
	register(0xE9, "SBC", ModeImmediate, 2, 2, opSBC)
	register(0xE5, "SBC", ModeZeroPage, 2, 3, opSBC)
	register(0xF5, "SBC", ModeZeroPageX, 2, 4, opSBC)
	register(0xED, "SBC", ModeAbsolute, 3, 4, opSBC)
	register(0xFD, "SBC", ModeAbsoluteX, 3, 4, opSBC, pageCrossSensitive())
	register(0xF9, "SBC", ModeAbsoluteY, 3, 4, opSBC, pageCrossSensitive())
	register(0xE1, "SBC", ModeIndirectX, 2, 6, opSBC)
	register(0xF1, "SBC", ModeIndirectY, 2, 5, opSBC, pageCrossSensitive())

	// STA/STX/STY - Store register. Never page-cross-sensitive: the
	// write always costs the same regardless of the address computed.
	register(0x85, "STA", ModeZeroPage, 2, 3, storeReg(regA))
	register(0x95, "STA", ModeZeroPageX, 2, 4, storeReg(regA))
	register(0x8D, "STA", ModeAbsolute, 3, 4, storeReg(regA))
	register(0x9D, "STA", ModeAbsoluteX, 3, 5, storeReg(regA))
	register(0x99, "STA", ModeAbsoluteY, 3, 5, storeReg(regA))
	register(0x81, "STA", ModeIndirectX, 2, 6, storeReg(regA))
	register(0x91, "STA", ModeIndirectY, 2, 6, storeReg(regA))
	register(0x86, "STX", ModeZeroPage, 2, 3, storeReg(regX))
	register(0x96, "STX", ModeZeroPageY, 2, 4, storeReg(regX))
	register(0x8E, "STX", ModeAbsolute, 3, 4, storeReg(regX))
	register(0x84, "STY", ModeZeroPage, 2, 3, storeReg(regY))
	register(0x94, "STY", ModeZeroPageX, 2, 4, storeReg(regY))
	register(0x8C, "STY", ModeAbsolute, 3, 4, storeReg(regY))

	// Register transfers
	register(0xAA, "TAX", ModeImplied, 1, 2, transfer(regA, regX))
	register(0xA8, "TAY", ModeImplied, 1, 2, transfer(regA, regY))
	register(0xBA, "TSX", ModeImplied, 1, 2, transferSPtoX)
	register(0x8A, "TXA", ModeImplied, 1, 2, transfer(regX, regA))
	register(0x9A, "TXS", ModeImplied, 1, 2, transferXtoSP)
	register(0x98, "TYA", ModeImplied, 1, 2, transfer(regY, regA))
}
