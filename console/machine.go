// Package console implements a terminal debugger for a mos6502 CPU:
// a letter-keyed menu for breakpoints, single-stepping, running to a
// breakpoint, memory/stack/instruction dumps, and setting the program
// counter directly.
package console

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/b8sell/go6502/mos6502"
)

// Console drives a Machine interactively from stdin/stdout.
type Console struct {
	machine *mos6502.Machine
}

// New returns a Console driving m.
func New(m *mos6502.Machine) *Console {
	return &Console{machine: m}
}

// BIOS runs the menu loop until the user quits. ctx is the parent of
// every (R)un's context: cancelling it stops a run in progress but
// does not end the menu loop.
func (c *Console) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})
	cpu := c.machine.CPU

	for {
		fmt.Printf("PC=0x%04x SP=0x%02x SR=0x%02x A=0x%02x X=0x%02x Y=0x%02x CC=%d\n\n",
			cpu.PC, cpu.SP, cpu.SR, cpu.A, cpu.X, cpu.Y, cpu.CC)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to next breakpoint")
		fmt.Println("(S)tep - step one instruction")
		fmt.Println("R(e)set - reset the CPU and RAM")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show the last 3 items on the stack")
		fmt.Println("(I)nstruction - show bytes at the current instruction")
		fmt.Println("(P)C - set the program counter")
		fmt.Println("(Q)uit - exit the debugger")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			cpu.PC = readAddress("Set PC to what address (eg: 0400)?: ")
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				select {
				case <-sigQuit:
					cancel()
				case <-ctx.Done():
				}
			}(cctx)
			if err := cpu.Run(cctx, breaks); err != nil {
				fmt.Printf("run stopped: %v\n\n", err)
			}
			cancel()
		case 's', 'S':
			if _, err := cpu.Step(); err != nil {
				fmt.Printf("step failed: %v\n\n", err)
			}
		case 't', 'T':
			fmt.Println()
			for i := 1; i <= 3 && uint16(cpu.SP)+uint16(i) <= 0xFF; i++ {
				addr := mos6502.StackPage | (uint16(cpu.SP) + uint16(i))
				fmt.Printf("0x%04x: 0x%02x ", addr, cpu.Mem.ReadByte(addr))
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Println()
			fmt.Println(cpu.DisassembleAt(cpu.PC))
			fmt.Printf("\n")
		case 'e', 'E':
			c.machine.Reset()
			cpu = c.machine.CPU
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			col := 1
			for addr := low; ; addr++ {
				fmt.Printf("0x%04x: 0x%02x ", addr, cpu.Mem.ReadByte(addr))
				if col%5 == 0 {
					fmt.Println()
				}
				if addr == high || addr == math.MaxUint16 {
					break
				}
				col++
			}
			fmt.Printf("\n\n")
		}
	}
}

// readAddress prompts with msg and parses a 4-digit hex address from
// stdin.
func readAddress(msg string) uint16 {
	fmt.Print(msg)
	var hex string
	fmt.Scanf("%s\n", &hex)
	var addr uint16
	fmt.Sscanf(hex, "%x", &addr)
	return addr
}
