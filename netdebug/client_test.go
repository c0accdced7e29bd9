package netdebug

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/b8sell/go6502/mos6502"
)

// memConn is an in-memory conn for exercising the command loop
// without opening a real socket.
type memConn struct {
	in     *bytes.Reader
	out    bytes.Buffer
	closed bool
}

func newMemConn(in []uint8) *memConn {
	return &memConn{in: bytes.NewReader(in)}
}

func (c *memConn) readByte() (uint8, error) {
	var b [1]uint8
	if _, err := io.ReadFull(c.in, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *memConn) readWord() (uint16, error) {
	var b [2]uint8
	if _, err := io.ReadFull(c.in, b[:]); err != nil {
		return 0, err
	}
	return (uint16(b[0]) << 8) | uint16(b[1]), nil
}

func (c *memConn) write(b sendBuf) error {
	_, err := c.out.Write(b.buf)
	return err
}

func (c *memConn) close() {
	c.closed = true
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestServeNextCmdReadWriteRegisters(t *testing.T) {
	m := mos6502.NewMachine()
	c := newMemConn([]uint8{byte(opWriteA), 0x42, byte(opReadA)})
	cl := newClient(m, c, discardLogger())

	if err := cl.serveNextCmd(); err != nil {
		t.Fatalf("WriteA: %v", err)
	}
	if m.CPU.A != 0x42 {
		t.Fatalf("A = 0x%02x, want 0x42", m.CPU.A)
	}

	if err := cl.serveNextCmd(); err != nil {
		t.Fatalf("ReadA: %v", err)
	}
	// WriteA's bare ack, then ReadA's ack and value.
	want := []uint8{byte(opAck), byte(opAck), 0x42}
	if got := c.out.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("response = %v, want %v", got, want)
	}
}

func TestServeNextCmdStep(t *testing.T) {
	m := mos6502.NewMachine()
	m.CPU.PC = 0x0300
	m.CPU.Mem.WriteByte(0x0300, 0xA9) // LDA #$01
	m.CPU.Mem.WriteByte(0x0301, 0x01)

	c := newMemConn([]uint8{byte(opStep)})
	cl := newClient(m, c, discardLogger())

	if err := cl.serveNextCmd(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if m.CPU.A != 1 {
		t.Errorf("A = %d, want 1 after stepping LDA #$01", m.CPU.A)
	}
	if got, want := c.out.Bytes(), []uint8{byte(opAck)}; !bytes.Equal(got, want) {
		t.Errorf("response = %v, want %v", got, want)
	}
}

func TestServeNextCmdBye(t *testing.T) {
	m := mos6502.NewMachine()
	c := newMemConn([]uint8{byte(opBye)})
	cl := newClient(m, c, discardLogger())

	if err := cl.serveNextCmd(); err != nil {
		t.Fatalf("Bye: %v", err)
	}
	if !cl.closed {
		t.Error("closed should be true after opBye")
	}
}

func TestServeNextCmdUnknown(t *testing.T) {
	m := mos6502.NewMachine()
	c := newMemConn([]uint8{0xFF})
	cl := newClient(m, c, discardLogger())

	if err := cl.serveNextCmd(); err != nil {
		t.Fatalf("unrecognized command should still ack the connection: %v", err)
	}
	if got, want := c.out.Bytes(), []uint8{byte(opFail)}; !bytes.Equal(got, want) {
		t.Errorf("response = %v, want %v", got, want)
	}
}
