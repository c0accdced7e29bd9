package netdebug

import (
	"fmt"
	"log"

	"github.com/b8sell/go6502/mos6502"
)

// conn abstracts the transport a client is reached over - a raw TCP
// socket or a WebSocket - down to reading bytes/words and writing a
// completed sendBuf.
type conn interface {
	readByte() (uint8, error)
	readWord() (uint16, error)
	write(sendBuf) error
	close()
}

// client drives one connection's command loop against a shared
// machine. Each connection gets its own prefixed logger, the way the
// wire protocol this package is grounded on names a logger per
// client address.
type client struct {
	machine *mos6502.Machine
	conn    conn
	logger  *log.Logger
	closed  bool
}

func newClient(m *mos6502.Machine, c conn, logger *log.Logger) *client {
	return &client{machine: m, conn: c, logger: logger}
}

// serve runs the command loop until the client disconnects, asks to
// close, or a transport error occurs.
func (cl *client) serve() {
	for !cl.closed {
		if err := cl.serveNextCmd(); err != nil {
			cl.logger.Printf("closing connection: %v", err)
			break
		}
	}
	cl.conn.close()
}

func (cl *client) serveNextCmd() error {
	hdr, err := cl.conn.readByte()
	if err != nil {
		return err
	}

	c := cl.machine.CPU

	switch opbyte(hdr) {
	case opBye:
		cl.closed = true
		return nil

	case opStep:
		_, err := c.Step()
		if err != nil {
			return cl.send(failResponse())
		}
		return cl.send(ackResponse(0))

	case opReset:
		cl.machine.Reset()
		return cl.send(ackResponse(0))

	case opReadByte:
		addr, err := cl.conn.readWord()
		if err != nil {
			return err
		}
		res := ackResponse(1)
		res.appendByte(c.Mem.ReadByte(addr))
		return cl.send(res)

	case opWriteByte:
		addr, err := cl.conn.readWord()
		if err != nil {
			return err
		}
		v, err := cl.conn.readByte()
		if err != nil {
			return err
		}
		c.Mem.WriteByte(addr, v)
		return cl.send(ackResponse(0))

	case opReadWord:
		addr, err := cl.conn.readWord()
		if err != nil {
			return err
		}
		res := ackResponse(2)
		res.appendWord(c.Mem.ReadWord(addr, false))
		return cl.send(res)

	case opWriteWord:
		addr, err := cl.conn.readWord()
		if err != nil {
			return err
		}
		v, err := cl.conn.readWord()
		if err != nil {
			return err
		}
		c.Mem.WriteWord(addr, v)
		return cl.send(ackResponse(0))

	case opReadA:
		return cl.sendByte(c.A)
	case opWriteA:
		v, err := cl.conn.readByte()
		if err != nil {
			return err
		}
		c.A = v
		return cl.send(ackResponse(0))

	case opReadX:
		return cl.sendByte(c.X)
	case opWriteX:
		v, err := cl.conn.readByte()
		if err != nil {
			return err
		}
		c.X = v
		return cl.send(ackResponse(0))

	case opReadY:
		return cl.sendByte(c.Y)
	case opWriteY:
		v, err := cl.conn.readByte()
		if err != nil {
			return err
		}
		c.Y = v
		return cl.send(ackResponse(0))

	case opReadSP:
		return cl.sendByte(c.SP)
	case opWriteSP:
		v, err := cl.conn.readByte()
		if err != nil {
			return err
		}
		c.SP = v
		return cl.send(ackResponse(0))

	case opReadSR:
		return cl.sendByte(c.SR)
	case opWriteSR:
		v, err := cl.conn.readByte()
		if err != nil {
			return err
		}
		c.SR = v
		return cl.send(ackResponse(0))

	case opReadPC:
		res := ackResponse(2)
		res.appendWord(c.PC)
		return cl.send(res)
	case opWritePC:
		addr, err := cl.conn.readWord()
		if err != nil {
			return err
		}
		c.PC = addr
		return cl.send(ackResponse(0))

	case opReadCC:
		res := ackResponse(8)
		res.appendQuad(c.CC)
		return cl.send(res)

	case opDisasm:
		addr, err := cl.conn.readWord()
		if err != nil {
			return err
		}
		text := c.DisassembleAt(addr)
		res := ackResponse(1 + len(text))
		res.appendString(text)
		return cl.send(res)

	default:
		cl.logger.Printf("unrecognized command byte 0x%02x", hdr)
		return cl.send(failResponse())
	}
}

func (cl *client) sendByte(v uint8) error {
	res := ackResponse(1)
	res.appendByte(v)
	return cl.send(res)
}

func (cl *client) send(b sendBuf) error {
	if err := b.validate(); err != nil {
		return fmt.Errorf("netdebug: %w", err)
	}
	return cl.conn.write(b)
}
