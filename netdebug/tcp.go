package netdebug

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/b8sell/go6502/mos6502"
)

type tcpConn struct {
	raw    net.Conn
	reader *bufio.Reader
}

func (c *tcpConn) readByte() (uint8, error) {
	return c.reader.ReadByte()
}

func (c *tcpConn) readWord() (uint16, error) {
	var b [2]uint8
	if _, err := io.ReadFull(c.reader, b[:]); err != nil {
		return 0, err
	}
	return (uint16(b[0]) << 8) | uint16(b[1]), nil
}

func (c *tcpConn) write(b sendBuf) error {
	_, err := c.raw.Write(b.buf)
	return err
}

func (c *tcpConn) close() {
	c.raw.Close()
}

// ServeTCP listens on addr and serves the debug protocol to every
// connecting client against m, one goroutine per connection. It
// blocks until listening fails.
func ServeTCP(addr string, m *mos6502.Machine) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("netdebug: listen on %s: %w", addr, err)
	}
	log.Printf("netdebug: TCP listening on %s", addr)

	for {
		raw, err := listener.Accept()
		if err != nil {
			return fmt.Errorf("netdebug: accept: %w", err)
		}
		logger := log.New(log.Writer(), fmt.Sprintf("[netdebug/tcp/%s] ", raw.RemoteAddr()), log.Flags())
		logger.Printf("client connected")

		c := &tcpConn{raw: raw, reader: bufio.NewReader(raw)}
		go newClient(m, c, logger).serve()
	}
}
