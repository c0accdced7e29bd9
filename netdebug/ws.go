package netdebug

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/b8sell/go6502/mos6502"
)

var wsUpgrader = websocket.Upgrader{}

type wsConn struct {
	raw    *websocket.Conn
	msgBuf []uint8
}

func (c *wsConn) recvMsg() error {
	tp, msg, err := c.raw.ReadMessage()
	if err != nil {
		return err
	}
	if tp != websocket.BinaryMessage {
		return errors.New("netdebug: expected a binary websocket message")
	}
	c.msgBuf = append(c.msgBuf, msg...)
	return nil
}

func (c *wsConn) readByte() (uint8, error) {
	if len(c.msgBuf) < 1 {
		if err := c.recvMsg(); err != nil {
			return 0, err
		}
	}
	v := c.msgBuf[0]
	c.msgBuf = c.msgBuf[1:]
	return v, nil
}

func (c *wsConn) readWord() (uint16, error) {
	for len(c.msgBuf) < 2 {
		if err := c.recvMsg(); err != nil {
			return 0, err
		}
	}
	v := (uint16(c.msgBuf[0]) << 8) | uint16(c.msgBuf[1])
	c.msgBuf = c.msgBuf[2:]
	return v, nil
}

func (c *wsConn) write(b sendBuf) error {
	return c.raw.WriteMessage(websocket.BinaryMessage, b.buf)
}

func (c *wsConn) close() {
	c.raw.Close()
}

// ServeWebSocket registers a WebSocket handler at path on the default
// mux and blocks serving HTTP on addr, debugging m over one
// connection per upgraded client.
func ServeWebSocket(addr, path string, m *mos6502.Machine) error {
	http.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		raw, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("netdebug: websocket upgrade failed: %v", err)
			return
		}
		logger := log.New(log.Writer(), fmt.Sprintf("[netdebug/ws/%s] ", raw.RemoteAddr()), log.Flags())
		logger.Printf("client connected")

		c := &wsConn{raw: raw}
		newClient(m, c, logger).serve()
	})

	log.Printf("netdebug: WebSocket listening on %s%s", addr, path)
	return http.ListenAndServe(addr, nil)
}
