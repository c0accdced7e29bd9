package main

import (
	"context"
	"flag"
	"log"

	"github.com/b8sell/go6502/console"
	"github.com/b8sell/go6502/image"
	"github.com/b8sell/go6502/mos6502"
	"github.com/b8sell/go6502/netdebug"
)

var (
	imagePath = flag.String("image", "", "Path to a memory image to load before running.")
	tcpAddr   = flag.String("netdebug_tcp", "", "If set, serve the wire debug protocol on this TCP address.")
	wsAddr    = flag.String("netdebug_ws", "", "If set, serve the wire debug protocol over WebSocket on this address.")
	wsPath    = flag.String("netdebug_ws_path", "/go6502", "WebSocket path to serve the debug protocol on.")
	headless  = flag.Bool("headless", false, "Skip the terminal debugger; only useful with a netdebug flag set.")
)

func main() {
	flag.Parse()

	m := mos6502.NewMachine()

	if *imagePath != "" {
		img, err := image.LoadFile(*imagePath)
		if err != nil {
			log.Fatalf("couldn't load %q: %v", *imagePath, err)
		}
		if err := img.InstallInto(m.CPU.Mem); err != nil {
			log.Fatalf("couldn't install %q: %v", *imagePath, err)
		}
		m.CPU.PC = img.LoadAddr
	}

	if *tcpAddr != "" {
		go func() {
			if err := netdebug.ServeTCP(*tcpAddr, m); err != nil {
				log.Fatalf("netdebug TCP server: %v", err)
			}
		}()
	}

	if *wsAddr != "" {
		go func() {
			if err := netdebug.ServeWebSocket(*wsAddr, *wsPath, m); err != nil {
				log.Fatalf("netdebug WebSocket server: %v", err)
			}
		}()
	}

	if *headless {
		select {}
	}

	console.New(m).BIOS(context.Background())
}
