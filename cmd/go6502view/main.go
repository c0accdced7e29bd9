// Command go6502view is a small ebiten-based viewer that steps a
// mos6502 CPU every frame and renders its 64KB memory as a 256x256
// greyscale pixel grid, one pixel per byte - a common way to eyeball
// what a running program is doing to memory without a full debugger.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/b8sell/go6502/image"
	"github.com/b8sell/go6502/mos6502"
)

var (
	imagePath     = flag.String("image", "", "Path to a memory image to load before running.")
	stepsPerFrame = flag.Int("steps_per_frame", 64, "CPU steps to run each rendered frame.")
)

const (
	gridSize = 256 // 256x256 = 65536 bytes, one pixel per byte
	scale    = 2
)

type game struct {
	machine *mos6502.Machine
	pixels  []byte // RGBA, gridSize*gridSize*4
	halted  error
}

func newGame(m *mos6502.Machine) *game {
	return &game{
		machine: m,
		pixels:  make([]byte, gridSize*gridSize*4),
	}
}

func (g *game) Update() error {
	if g.halted != nil {
		return nil
	}
	for i := 0; i < *stepsPerFrame; i++ {
		if _, err := g.machine.CPU.Step(); err != nil {
			g.halted = err
			break
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	mem := g.machine.CPU.Mem
	for addr := 0; addr < gridSize*gridSize; addr++ {
		v := mem.ReadByte(uint16(addr))
		off := addr * 4
		g.pixels[off] = v
		g.pixels[off+1] = v
		g.pixels[off+2] = v
		g.pixels[off+3] = 0xFF
	}
	screen.WritePixels(g.pixels)

	if g.halted != nil {
		ebitenutil.DebugPrint(screen, g.halted.Error())
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gridSize, gridSize
}

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

	ebiten.SetWindowSize(gridSize*scale, gridSize*scale)
	ebiten.SetWindowTitle("go6502view")

	if err := ebiten.RunGame(newGame(m)); err != nil {
		log.Fatal(err)
	}
}
