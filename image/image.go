// Package image defines a small binary file format for persisting a
// mos6502 memory range to disk and loading it back: a 4-byte magic
// value, a 16-bit load address, a 16-bit length, then that many raw
// bytes. The core's in-memory Reset/LoadImage/SaveImage contract
// (see mos6502.Machine) does not require any on-disk format; this is
// one concrete, optional convenience built on top of it.
package image

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/b8sell/go6502/mos6502"
)

// Magic identifies a go6502 memory image file.
var Magic = [4]byte{'G', '6', '5', 'I'}

const headerSize = 4 + 2 + 2

// Header is the fixed-size preamble of an image file.
type Header struct {
	LoadAddr uint16
	Length   uint16
}

func (h Header) String() string {
	return fmt.Sprintf("load=0x%04x length=%d", h.LoadAddr, h.Length)
}

// Image is a header paired with the raw bytes it describes.
type Image struct {
	Header
	Data []byte
}

func parseHeader(b []byte) (Header, error) {
	var magic [4]byte
	copy(magic[:], b[0:4])
	if magic != Magic {
		return Header{}, fmt.Errorf("image: bad magic %x, want %x", magic, Magic)
	}
	return Header{
		LoadAddr: binary.BigEndian.Uint16(b[4:6]),
		Length:   binary.BigEndian.Uint16(b[6:8]),
	}, nil
}

// Decode reads one image from r.
func Decode(r io.Reader) (*Image, error) {
	hbytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hbytes); err != nil {
		return nil, fmt.Errorf("image: reading header: %w", err)
	}
	h, err := parseHeader(hbytes)
	if err != nil {
		return nil, err
	}

	data := make([]byte, h.Length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("image: reading %d bytes of data: %w", h.Length, err)
	}

	return &Image{Header: h, Data: data}, nil
}

// Encode writes img to w.
func Encode(w io.Writer, img *Image) error {
	hbytes := make([]byte, headerSize)
	copy(hbytes[0:4], Magic[:])
	binary.BigEndian.PutUint16(hbytes[4:6], img.LoadAddr)
	binary.BigEndian.PutUint16(hbytes[6:8], uint16(len(img.Data)))

	if _, err := w.Write(hbytes); err != nil {
		return fmt.Errorf("image: writing header: %w", err)
	}
	if _, err := w.Write(img.Data); err != nil {
		return fmt.Errorf("image: writing data: %w", err)
	}
	return nil
}

// LoadFile decodes the image stored at path.
func LoadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: opening %q: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// SaveFile encodes img to path, creating or truncating it.
func SaveFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("image: creating %q: %w", path, err)
	}
	defer f.Close()
	return Encode(f, img)
}

// FromMemory captures length bytes of mem starting at loadAddr as an
// Image ready to be saved.
func FromMemory(mem *mos6502.Memory, loadAddr, length uint16) (*Image, error) {
	data, err := mem.ReadRange(uint32(loadAddr), uint32(loadAddr)+uint32(length))
	if err != nil {
		return nil, err
	}
	return &Image{Header: Header{LoadAddr: loadAddr, Length: length}, Data: data}, nil
}

// InstallInto writes img's data into mem starting at its load
// address.
func (img *Image) InstallInto(mem *mos6502.Memory) error {
	return mem.WriteRange(uint32(img.LoadAddr), img.Data)
}
