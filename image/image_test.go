package image

import (
	"bytes"
	"testing"

	"github.com/b8sell/go6502/mos6502"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := &Image{
		Header: Header{LoadAddr: 0x8000, Length: 4},
		Data:   []byte{0xA9, 0x01, 0x60, 0xEA},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.LoadAddr != img.LoadAddr || got.Length != img.Length {
		t.Fatalf("header = %+v, want %+v", got.Header, img.Header)
	}
	if !bytes.Equal(got.Data, img.Data) {
		t.Errorf("data = %v, want %v", got.Data, img.Data)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{'X', 'X', 'X', 'X', 0, 0, 0, 0})
	if _, err := Decode(buf); err == nil {
		t.Error("Decode should reject a file with the wrong magic")
	}
}

func TestFromMemoryAndInstallInto(t *testing.T) {
	mem := mos6502.NewMemory()
	mem.WriteByte(0x9000, 0x11)
	mem.WriteByte(0x9001, 0x22)

	img, err := FromMemory(mem, 0x9000, 2)
	if err != nil {
		t.Fatalf("FromMemory: %v", err)
	}

	dst := mos6502.NewMemory()
	if err := img.InstallInto(dst); err != nil {
		t.Fatalf("InstallInto: %v", err)
	}
	if dst.ReadByte(0x9000) != 0x11 || dst.ReadByte(0x9001) != 0x22 {
		t.Error("InstallInto did not reproduce the captured bytes at the load address")
	}
}
