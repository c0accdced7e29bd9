package mos6502

import "testing"

func TestMemoryByteRoundTrip(t *testing.T) {
	m := NewMemory()

	for _, a := range []uint16{0x0000, 0x00FF, 0x0100, 0x8000, 0xFFFF} {
		for v := 0; v < 256; v += 37 {
			m.WriteByte(a, uint8(v))
			if got := m.ReadByte(a); got != uint8(v) {
				t.Errorf("addr 0x%04x: WriteByte(%d) then ReadByte = %d, want %d", a, v, got, uint8(v))
			}
		}
	}
}

func TestMemoryWordRoundTrip(t *testing.T) {
	m := NewMemory()

	cases := []struct {
		addr uint16
		val  uint16
	}{
		{0x0000, 0x1234},
		{0x00FE, 0xBEEF},
		{0x7FFE, 0xABCD},
	}

	for _, tc := range cases {
		m.WriteWord(tc.addr, tc.val)
		if got := m.ReadWord(tc.addr, false); got != tc.val {
			t.Errorf("addr 0x%04x: got 0x%04x, want 0x%04x", tc.addr, got, tc.val)
		}
	}
}

func TestMemoryReadWordLittleEndian(t *testing.T) {
	m := NewMemory()
	m.WriteByte(0x10, 0xFA)
	m.WriteByte(0x11, 0xBB)

	if got := m.ReadWord(0x10, false); got != 0xBBFA {
		t.Errorf("got 0x%04x, want 0xBBFA", got)
	}
}

func TestMemoryReadWordPageWrapBug(t *testing.T) {
	m := NewMemory()
	// Classic indirect page-wrap case: JMP (0x10FF) fetches the low
	// byte from 0x10FF and the high byte from 0x1000, not 0x1100.
	m.WriteByte(0x10FF, 0x34)
	m.WriteByte(0x1000, 0x12)
	m.WriteByte(0x1100, 0xFF) // decoy: must not be read

	if got := m.ReadWord(0x10FF, true); got != 0x1234 {
		t.Errorf("got 0x%04x, want 0x1234", got)
	}
	if got := m.ReadWord(0x10FF, false); got != 0xFF34 {
		t.Errorf("non-wrapped read got 0x%04x, want 0xFF34", got)
	}
}

func TestMemoryRangeTransfer(t *testing.T) {
	m := NewMemory()
	data := []uint8{1, 2, 3, 4, 5}

	if err := m.WriteRange(0x200, data); err != nil {
		t.Fatalf("WriteRange: %v", err)
	}

	got, err := m.ReadRange(0x200, 0x205)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	for i, v := range data {
		if got[i] != v {
			t.Errorf("byte %d: got %d, want %d", i, got[i], v)
		}
	}
}

func TestMemoryRangeRefusesOutOfBounds(t *testing.T) {
	m := NewMemory()

	if _, err := m.ReadRange(0xFFF0, 0x10010); err == nil {
		t.Error("ReadRange past 0x10000 should have been refused")
	}

	if err := m.WriteRange(0xFFF0, make([]uint8, 32)); err == nil {
		t.Error("WriteRange past 0x10000 should have been refused")
	}
}
