package parser

import "testing"

// On-disk encoding of the EFI System Partition type GUID.
var efiSystemGUIDBytes = []byte{
	0x28, 0x73, 0x2A, 0xC1, 0x1F, 0xF8, 0xD2, 0x11,
	0xBA, 0x4B, 0x00, 0xA0, 0xC9, 0x3E, 0xC9, 0x3B,
}

func TestDecodeGUID(t *testing.T) {
	guid, err := DecodeGUID(efiSystemGUIDBytes)
	if err != nil {
		t.Fatal(err)
	}

	const want = "C12A7328-F81F-11D2-BA4B-00A0C93EC93B"
	if got := GUIDString(guid); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestDecodeGUIDBadLength(t *testing.T) {
	if _, err := DecodeGUID(efiSystemGUIDBytes[:15]); err == nil {
		t.Fatal("got nil error for a 15 byte GUID")
	}
}
