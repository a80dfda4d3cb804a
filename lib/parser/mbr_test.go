package parser

import (
	"diskprobe/lib/cnst"
	"diskprobe/lib/imgio"
	"diskprobe/lib/ptype"
	"encoding/binary"
	"errors"
	"testing"
)

func putMBREntry(data []byte, slot int, bootFlag, typeCode byte, startLBA, sectorCount uint32) {
	base := cnst.MBRTableOffset + slot*cnst.MBREntrySize
	data[base] = bootFlag
	data[base+4] = typeCode
	binary.LittleEndian.PutUint32(data[base+8:], startLBA)
	binary.LittleEndian.PutUint32(data[base+12:], sectorCount)
}

func buildMBRImage(size int) []byte {
	data := make([]byte, size)
	data[510] = 0x55
	data[511] = 0xAA
	return data
}

func TestDecodeMBRRoundTrip(t *testing.T) {
	data := buildMBRImage(int(cnst.DefaultSectorSize) * 206848)
	putMBREntry(data, 0, 0x80, 0x83, 2048, 204800)

	record, err := DecodeMBR(imgio.NewImage(data), ptype.NewRegistry(), cnst.DefaultSectorSize)
	if err != nil {
		t.Fatal(err)
	}

	entry := record.Entries[0]
	if !entry.Bootable() {
		t.Fatal("entry 0 not bootable, want bootable")
	}
	if entry.TypeName != "Linux" {
		t.Fatalf("type name %q, want Linux", entry.TypeName)
	}
	start, size, ok := entry.Geometry(cnst.DefaultSectorSize)
	if !ok {
		t.Fatal("used entry reported no geometry")
	}
	if start != 1048576 {
		t.Fatalf("start offset %d, want 1048576", start)
	}
	if size != 104857600 {
		t.Fatalf("size %d, want 104857600", size)
	}
	if len(entry.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", entry.Warnings)
	}
}

// All four slots come back in order even when most are unused.
func TestDecodeMBRSlotOrder(t *testing.T) {
	data := buildMBRImage(4096)
	putMBREntry(data, 2, 0x00, 0x07, 1, 2)

	record, err := DecodeMBR(imgio.NewImage(data), ptype.NewRegistry(), cnst.DefaultSectorSize)
	if err != nil {
		t.Fatal(err)
	}

	if len(record.Entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(record.Entries))
	}
	for slot, entry := range record.Entries {
		if entry.Slot != slot {
			t.Fatalf("slot %d holds entry %d", slot, entry.Slot)
		}
		if slot != 2 && entry.Unused != true {
			t.Fatalf("slot %d not flagged unused", slot)
		}
	}
	if record.Entries[2].Unused {
		t.Fatal("slot 2 flagged unused, has type 0x07")
	}
	if _, _, ok := record.Entries[0].Geometry(cnst.DefaultSectorSize); ok {
		t.Fatal("unused slot reported geometry")
	}
}

func TestDecodeMBRAnomalies(t *testing.T) {
	data := buildMBRImage(4096)
	putMBREntry(data, 0, 0x42, 0x83, 1, 2)          // malformed boot flag
	putMBREntry(data, 1, 0x00, 0x07, 4096, 1000000) // past end of image

	record, err := DecodeMBR(imgio.NewImage(data), ptype.NewRegistry(), cnst.DefaultSectorSize)
	if err != nil {
		t.Fatal(err)
	}

	if len(record.Entries[0].Warnings) != 1 {
		t.Fatalf("entry 0 warnings %v, want one boot flag warning", record.Entries[0].Warnings)
	}
	if len(record.Entries[1].Warnings) != 1 {
		t.Fatalf("entry 1 warnings %v, want one range warning", record.Entries[1].Warnings)
	}
}

func TestDecodeMBRBadSignature(t *testing.T) {
	_, err := DecodeMBR(imgio.NewImage(make([]byte, 1024)), ptype.NewRegistry(), cnst.DefaultSectorSize)
	if !errors.Is(err, cnst.ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}
}

func TestDecodeMBRUnknownType(t *testing.T) {
	data := buildMBRImage(4096)
	putMBREntry(data, 0, 0x00, 0x5A, 1, 2)

	record, err := DecodeMBR(imgio.NewImage(data), ptype.NewRegistry(), cnst.DefaultSectorSize)
	if err != nil {
		t.Fatal(err)
	}
	if record.Entries[0].TypeName != ptype.UnknownName {
		t.Fatalf("type name %q, want %q", record.Entries[0].TypeName, ptype.UnknownName)
	}
}
