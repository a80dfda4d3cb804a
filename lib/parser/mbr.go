package parser

import (
	"diskprobe/lib/cnst"
	"diskprobe/lib/imgio"
	"diskprobe/lib/ptype"
	"encoding/binary"
	"fmt"
)

// MBRPartitionEntry is one of the four primary slots of the partition
// table. Unused slots (type code 0x00) keep their position but carry no
// trustworthy geometry, callers must go through Geometry.
type MBRPartitionEntry struct {
	Slot        int
	BootFlag    byte
	TypeCode    byte
	TypeName    string
	StartLBA    uint32
	SectorCount uint32
	Raw         []byte
	Unused      bool
	Warnings    []string
}

func (e MBRPartitionEntry) Bootable() bool {
	return e.BootFlag == cnst.BootFlagActive
}

// Geometry returns the partition's absolute byte offset and size.
// ok is false for unused slots.
func (e MBRPartitionEntry) Geometry(sectorSize uint64) (start, size uint64, ok bool) {
	if e.Unused {
		return 0, 0, false
	}
	start = ByteOffset(uint64(e.StartLBA), sectorSize)
	size = ByteOffset(uint64(e.SectorCount), sectorSize)
	return start, size, true
}

type MasterBootRecord struct {
	Entries    [cnst.MBREntryCount]MBRPartitionEntry
	SectorSize uint64
}

// DecodeMBR decodes all four primary partition slots. Unused or odd
// entries are flagged, never fatal; only a missing boot signature or an
// image too small for the table aborts decoding.
func DecodeMBR(img *imgio.Image, reg *ptype.Registry, sectorSize uint64) (*MasterBootRecord, error) {
	bootSig, err := img.ReadU16LE(cnst.MBRSignatureOffset)
	if err != nil {
		return nil, err
	}
	if bootSig != cnst.MBRSignature {
		return nil, fmt.Errorf("%w: boot sector ends with %#04x, want %#04x",
			cnst.ErrInvalidSignature, bootSig, cnst.MBRSignature)
	}

	record := &MasterBootRecord{SectorSize: sectorSize}
	imageSectors := img.Sectors(sectorSize)

	for i := 0; i < cnst.MBREntryCount; i++ {
		raw, err := img.ReadBytes(int64(cnst.MBRTableOffset+i*cnst.MBREntrySize), cnst.MBREntrySize)
		if err != nil {
			return nil, err
		}

		entry := MBRPartitionEntry{
			Slot:        i,
			BootFlag:    raw[0],
			TypeCode:    raw[4],
			StartLBA:    binary.LittleEndian.Uint32(raw[8:12]),
			SectorCount: binary.LittleEndian.Uint32(raw[12:16]),
			Raw:         raw,
		}

		if entry.TypeCode == 0x00 {
			entry.Unused = true
			record.Entries[i] = entry
			continue
		}

		entry.TypeName = reg.LookupMBR(entry.TypeCode)
		if entry.BootFlag != cnst.BootFlagActive && entry.BootFlag != cnst.BootFlagInactive {
			entry.Warnings = append(entry.Warnings,
				fmt.Sprintf("boot flag %#02x is neither 0x80 nor 0x00", entry.BootFlag))
		}
		if uint64(entry.StartLBA)+uint64(entry.SectorCount) > imageSectors {
			entry.Warnings = append(entry.Warnings,
				fmt.Sprintf("partition ends at sector %d, image has %d sectors",
					uint64(entry.StartLBA)+uint64(entry.SectorCount), imageSectors))
		}

		record.Entries[i] = entry
	}

	return record, nil
}
