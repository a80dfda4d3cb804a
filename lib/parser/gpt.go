package parser

import (
	"diskprobe/lib/cnst"
	"diskprobe/lib/imgio"
	"diskprobe/lib/ptype"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf16"

	"github.com/google/uuid"
)

type GPTHeader struct {
	Revision          uint32
	HeaderSize        uint32
	HeaderCRC32       uint32
	CurrentLBA        uint64
	BackupLBA         uint64
	FirstUsableLBA    uint64
	LastUsableLBA     uint64
	DiskGUID          uuid.UUID
	PartitionEntryLBA uint64
	EntryCount        uint32
	EntrySize         uint32
	EntriesCRC32      uint32
}

// GPTPartitionEntry is one slot of the partition entry array. An entry
// whose type GUID is all zero is unused: it keeps its position in the
// table but carries no meaningful geometry.
type GPTPartitionEntry struct {
	Index      int
	TypeGUID   uuid.UUID
	UniqueGUID uuid.UUID
	TypeName   string
	FirstLBA   uint64
	LastLBA    uint64
	Attributes uint64
	Name       string
	Unused     bool
	Warnings   []string
}

// Geometry returns the partition's absolute byte offset and size.
// ok is false for unused entries and for entries whose LBA range is
// inverted.
func (e GPTPartitionEntry) Geometry(sectorSize uint64) (start, size uint64, ok bool) {
	if e.Unused || e.LastLBA < e.FirstLBA {
		return 0, 0, false
	}
	start = ByteOffset(e.FirstLBA, sectorSize)
	size = ByteOffset(e.LastLBA-e.FirstLBA+1, sectorSize)
	return start, size, true
}

type GUIDPartitionTable struct {
	Header     GPTHeader
	Entries    []GPTPartitionEntry
	SectorSize uint64
	Warnings   []string
}

// DecodeGPT decodes the header at LBA 1 and the whole entry array it
// describes. A bad signature or inconsistent entry geometry is fatal,
// entries cannot be located without a trustworthy header. A header CRC
// mismatch is reported as a table warning only.
func DecodeGPT(img *imgio.Image, reg *ptype.Registry, sectorSize uint64) (*GUIDPartitionTable, error) {
	headerOffset := int64(ByteOffset(cnst.GPTHeaderLBA, sectorSize))
	raw, err := img.ReadBytes(headerOffset, cnst.GPTHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("reading GPT header: %w", err)
	}
	if string(raw[0:8]) != cnst.GPTSignature {
		return nil, fmt.Errorf("%w: signature %q", cnst.ErrInvalidGPTHeader, raw[0:8])
	}

	header := GPTHeader{
		Revision:          binary.LittleEndian.Uint32(raw[8:12]),
		HeaderSize:        binary.LittleEndian.Uint32(raw[12:16]),
		HeaderCRC32:       binary.LittleEndian.Uint32(raw[16:20]),
		CurrentLBA:        binary.LittleEndian.Uint64(raw[24:32]),
		BackupLBA:         binary.LittleEndian.Uint64(raw[32:40]),
		FirstUsableLBA:    binary.LittleEndian.Uint64(raw[40:48]),
		LastUsableLBA:     binary.LittleEndian.Uint64(raw[48:56]),
		PartitionEntryLBA: binary.LittleEndian.Uint64(raw[72:80]),
		EntryCount:        binary.LittleEndian.Uint32(raw[80:84]),
		EntrySize:         binary.LittleEndian.Uint32(raw[84:88]),
		EntriesCRC32:      binary.LittleEndian.Uint32(raw[88:92]),
	}
	header.DiskGUID, err = DecodeGUID(raw[56:72])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cnst.ErrInvalidGPTHeader, err)
	}

	if header.EntrySize < cnst.GPTMinEntrySize || header.EntrySize%8 != 0 {
		return nil, fmt.Errorf("%w: entry size %d must be a multiple of 8 and at least %d",
			cnst.ErrInvalidGPTHeader, header.EntrySize, cnst.GPTMinEntrySize)
	}

	table := &GUIDPartitionTable{Header: header, SectorSize: sectorSize}
	if warning := checkHeaderCRC(img, headerOffset, header); warning != "" {
		table.Warnings = append(table.Warnings, warning)
	}

	entryBase := ByteOffset(header.PartitionEntryLBA, sectorSize)
	for i := uint32(0); i < header.EntryCount; i++ {
		entryOffset := int64(entryBase + uint64(i)*uint64(header.EntrySize))
		raw, err := img.ReadBytes(entryOffset, int64(header.EntrySize))
		if err != nil {
			return nil, fmt.Errorf("reading GPT entry %d: %w", i, err)
		}

		entry, err := decodeGPTEntry(int(i), raw, reg)
		if err != nil {
			return nil, err
		}
		table.Entries = append(table.Entries, entry)
	}

	return table, nil
}

func decodeGPTEntry(index int, raw []byte, reg *ptype.Registry) (GPTPartitionEntry, error) {
	entry := GPTPartitionEntry{
		Index:      index,
		FirstLBA:   binary.LittleEndian.Uint64(raw[32:40]),
		LastLBA:    binary.LittleEndian.Uint64(raw[40:48]),
		Attributes: binary.LittleEndian.Uint64(raw[48:56]),
		Name:       decodeUTF16LE(raw[56:128]),
	}

	if isAllZero(raw[0:16]) {
		entry.Unused = true
		return entry, nil
	}

	var err error
	entry.TypeGUID, err = DecodeGUID(raw[0:16])
	if err != nil {
		return entry, err
	}
	entry.UniqueGUID, err = DecodeGUID(raw[16:32])
	if err != nil {
		return entry, err
	}
	entry.TypeName = reg.LookupGPT(GUIDString(entry.TypeGUID))

	if entry.LastLBA < entry.FirstLBA {
		entry.Warnings = append(entry.Warnings,
			fmt.Sprintf("last LBA %d precedes first LBA %d", entry.LastLBA, entry.FirstLBA))
	}

	return entry, nil
}

// checkHeaderCRC recomputes the header CRC32 with the CRC field zeroed.
func checkHeaderCRC(img *imgio.Image, headerOffset int64, header GPTHeader) string {
	if header.HeaderSize < cnst.GPTHeaderSize {
		return fmt.Sprintf("header size %d smaller than the %d byte layout", header.HeaderSize, cnst.GPTHeaderSize)
	}

	raw, err := img.ReadBytes(headerOffset, int64(header.HeaderSize))
	if err != nil {
		return fmt.Sprintf("header size %d exceeds image: %v", header.HeaderSize, err)
	}

	scratch := make([]byte, len(raw))
	copy(scratch, raw)
	for i := 16; i < 20; i++ {
		scratch[i] = 0
	}
	if sum := crc32.ChecksumIEEE(scratch); sum != header.HeaderCRC32 {
		return fmt.Sprintf("header CRC32 mismatch: calculated %#08x, stored %#08x", sum, header.HeaderCRC32)
	}
	return ""
}

// decodeUTF16LE decodes a UTF-16LE partition name, trimmed at the first
// null code unit.
func decodeUTF16LE(raw []byte) string {
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		unit := binary.LittleEndian.Uint16(raw[i : i+2])
		if unit == 0 {
			break
		}
		units = append(units, unit)
	}
	return string(utf16.Decode(units))
}

func isAllZero(raw []byte) bool {
	for _, b := range raw {
		if b != 0 {
			return false
		}
	}
	return true
}
