package parser

// ByteOffset converts a logical block address into an absolute byte
// offset. Sector size is always a parameter so non-512-byte-sector
// media stay correct.
func ByteOffset(lba, sectorSize uint64) uint64 {
	return lba * sectorSize
}
