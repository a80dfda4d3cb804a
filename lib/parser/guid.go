package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DecodeGUID decodes the 16 bytes of an on-disk GPT GUID. The first
// three fields are stored little-endian, the final two big-endian (EFI
// spec, Appendix A), so the bytes are reordered field by field rather
// than taken as one blob.
func DecodeGUID(b []byte) (uuid.UUID, error) {
	if len(b) != 16 {
		return uuid.Nil, fmt.Errorf("GUID must be 16 bytes, got %d", len(b))
	}

	var ordered [16]byte
	ordered[0], ordered[1], ordered[2], ordered[3] = b[3], b[2], b[1], b[0]
	ordered[4], ordered[5] = b[5], b[4]
	ordered[6], ordered[7] = b[7], b[6]
	copy(ordered[8:], b[8:])

	return uuid.FromBytes(ordered[:])
}

// GUIDString is the display form used throughout the tool.
func GUIDString(g uuid.UUID) string {
	return strings.ToUpper(g.String())
}
