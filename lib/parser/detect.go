package parser

import (
	"diskprobe/lib/cnst"
	"diskprobe/lib/imgio"
	"fmt"
)

// Scheme is the partition table layout governing an image.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeMBR
	SchemeGPT
)

func (s Scheme) String() string {
	switch s {
	case SchemeMBR:
		return "MBR"
	case SchemeGPT:
		return "GPT"
	}
	return "Unknown"
}

// DetectScheme classifies the image by its fixed signature locations: the
// 0x55AA boot signature at offset 510 and the "EFI PART" header signature
// at LBA 1. GPT wins when both are present because a GPT disk carries a
// protective MBR whose signature is also valid.
func DetectScheme(img *imgio.Image, sectorSize uint64) (Scheme, error) {
	gptSig, err := img.ReadBytes(int64(ByteOffset(cnst.GPTHeaderLBA, sectorSize)), 8)
	if err == nil && string(gptSig) == cnst.GPTSignature {
		return SchemeGPT, nil
	}

	bootSig, err := img.ReadU16LE(cnst.MBRSignatureOffset)
	if err != nil {
		return SchemeUnknown, fmt.Errorf("%w: %v", cnst.ErrUnknownScheme, err)
	}
	if bootSig == cnst.MBRSignature {
		return SchemeMBR, nil
	}

	return SchemeUnknown, cnst.ErrUnknownScheme
}
