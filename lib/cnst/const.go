package cnst

import "errors"

const (
	DefaultSectorSize uint64 = 512

	MBRTableOffset     = 446
	MBREntrySize       = 16
	MBREntryCount      = 4
	MBRSignatureOffset = 510
	MBRSignature       = uint16(0xAA55)

	GPTHeaderLBA    uint64 = 1
	GPTSignature           = "EFI PART"
	GPTHeaderSize          = 92
	GPTMinEntrySize uint32 = 128

	BootFlagActive   byte = 0x80
	BootFlagInactive byte = 0x00

	BootRecordSize = 512
)

var (
	ErrOutOfRange       = errors.New("read out of image range")
	ErrInvalidSignature = errors.New("invalid boot sector signature")
	ErrInvalidGPTHeader = errors.New("invalid GPT header")
	ErrUnknownScheme    = errors.New("no recognized partition table")
)

const (
	CmdInspect = "inspect"
	CmdHash    = "hash"
	CmdExtract = "extract"

	FlagSectorSize      = "sector-size"
	FlagSectorSizeShort = 's'
	FlagVerbose         = "verbose"
	FlagVerboseShort    = 'v'
	FlagTypes           = "types"
	FlagTypesShort      = 't'
	FlagOffset          = "offset"
	FlagOffsetShort     = 'o'
	FlagSkipHash        = "skip-hash"
	FlagSkipHashShort   = 'k'
	FlagReport          = "report"
	FlagReportShort     = 'r'

	OperandImage = "IMAGE"
)

var VERBOSE bool
