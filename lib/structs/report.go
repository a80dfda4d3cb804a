package structs

import "time"

// Report is the machine-readable inspection artifact, serialized with
// msgpack when the caller asks for a saved report.
type Report struct {
	Image       string       `json:"image"`
	SizeBytes   int64        `json:"size"`
	SectorSize  uint64       `json:"sector_size"`
	Scheme      string       `json:"scheme"`
	Hashes      []HashEntry  `json:"hashes,omitempty"`
	Partitions  []Partition  `json:"partitions"`
	BootRecords []BootRecord `json:"boot_records,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type HashEntry struct {
	Algo     string `json:"algo"`
	Sum      string `json:"sum"`
	Artifact string `json:"artifact"`
}

// Partition is scheme-neutral: TypeCode holds the hex byte for MBR and
// the type GUID for GPT. Geometry fields are zero for unused slots.
type Partition struct {
	Index      int      `json:"index"`
	Unused     bool     `json:"unused"`
	Bootable   bool     `json:"bootable"`
	TypeCode   string   `json:"type_code"`
	TypeName   string   `json:"type_name"`
	GUID       string   `json:"guid,omitempty"`
	Name       string   `json:"name,omitempty"`
	StartLBA   uint64   `json:"start_lba"`
	EndLBA     uint64   `json:"end_lba"`
	StartByte  uint64   `json:"start_byte"`
	SizeBytes  uint64   `json:"size_bytes"`
	Attributes uint64   `json:"attributes,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

type BootRecord struct {
	Offset int64  `json:"offset"`
	Data   []byte `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}
