package ptype

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/diskfs/go-diskfs/partition/gpt"
	"github.com/diskfs/go-diskfs/partition/mbr"
)

// UnknownName is returned for any code the registry has no entry for.
// Lookups never fail, an unrecognized partition type is still reportable.
const UnknownName = "Unknown"

// Registry maps partition type codes to display names. MBR types are a
// single byte, GPT types are a GUID compared case-insensitively. The
// registry is built once at startup and handed to the decoders, it is
// not mutated afterwards.
type Registry struct {
	mbrNames map[byte]string
	gptNames map[string]string
}

func NewRegistry() *Registry {
	reg := &Registry{
		mbrNames: make(map[byte]string),
		gptNames: make(map[string]string),
	}
	reg.seedMBR()
	reg.seedGPT()
	return reg
}

func (r *Registry) seedMBR() {
	for typ, name := range map[mbr.Type]string{
		mbr.Fat12:         "FAT12",
		mbr.Fat16:         "FAT16 <32MB",
		mbr.ExtendedCHS:   "Extended (CHS)",
		mbr.Fat16b:        "FAT16B",
		mbr.NTFS:          "NTFS/exFAT",
		mbr.Fat32CHS:      "FAT32 (CHS)",
		mbr.Fat32LBA:      "FAT32 (LBA)",
		mbr.Fat16bLBA:     "FAT16 (LBA)",
		mbr.ExtendedLBA:   "Extended (LBA)",
		mbr.Linux:         "Linux",
		mbr.LinuxExtended: "Linux extended",
		mbr.LinuxLVM:      "Linux LVM",
		mbr.GPTProtective: "GPT protective",
		mbr.EFISystem:     "EFI System",
	} {
		r.mbrNames[byte(typ)] = name
	}

	// codes go-diskfs has no constant for
	r.mbrNames[0x82] = "Linux swap / Solaris"
	r.mbrNames[0xa5] = "FreeBSD"
	r.mbrNames[0xa6] = "OpenBSD"
	r.mbrNames[0xfd] = "Linux RAID autodetect"
}

func (r *Registry) seedGPT() {
	for typ, name := range map[gpt.Type]string{
		gpt.EFISystemPartition:       "EFI System",
		gpt.BIOSBoot:                 "BIOS boot",
		gpt.MicrosoftReserved:        "Microsoft reserved",
		gpt.MicrosoftBasicData:       "Microsoft basic data",
		gpt.MicrosoftWindowsRecovery: "Windows recovery",
		gpt.LinuxFilesystem:          "Linux filesystem",
		gpt.LinuxSwap:                "Linux swap",
		gpt.LinuxLVM:                 "Linux LVM",
		gpt.LinuxRAID:                "Linux RAID",
		gpt.VMwareVMFS:               "VMware VMFS",
	} {
		r.gptNames[strings.ToUpper(string(typ))] = name
	}
}

func (r *Registry) LookupMBR(code byte) string {
	if name, ok := r.mbrNames[code]; ok {
		return name
	}
	return UnknownName
}

func (r *Registry) LookupGPT(guid string) string {
	if name, ok := r.gptNames[strings.ToUpper(guid)]; ok {
		return name
	}
	return UnknownName
}

// LoadCSV merges rows of the form code,name into the registry. MBR codes
// are hex bytes ("83" or "0x83"), GPT types are full GUID strings.
// Malformed rows are skipped, matching codes override seeded names.
func (r *Registry) LoadCSV(path string) error {
	fhandle, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fhandle.Close()

	reader := csv.NewReader(fhandle)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading partition type table: %w", err)
	}

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		code := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if code == "" || name == "" {
			continue
		}

		if strings.Contains(code, "-") {
			r.gptNames[strings.ToUpper(code)] = name
			continue
		}
		value, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(code), "0x"), 16, 8)
		if err != nil {
			continue
		}
		r.mbrNames[byte(value)] = name
	}

	return nil
}
