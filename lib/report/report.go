package report

import (
	"diskprobe/lib/bootrec"
	"diskprobe/lib/cnst"
	"diskprobe/lib/hashio"
	"diskprobe/lib/parser"
	"diskprobe/lib/structs"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	heading = color.New(color.Bold, color.Underline)
	bold    = color.New(color.Bold)
	value   = color.New(color.FgCyan)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
	attn    = color.New(color.FgYellow)
)

func PrintDigests(digests []hashio.Digest) {
	for _, digest := range digests {
		good.Printf("%s hash saved to %s\n", digest.Algo, digest.Path)
		if cnst.VERBOSE {
			fmt.Printf("\t%s\n", digest.Sum)
		}
	}
	fmt.Println()
}

func PrintScheme(scheme parser.Scheme) {
	heading.Println("Partition scheme")
	good.Printf("%s detected\n\n", scheme)
}

func PrintMBR(record *parser.MasterBootRecord) {
	heading.Println("MBR partition table")
	for _, entry := range record.Entries {
		if entry.Unused {
			if cnst.VERBOSE {
				attn.Printf("Partition %d is unused.\n", entry.Slot+1)
			}
			continue
		}

		bold.Printf("Partition %d:\n", entry.Slot+1)
		if cnst.VERBOSE {
			fmt.Printf("  Raw entry: %s\n", hexFields(entry.Raw))
		}

		bootState := bad.Sprint("Non-bootable")
		if entry.Bootable() {
			bootState = good.Sprint("Bootable")
		}
		fmt.Printf("  Boot flag: %#02x (%s)\n", entry.BootFlag, bootState)
		fmt.Printf("  Type: %#02x (%s)\n", entry.TypeCode, value.Sprint(entry.TypeName))

		start, size, _ := entry.Geometry(record.SectorSize)
		fmt.Printf("  Start LBA: %d (%d bytes)\n", entry.StartLBA, start)
		fmt.Printf("  Sectors: %d\n", entry.SectorCount)
		fmt.Printf("  Size: %s (%d bytes)\n", humanize.IBytes(size), size)
		printWarnings(entry.Warnings)
	}
	fmt.Println()
}

func PrintGPT(table *parser.GUIDPartitionTable) {
	heading.Println("GPT partition table")
	if cnst.VERBOSE {
		fmt.Printf("Disk GUID: %s\n", value.Sprint(parser.GUIDString(table.Header.DiskGUID)))
		fmt.Printf("Partition entries start at LBA %d\n", table.Header.PartitionEntryLBA)
		fmt.Printf("Number of partition entries: %d\n", table.Header.EntryCount)
		fmt.Printf("Size of each partition entry: %d bytes\n", table.Header.EntrySize)
	}
	printWarnings(table.Warnings)

	for _, entry := range table.Entries {
		if entry.Unused {
			if cnst.VERBOSE {
				attn.Printf("Partition %d is unused.\n", entry.Index+1)
			}
			continue
		}

		bold.Printf("\nPartition %d:\n", entry.Index+1)
		fmt.Printf("  Partition Type GUID: %s (%s)\n",
			value.Sprint(parser.GUIDString(entry.TypeGUID)), entry.TypeName)
		fmt.Printf("  Unique Partition GUID: %s\n", value.Sprint(parser.GUIDString(entry.UniqueGUID)))
		fmt.Printf("  Starting LBA: %d (%#x)\n", entry.FirstLBA, entry.FirstLBA)
		fmt.Printf("  Ending LBA: %d (%#x)\n", entry.LastLBA, entry.LastLBA)
		fmt.Printf("  Attribute flags: %#x\n", entry.Attributes)
		fmt.Printf("  Partition name: %s\n", entry.Name)
		if start, size, ok := entry.Geometry(table.SectorSize); ok {
			fmt.Printf("  Start offset: %d bytes\n", start)
			fmt.Printf("  Size: %s (%d bytes)\n", humanize.IBytes(size), size)
		}
		printWarnings(entry.Warnings)
	}
	fmt.Println()
}

func PrintBootRecords(results []bootrec.Result) {
	heading.Println("Boot records")
	for i, result := range results {
		bold.Printf("Record %d at offset %d:\n", i+1, result.Offset)
		if result.Err != nil {
			bad.Printf("  %v\n", result.Err)
			continue
		}

		preview := result.Data
		if len(preview) > 16 {
			preview = preview[:16]
		}
		fmt.Printf("  Hex:   %s\n", hexFields(preview))
		fmt.Printf("  ASCII: %s\n", asciiFields(preview))
	}
	fmt.Println()
}

func printWarnings(warnings []string) {
	for _, warning := range warnings {
		attn.Printf("  Warning: %s\n", warning)
	}
}

func hexFields(raw []byte) string {
	fields := make([]string, len(raw))
	for i, b := range raw {
		fields[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(fields, " ")
}

func asciiFields(raw []byte) string {
	fields := make([]string, len(raw))
	for i, b := range raw {
		if b >= 32 && b <= 126 {
			fields[i] = fmt.Sprintf(" %c", b)
		} else {
			fields[i] = " ."
		}
	}
	return strings.Join(fields, " ")
}

// DigestEntries converts computed digests for the saved report.
func DigestEntries(digests []hashio.Digest) []structs.HashEntry {
	entries := make([]structs.HashEntry, 0, len(digests))
	for _, digest := range digests {
		entries = append(entries, structs.HashEntry{
			Algo:     digest.Algo,
			Sum:      digest.Sum,
			Artifact: digest.Path,
		})
	}
	return entries
}

// MBRPartitions flattens all four slots, unused ones included, so the
// report preserves slot positions.
func MBRPartitions(record *parser.MasterBootRecord) []structs.Partition {
	partitions := make([]structs.Partition, 0, len(record.Entries))
	for _, entry := range record.Entries {
		partition := structs.Partition{
			Index:    entry.Slot,
			Unused:   entry.Unused,
			Bootable: entry.Bootable(),
			TypeCode: fmt.Sprintf("%#02x", entry.TypeCode),
			TypeName: entry.TypeName,
			Warnings: entry.Warnings,
		}
		if start, size, ok := entry.Geometry(record.SectorSize); ok {
			partition.StartLBA = uint64(entry.StartLBA)
			partition.EndLBA = uint64(entry.StartLBA) + uint64(entry.SectorCount) - 1
			partition.StartByte = start
			partition.SizeBytes = size
		}
		partitions = append(partitions, partition)
	}
	return partitions
}

func GPTPartitions(table *parser.GUIDPartitionTable) []structs.Partition {
	partitions := make([]structs.Partition, 0, len(table.Entries))
	for _, entry := range table.Entries {
		partition := structs.Partition{
			Index:      entry.Index,
			Unused:     entry.Unused,
			Name:       entry.Name,
			Attributes: entry.Attributes,
			Warnings:   entry.Warnings,
		}
		if !entry.Unused {
			partition.TypeCode = parser.GUIDString(entry.TypeGUID)
			partition.TypeName = entry.TypeName
			partition.GUID = parser.GUIDString(entry.UniqueGUID)
		}
		if start, size, ok := entry.Geometry(table.SectorSize); ok {
			partition.StartLBA = entry.FirstLBA
			partition.EndLBA = entry.LastLBA
			partition.StartByte = start
			partition.SizeBytes = size
		}
		partitions = append(partitions, partition)
	}
	return partitions
}

func BootRecordDumps(results []bootrec.Result) []structs.BootRecord {
	records := make([]structs.BootRecord, 0, len(results))
	for _, result := range results {
		record := structs.BootRecord{Offset: result.Offset, Data: result.Data}
		if result.Err != nil {
			record.Error = result.Err.Error()
		}
		records = append(records, record)
	}
	return records
}

// Save serializes the report with msgpack to a sidecar artifact.
func Save(path string, rep structs.Report) error {
	encoded, err := msgpack.Marshal(rep)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, encoded, 0o644); err != nil {
		return err
	}
	good.Printf("Report saved to %s\n", path)
	return nil
}
