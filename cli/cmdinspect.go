package cli

import (
	"diskprobe/lib/bootrec"
	"diskprobe/lib/cnst"
	"diskprobe/lib/hashio"
	"diskprobe/lib/imgio"
	"diskprobe/lib/parser"
	"diskprobe/lib/report"
	"diskprobe/lib/structs"
	"fmt"
	"time"
)

// InspectImage runs the full pipeline: hash artifacts, scheme detection,
// table decoding, and boot record dumps for MBR images when offsets are
// given.
func InspectImage(imagePath, typesPath, reportPath string, offsets []int64, sectorSize uint64, skipHash bool) error {
	start := time.Now()

	rep := structs.Report{
		Image:      imagePath,
		SectorSize: sectorSize,
		CreatedAt:  start,
	}

	if !skipHash {
		digests, err := hashio.HashImage(imagePath)
		if err != nil {
			return err
		}
		report.PrintDigests(digests)
		rep.Hashes = report.DigestEntries(digests)
	}

	img, reg, err := common(imagePath, typesPath)
	if err != nil {
		return err
	}
	defer img.Close()
	rep.SizeBytes = img.Size()

	scheme, err := parser.DetectScheme(img, sectorSize)
	if err != nil {
		return err
	}
	rep.Scheme = scheme.String()
	report.PrintScheme(scheme)

	switch scheme {
	case parser.SchemeMBR:
		record, err := parser.DecodeMBR(img, reg, sectorSize)
		if err != nil {
			return err
		}
		report.PrintMBR(record)
		rep.Partitions = report.MBRPartitions(record)

		if len(offsets) > 0 {
			results := extractFromEntries(img, record, offsets)
			report.PrintBootRecords(results)
			rep.BootRecords = report.BootRecordDumps(results)
		}
	case parser.SchemeGPT:
		table, err := parser.DecodeGPT(img, reg, sectorSize)
		if err != nil {
			return err
		}
		report.PrintGPT(table)
		rep.Partitions = report.GPTPartitions(table)
	}

	if reportPath != "" {
		if err = report.Save(reportPath, rep); err != nil {
			return err
		}
	}

	if cnst.VERBOSE {
		fmt.Printf("\nInspection completed in: %s\n", time.Since(start))
	}
	return nil
}

// extractFromEntries pairs each user offset with the used partitions in
// slot order: the absolute read position is the partition's start byte
// plus the user offset, matching how boot records are located on MBR
// disks.
func extractFromEntries(img *imgio.Image, record *parser.MasterBootRecord, offsets []int64) []bootrec.Result {
	used := make([]parser.MBRPartitionEntry, 0, len(record.Entries))
	for _, entry := range record.Entries {
		if !entry.Unused {
			used = append(used, entry)
		}
	}

	absolute := make([]int64, 0, len(offsets))
	for i, offset := range offsets {
		if i >= len(used) {
			break
		}
		start, _, _ := used[i].Geometry(record.SectorSize)
		absolute = append(absolute, int64(start)+offset)
	}

	return bootrec.Extract(img, absolute, cnst.BootRecordSize)
}
