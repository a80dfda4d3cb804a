package cli

import (
	"diskprobe/lib/bootrec"
	"diskprobe/lib/cnst"
	"diskprobe/lib/imgio"
	"diskprobe/lib/report"
)

// ExtractRecords dumps boot records at absolute byte offsets. Offsets
// are processed independently, one bad offset does not stop the rest.
func ExtractRecords(imagePath string, offsets []int64) error {
	img, err := imgio.Open(imagePath)
	if err != nil {
		return err
	}
	defer img.Close()

	results := bootrec.Extract(img, offsets, cnst.BootRecordSize)
	report.PrintBootRecords(results)
	return nil
}
