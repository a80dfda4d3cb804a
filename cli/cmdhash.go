package cli

import (
	"diskprobe/lib/hashio"
	"diskprobe/lib/report"
)

func HashData(imagePath string) error {
	digests, err := hashio.HashImage(imagePath)
	if err != nil {
		return err
	}
	report.PrintDigests(digests)
	return nil
}
