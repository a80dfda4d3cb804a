package cli

import (
	"diskprobe/lib/imgio"
	"diskprobe/lib/ptype"
)

func common(imagePath, typesPath string) (*imgio.Image, *ptype.Registry, error) {
	img, err := imgio.Open(imagePath)
	if err != nil {
		return nil, nil, err
	}

	reg := ptype.NewRegistry()
	if typesPath != "" {
		if err = reg.LoadCSV(typesPath); err != nil {
			img.Close()
			return nil, nil, err
		}
	}

	return img, reg, nil
}
