package parser

import (
	"diskprobe/lib/cnst"
	"diskprobe/lib/imgio"
	"errors"
	"testing"
)

func TestDetectScheme(t *testing.T) {
	testCases := []struct {
		name   string
		mbrSig bool
		gptSig bool
		want   Scheme
	}{
		{"mbr only", true, false, SchemeMBR},
		{"gpt only", false, true, SchemeGPT},
		{"both prefers gpt", true, true, SchemeGPT},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := make([]byte, 1024)
			if tc.mbrSig {
				data[510] = 0x55
				data[511] = 0xAA
			}
			if tc.gptSig {
				copy(data[512:], cnst.GPTSignature)
			}

			got, err := DetectScheme(imgio.NewImage(data), cnst.DefaultSectorSize)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetectSchemeUnknown(t *testing.T) {
	got, err := DetectScheme(imgio.NewImage(make([]byte, 1024)), cnst.DefaultSectorSize)
	if !errors.Is(err, cnst.ErrUnknownScheme) {
		t.Fatalf("got %v, want ErrUnknownScheme", err)
	}
	if got != SchemeUnknown {
		t.Fatalf("got %v, want SchemeUnknown", got)
	}
}

// Detection must depend only on bytes 510-511 and 512-519.
func TestDetectSchemeIgnoresOtherBytes(t *testing.T) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = 0xCC
	}
	copy(data[512:], "XXXXXXXX")
	data[510] = 0x55
	data[511] = 0xAA

	got, err := DetectScheme(imgio.NewImage(data), cnst.DefaultSectorSize)
	if err != nil {
		t.Fatal(err)
	}
	if got != SchemeMBR {
		t.Fatalf("got %v, want SchemeMBR", got)
	}
}

func TestDetectSchemeTinyImage(t *testing.T) {
	if _, err := DetectScheme(imgio.NewImage(make([]byte, 100)), cnst.DefaultSectorSize); !errors.Is(err, cnst.ErrUnknownScheme) {
		t.Fatalf("got %v, want ErrUnknownScheme", err)
	}
}
