package bootrec

import (
	"bytes"
	"diskprobe/lib/cnst"
	"diskprobe/lib/imgio"
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	data := make([]byte, 2048)
	for i := range data {
		data[i] = byte(i / 512)
	}
	img := imgio.NewImage(data)

	results := Extract(img, []int64{0, 512}, cnst.BootRecordSize)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, result := range results {
		if result.Err != nil {
			t.Fatal(result.Err)
		}
		if !bytes.Equal(result.Data, data[512*i:512*(i+1)]) {
			t.Fatalf("result %d holds wrong block", i)
		}
	}
}

// One bad offset must not abort the rest, and result order must match
// request order.
func TestExtractIndependentOffsets(t *testing.T) {
	img := imgio.NewImage(make([]byte, 2048))

	offsets := []int64{0, 4096, 1536}
	results := Extract(img, offsets, cnst.BootRecordSize)
	if len(results) != len(offsets) {
		t.Fatalf("got %d results, want %d", len(results), len(offsets))
	}

	for i, result := range results {
		if result.Offset != offsets[i] {
			t.Fatalf("result %d has offset %d, want %d", i, result.Offset, offsets[i])
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("valid offsets failed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, cnst.ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", results[1].Err)
	}
	if len(results[0].Data) != cnst.BootRecordSize {
		t.Fatalf("record is %d bytes, want %d", len(results[0].Data), cnst.BootRecordSize)
	}
}
