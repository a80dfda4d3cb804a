package bootrec

import "diskprobe/lib/imgio"

// Result is the outcome for one requested offset. Data aliases the
// image buffer and is opaque, no interpretation is attempted.
type Result struct {
	Offset int64
	Data   []byte
	Err    error
}

// Extract reads a fixed-size boot record at each absolute byte offset.
// Offsets are independent: a failed read is recorded on its own result
// and the remaining offsets are still processed. Result order matches
// request order.
func Extract(img *imgio.Image, offsets []int64, size int64) []Result {
	results := make([]Result, 0, len(offsets))
	for _, offset := range offsets {
		data, err := img.ReadBytes(offset, size)
		results = append(results, Result{Offset: offset, Data: data, Err: err})
	}
	return results
}
