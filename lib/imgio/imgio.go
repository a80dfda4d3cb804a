package imgio

import (
	"bytes"
	"diskprobe/lib/cnst"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/zstd"
)

// zstd frame magic, images compressed for archival are decoded in memory
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Image is a read-only view of a raw disk image. All reads are bounds
// checked against the image length and fail with cnst.ErrOutOfRange,
// they never truncate or zero-pad.
type Image struct {
	data   []byte
	mapped mmap.MMap
	handle *os.File
	path   string
}

// Open memory-maps the image at path read-only. A zstd compressed image
// is decompressed into memory and the mapping is released immediately.
func Open(path string) (*Image, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	mapped, err := mmap.Map(handle, mmap.RDONLY, 0)
	if err != nil {
		handle.Close()
		return nil, err
	}

	img := &Image{data: mapped, mapped: mapped, handle: handle, path: path}
	if !bytes.HasPrefix(img.data, zstdMagic) {
		return img, nil
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		img.Close()
		return nil, err
	}
	defer decoder.Close()

	data, err := decoder.DecodeAll(img.data, nil)
	if err != nil {
		img.Close()
		return nil, fmt.Errorf("decompressing image: %w", err)
	}
	if err = img.Close(); err != nil {
		return nil, err
	}

	return &Image{data: data, path: path}, nil
}

// NewImage wraps an in-memory buffer. The buffer must not be mutated
// while the image is in use.
func NewImage(data []byte) *Image {
	return &Image{data: data}
}

func (img *Image) Path() string {
	return img.path
}

func (img *Image) Size() int64 {
	return int64(len(img.data))
}

// Sectors returns the number of whole sectors the image holds.
func (img *Image) Sectors(sectorSize uint64) uint64 {
	if sectorSize == 0 {
		return 0
	}
	return uint64(len(img.data)) / sectorSize
}

func (img *Image) ReadU16LE(offset int64) (uint16, error) {
	if err := img.check(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(img.data[offset:]), nil
}

func (img *Image) ReadU32LE(offset int64) (uint32, error) {
	if err := img.check(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(img.data[offset:]), nil
}

func (img *Image) ReadU64LE(offset int64) (uint64, error) {
	if err := img.check(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(img.data[offset:]), nil
}

// ReadBytes returns a subslice of the underlying buffer, never a copy.
// Callers must treat the result as read-only.
func (img *Image) ReadBytes(offset, length int64) ([]byte, error) {
	if err := img.check(offset, length); err != nil {
		return nil, err
	}
	return img.data[offset : offset+length], nil
}

func (img *Image) check(offset, width int64) error {
	if offset < 0 || width < 0 || offset > img.Size()-width {
		return fmt.Errorf("%w: %d bytes at offset %d, image is %d bytes",
			cnst.ErrOutOfRange, width, offset, len(img.data))
	}
	return nil
}

func (img *Image) Close() error {
	if img.mapped != nil {
		if err := img.mapped.Unmap(); err != nil {
			return err
		}
		img.mapped = nil
	}
	if img.handle != nil {
		if err := img.handle.Close(); err != nil {
			return err
		}
		img.handle = nil
	}
	img.data = nil
	return nil
}
