// Package texgen generates placeholder textures and encodes them as minimal truecolor PNG files.
package texgen

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"
)

const pngHeader string = "\x89PNG\r\n\x1a\n"

// IHDR constants. Only 8-bit truecolor without interlacing is ever written.
const (
	bitDepth8      = 8
	ctTrueColor    = 2
	compressionDef = 0
	filterDef      = 0
	interlaceNone  = 0

	ftNone = 0
)

var (
	ErrInvalidDimensions = errors.New("texgen: invalid dimensions")
	ErrCompression       = errors.New("texgen: compression failure")
	ErrChunkTooLarge     = errors.New("texgen: chunk is too large")
)

func writeUint32(b []uint8, u uint32) {
	b[0] = uint8(u >> 24)
	b[1] = uint8(u >> 16)
	b[2] = uint8(u >> 8)
	b[3] = uint8(u)
}

// CompressionLevel selects the zlib effort for the IDAT stream.
// Only the compressed bytes depend on it; the decoded pixels never do.
type CompressionLevel int

const (
	BestCompression    CompressionLevel = 0
	DefaultCompression CompressionLevel = -1
	BestSpeed          CompressionLevel = -2
	NoCompression      CompressionLevel = -3
)

var compressionNames = map[string]CompressionLevel{
	"best":    BestCompression,
	"default": DefaultCompression,
	"speed":   BestSpeed,
	"none":    NoCompression,
}

// ParseCompressionLevel maps "best", "default", "speed" or "none" to a CompressionLevel.
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	l, ok := compressionNames[s]
	if !ok {
		return 0, fmt.Errorf("texgen: unknown compression level %q", s)
	}
	return l, nil
}

func (l CompressionLevel) String() string {
	for name, v := range compressionNames {
		if v == l {
			return name
		}
	}
	return "CompressionLevel(" + strconv.Itoa(int(l)) + ")"
}

// Encoder configures PNG encoding. The zero value compresses at maximum effort.
type Encoder struct {
	CompressionLevel CompressionLevel
}

var defaultEncoder = &Encoder{}

// Encode encodes pixels as an 8-bit truecolor PNG at maximum compression.
func Encode(width, height int, pixels PixelGrid) ([]byte, error) {
	return defaultEncoder.Encode(width, height, pixels)
}

type encoder struct {
	writer io.Writer

	tmpHeader [8]byte
	tmp       [13]byte
	tmpFooter [4]byte

	err error
}

func (e *encoder) writeChunk(b []byte, name string) {
	if e.err != nil {
		return
	}

	// Write header (length, type).
	n := uint32(len(b))
	if int(n) != len(b) {
		e.err = ErrChunkTooLarge
		return
	}
	writeUint32(e.tmpHeader[:4], n)
	e.tmpHeader[4] = name[0]
	e.tmpHeader[5] = name[1]
	e.tmpHeader[6] = name[2]
	e.tmpHeader[7] = name[3]
	_, e.err = e.writer.Write(e.tmpHeader[:8])
	if e.err != nil {
		return
	}

	// Write data.
	_, e.err = e.writer.Write(b)
	if e.err != nil {
		return
	}

	// Write footer (crc).
	crc := crc32.NewIEEE()
	crc.Write(e.tmpHeader[4:8])
	crc.Write(b)
	writeUint32(e.tmpFooter[:4], crc.Sum32())
	_, e.err = e.writer.Write(e.tmpFooter[:4])
}

func (e *encoder) writeIHDR(width, height int) {
	writeUint32(e.tmp[0:4], uint32(width))
	writeUint32(e.tmp[4:8], uint32(height))
	e.tmp[8] = bitDepth8
	e.tmp[9] = ctTrueColor
	e.tmp[10] = compressionDef
	e.tmp[11] = filterDef
	e.tmp[12] = interlaceNone
	e.writeChunk(e.tmp[:13], "IHDR")
}

func (e *encoder) writeIDAT(compressed []byte) {
	e.writeChunk(compressed, "IDAT")
}

func (e *encoder) writeIEND() {
	e.writeChunk(nil, "IEND")
}

// Encode validates pixels against width and height, then returns the complete PNG.
// On error the returned slice is nil.
func (enc *Encoder) Encode(width, height int, pixels PixelGrid) ([]byte, error) {
	if err := pixels.Validate(width, height); err != nil {
		return nil, err
	}

	compressed, err := enc.compress(filterRows(pixels))
	if err != nil {
		return nil, err
	}

	bb := &bytes.Buffer{}
	bb.Grow(len(pngHeader) + 25 + 12 + len(compressed) + 12)
	e := encoder{writer: bb}
	_, e.err = io.WriteString(bb, pngHeader)
	e.writeIHDR(width, height)
	e.writeIDAT(compressed)
	e.writeIEND()
	if e.err != nil {
		return nil, e.err
	}
	return bb.Bytes(), nil
}

// EncodeImage encodes img, dropping any alpha channel.
func (enc *Encoder) EncodeImage(img image.Image) ([]byte, error) {
	b := img.Bounds()
	return enc.Encode(b.Dx(), b.Dy(), PixelGridFromImage(img))
}

func levelToZlib(l CompressionLevel) (int, error) {
	switch l {
	case BestCompression:
		return zlib.BestCompression, nil
	case DefaultCompression:
		return zlib.DefaultCompression, nil
	case BestSpeed:
		return zlib.BestSpeed, nil
	case NoCompression:
		return zlib.NoCompression, nil
	}
	return 0, fmt.Errorf("%w: invalid level %d", ErrCompression, int(l))
}

// filterRows prefixes every row with the "none" filter type.
func filterRows(pixels PixelGrid) []byte {
	if len(pixels) == 0 {
		return nil
	}
	stride := 1 + len(pixels[0])
	raw := make([]byte, 0, stride*len(pixels))
	for _, row := range pixels {
		raw = append(raw, ftNone)
		raw = append(raw, row...)
	}
	return raw
}

func (enc *Encoder) compress(raw []byte) ([]byte, error) {
	level, err := levelToZlib(enc.CompressionLevel)
	if err != nil {
		return nil, err
	}
	bb := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(bb, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	return bb.Bytes(), nil
}
