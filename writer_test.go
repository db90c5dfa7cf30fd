package texgen

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, b []byte) PixelGrid {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return PixelGridFromImage(img)
}

func noiseGrid(width, height int) PixelGrid {
	p := NewPixelGrid(width, height)
	var s uint32 = 1
	for y := range height {
		for x := range width {
			s = s*1664525 + 1013904223
			p.Set(x, y, uint8(s>>24), uint8(s>>16), uint8(s>>8))
		}
	}
	return p
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		pixels PixelGrid
	}{
		{"red then green", 2, 1, PixelGrid{{255, 0, 0, 0, 255, 0}}},
		{"single black pixel", 1, 1, PixelGrid{{0, 0, 0}}},
		{"single column", 1, 3, PixelGrid{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}},
		{"noise 17x9", 17, 9, noiseGrid(17, 9)},
		{"noise 256x256", 256, 256, noiseGrid(256, 256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.width, tt.height, tt.pixels)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got := decode(t, b)
			if diff := cmp.Diff(tt.pixels, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeRedGreen(t *testing.T) {
	b, err := Encode(2, 1, PixelGrid{{255, 0, 0, 0, 255, 0}})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.RGBA); !ok {
		t.Errorf("decoded image type = %T, want *image.RGBA (truecolor)", img)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 2, 1); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if got, want := color.RGBAModel.Convert(img.At(0, 0)), (color.RGBA{R: 255, A: 255}); got != want {
		t.Errorf("At(0, 0) = %v, want %v", got, want)
	}
	if got, want := color.RGBAModel.Convert(img.At(1, 0)), (color.RGBA{G: 255, A: 255}); got != want {
		t.Errorf("At(1, 0) = %v, want %v", got, want)
	}

	h, err := ReadHeader(b)
	if err != nil {
		t.Fatal(err)
	}
	want := Header{Width: 2, Height: 1, BitDepth: 8, ColorType: 2}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeSignature(t *testing.T) {
	b, err := Encode(3, 2, noiseGrid(3, 2))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.Equal(b[:8], want) {
		t.Errorf("signature = %x, want %x", b[:8], want)
	}
}

func TestEncodeChunks(t *testing.T) {
	b, err := Encode(4, 4, noiseGrid(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := ReadChunks(b)
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}
	var types []string
	for _, c := range chunks {
		types = append(types, c.Type)
	}
	if diff := cmp.Diff([]string{"IHDR", "IDAT", "IEND"}, types); diff != "" {
		t.Errorf("chunk types mismatch (-want +got):\n%s", diff)
	}
	wantIHDR := []byte{0, 0, 0, 4, 0, 0, 0, 4, 8, 2, 0, 0, 0}
	if diff := cmp.Diff(wantIHDR, chunks[0].Data); diff != "" {
		t.Errorf("IHDR payload mismatch (-want +got):\n%s", diff)
	}
	if len(chunks[2].Data) != 0 {
		t.Errorf("IEND payload length = %d, want 0", len(chunks[2].Data))
	}
	// The well-known CRC of an empty IEND chunk.
	if got, want := chunks[2].CRC, uint32(0xae426082); got != want {
		t.Errorf("IEND crc = %08x, want %08x", got, want)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	for _, l := range []CompressionLevel{BestCompression, DefaultCompression, BestSpeed, NoCompression} {
		t.Run(l.String(), func(t *testing.T) {
			enc := &Encoder{CompressionLevel: l}
			p := noiseGrid(32, 32)
			a, err := enc.Encode(32, 32, p)
			if err != nil {
				t.Fatal(err)
			}
			b, err := enc.Encode(32, 32, p)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a, b) {
				t.Error("two encodes of the same input differ")
			}
		})
	}
}

func TestEncodeSingleBlackPixelSize(t *testing.T) {
	b, err := Encode(1, 1, PixelGrid{{0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := ReadChunks(b)
	if err != nil {
		t.Fatal(err)
	}
	idat := len(chunks[1].Data)
	// zlib header (2) + deflate of 4 zero bytes + adler32 (4).
	if idat < 7 || idat > 20 {
		t.Errorf("IDAT length = %d, want between 7 and 20", idat)
	}
	// signature + IHDR(12+13) + IDAT(12+n) + IEND(12)
	if got, want := len(b), 8+25+12+idat+12; got != want {
		t.Errorf("len = %d, want %d", got, want)
	}
}

func TestEncodeInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		pixels PixelGrid
	}{
		{"zero width", 0, 1, PixelGrid{{}}},
		{"zero height", 1, 0, PixelGrid{}},
		{"negative width", -1, 1, PixelGrid{{0, 0, 0}}},
		{"too few rows", 1, 2, PixelGrid{{0, 0, 0}}},
		{"too many rows", 1, 1, PixelGrid{{0, 0, 0}, {0, 0, 0}}},
		{"short row", 2, 2, PixelGrid{{0, 0, 0, 0, 0, 0}, {0, 0, 0}}},
		{"long row", 1, 1, PixelGrid{{0, 0, 0, 0}}},
		{"nil grid", 1, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.width, tt.height, tt.pixels)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Encode() error = %v, want %v", err, ErrInvalidDimensions)
			}
			if b != nil {
				t.Errorf("Encode() returned %d bytes, want nil", len(b))
			}
		})
	}
}

func TestEncodeCompressionLevels(t *testing.T) {
	p := noiseGrid(64, 64)
	for y := 32; y < 64; y++ {
		for x := range 64 {
			p.Set(x, y, 10, 20, 30)
		}
	}
	raw := 64 * (1 + 64*3)

	best, err := (&Encoder{}).Encode(64, 64, p)
	if err != nil {
		t.Fatal(err)
	}
	none, err := (&Encoder{CompressionLevel: NoCompression}).Encode(64, 64, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) <= raw {
		t.Errorf("uncompressed len = %d, want > %d", len(none), raw)
	}
	if len(best) >= len(none) {
		t.Errorf("best len = %d, want < uncompressed len %d", len(best), len(none))
	}
	for _, b := range [][]byte{best, none} {
		if diff := cmp.Diff(p, decode(t, b)); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEncodeInvalidLevel(t *testing.T) {
	b, err := (&Encoder{CompressionLevel: 42}).Encode(1, 1, PixelGrid{{0, 0, 0}})
	if !errors.Is(err, ErrCompression) {
		t.Errorf("Encode() error = %v, want %v", err, ErrCompression)
	}
	if b != nil {
		t.Errorf("Encode() returned %d bytes, want nil", len(b))
	}
}

func TestEncodeImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 70, G: 80, B: 90, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	b, err := (&Encoder{}).EncodeImage(img)
	if err != nil {
		t.Fatal(err)
	}
	want := PixelGrid{
		{10, 20, 30, 40, 50, 60},
		{70, 80, 90, 255, 255, 255},
	}
	if diff := cmp.Diff(want, decode(t, b)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCompressionLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    CompressionLevel
		wantErr bool
	}{
		{"best", BestCompression, false},
		{"default", DefaultCompression, false},
		{"speed", BestSpeed, false},
		{"none", NoCompression, false},
		{"", 0, true},
		{"9", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompressionLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompressionLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCompressionLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}
