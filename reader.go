package texgen

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

var (
	ErrBadSignature     = errors.New("texgen: not a PNG file")
	ErrChecksumMismatch = errors.New("texgen: chunk checksum mismatch")
	ErrMissingIEND      = errors.New("texgen: missing IEND chunk")
	ErrMissingIHDR      = errors.New("texgen: missing IHDR chunk")
)

// Chunk is one length-prefixed, checksummed block of a PNG stream.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// Header is the decoded IHDR payload.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

type chunkFetcher struct {
	bb     *bytes.Buffer
	tmp    [8]byte
	chunks []Chunk
	done   bool
}

func (c *chunkFetcher) parseChunk() error {
	if _, err := io.ReadFull(c.bb, c.tmp[:8]); err != nil {
		return err
	}
	length := binary.BigEndian.Uint32(c.tmp[:4])
	name := string(c.tmp[4:8])

	data := c.bb.Next(int(length))
	if len(data) < int(length) {
		return io.ErrUnexpectedEOF
	}
	footer := c.bb.Next(4)
	if len(footer) < 4 {
		return io.ErrUnexpectedEOF
	}
	stored := binary.BigEndian.Uint32(footer)

	crc := crc32.NewIEEE()
	crc.Write(c.tmp[4:8])
	crc.Write(data)
	if got := crc.Sum32(); got != stored {
		return fmt.Errorf("%w: %s stored %08x, computed %08x", ErrChecksumMismatch, name, stored, got)
	}

	c.chunks = append(c.chunks, Chunk{Type: name, Data: data, CRC: stored})
	if name == "IEND" {
		c.done = true
	}
	return nil
}

// ReadChunks walks a PNG byte stream up to IEND, verifying every chunk checksum.
// Pixel data is never inflated.
func ReadChunks(b []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(b, []byte(pngHeader)) {
		return nil, ErrBadSignature
	}
	c := &chunkFetcher{bb: bytes.NewBuffer(b[len(pngHeader):])}
	for !c.done {
		if c.bb.Len() == 0 {
			return c.chunks, ErrMissingIEND
		}
		if err := c.parseChunk(); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return c.chunks, err
		}
	}
	return c.chunks, nil
}

// ReadHeader returns the IHDR fields of a PNG byte stream.
func ReadHeader(b []byte) (Header, error) {
	chunks, err := ReadChunks(b)
	if err != nil {
		return Header{}, err
	}
	return HeaderFromChunks(chunks)
}

// HeaderFromChunks decodes the first chunk, which must be a 13-byte IHDR.
func HeaderFromChunks(chunks []Chunk) (Header, error) {
	if len(chunks) == 0 || chunks[0].Type != "IHDR" {
		return Header{}, ErrMissingIHDR
	}
	d := chunks[0].Data
	if len(d) != 13 {
		return Header{}, fmt.Errorf("texgen: bad IHDR length %d", len(d))
	}
	return Header{
		Width:       binary.BigEndian.Uint32(d[0:4]),
		Height:      binary.BigEndian.Uint32(d[4:8]),
		BitDepth:    d[8],
		ColorType:   d[9],
		Compression: d[10],
		Filter:      d[11],
		Interlace:   d[12],
	}, nil
}
