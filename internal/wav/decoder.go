// Package wav decodes canonical 44-byte-header 16-bit PCM WAV files.
package wav

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Decoder reads the PCM payload of a canonical WAV stream.
type Decoder struct {
	r        io.Reader
	closer   io.Closer
	header   Header
	duration Duration
	read     int64
	avail    int64 // payload bytes in the source, -1 if unknown
}

// growChunk bounds how much LoadAll reserves ahead of bytes actually read
// from a source of unknown size.
const growChunk = 1 << 20

// Decode reads and validates the 44-byte header from r.
// The returned decoder is positioned at the first payload byte.
func Decode(r io.Reader) (*Decoder, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FormatError{
				Reason: fmt.Sprintf("header is %d bytes, want %d", n, HeaderSize),
				Err:    err,
			}
		}
		return nil, &IOError{Op: "read header", Err: err}
	}

	h, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		r:        r,
		header:   h,
		duration: DurationOf(h.Format(), h.Data.ChunkSize),
		avail:    -1,
	}, nil
}

// Open opens path and decodes its header. The decoder owns the file.
func Open(path string) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}

	d, err := Decode(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	d.closer = f
	if st, err := f.Stat(); err == nil && st.Mode().IsRegular() {
		d.avail = max(st.Size()-HeaderSize, 0)
	}
	return d, nil
}

// Header returns the parsed header.
func (d *Decoder) Header() Header { return d.header }

// Format returns the playback format.
func (d *Decoder) Format() Format { return d.header.Format() }

// Duration returns the track length derived from the header.
func (d *Decoder) Duration() Duration { return d.duration }

// LoadAll reads the whole payload declared by the data chunk.
// A source shorter than the declared size is an IOError. Memory is reserved
// only for bytes the source can actually supply, so a corrupt size field
// cannot trigger a huge allocation.
func (d *Decoder) LoadAll() ([]byte, error) {
	remaining := int64(d.header.Data.ChunkSize) - d.read
	if remaining <= 0 {
		return []byte{}, nil
	}

	if d.avail >= 0 {
		if left := d.avail - d.read; left < remaining {
			return nil, shortPayload(left, remaining)
		}
		buf := make([]byte, remaining)
		n, err := io.ReadFull(d.r, buf)
		d.read += int64(n)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, shortPayload(int64(n), remaining)
			}
			return nil, &IOError{Op: "load payload", Err: err}
		}
		return buf, nil
	}

	var buf bytes.Buffer
	buf.Grow(int(min(remaining, growChunk)))
	n, err := io.Copy(&buf, io.LimitReader(d.r, remaining))
	d.read += n
	if err != nil {
		return nil, &IOError{Op: "load payload", Err: err}
	}
	if n < remaining {
		return nil, shortPayload(n, remaining)
	}
	return buf.Bytes(), nil
}

func shortPayload(got, want int64) *IOError {
	return &IOError{
		Op:  fmt.Sprintf("load payload (%d of %d bytes)", got, want),
		Err: io.ErrUnexpectedEOF,
	}
}

// ReadChunk reads up to n payload bytes from the current position.
// The read that reaches the end of the payload, or of the underlying source,
// returns io.EOF together with whatever bytes it got, possibly fewer than n.
func (d *Decoder) ReadChunk(n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}

	remaining := int64(d.header.Data.ChunkSize) - d.read
	if remaining <= 0 {
		return []byte{}, io.EOF
	}
	if int64(n) > remaining {
		n = int(remaining)
	}

	buf := make([]byte, n)
	got, err := io.ReadFull(d.r, buf)
	d.read += int64(got)
	switch {
	case err == nil:
		if d.read >= int64(d.header.Data.ChunkSize) {
			return buf, io.EOF
		}
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:got], io.EOF
	default:
		return buf[:got], &IOError{Op: "read chunk", Err: err}
	}
}

// Close releases the underlying file if the decoder was created by Open.
func (d *Decoder) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}
