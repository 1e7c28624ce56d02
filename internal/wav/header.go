package wav

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the canonical RIFF/fmt/data header.
const HeaderSize = 44

// AudioFormatPCM is the fmt chunk tag for uncompressed integer PCM.
const AudioFormatPCM = 1

// RiffChunk is the outer RIFF container descriptor.
type RiffChunk struct {
	ChunkID   string
	ChunkSize uint32
	Format    string
}

// FmtChunk describes the sample encoding.
type FmtChunk struct {
	ChunkID       string
	ChunkSize     uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// DataChunk precedes the PCM payload.
type DataChunk struct {
	ChunkID   string
	ChunkSize uint32
}

// Header is the parsed 44-byte canonical header.
type Header struct {
	Riff RiffChunk
	Fmt  FmtChunk
	Data DataChunk
}

// Format is the immutable playback format derived from the header.
type Format struct {
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
	BlockAlign    uint16
}

// BytesPerSecond returns the number of payload bytes per second of audio.
func (f Format) BytesPerSecond() int {
	return int(f.SampleRate) * int(f.BlockAlign)
}

// Milliseconds converts a count of payload bytes into elapsed milliseconds.
// Partial frames are ignored.
func (f Format) Milliseconds(bytes int64) int64 {
	if f.BlockAlign == 0 || f.SampleRate == 0 || bytes <= 0 {
		return 0
	}
	frames := bytes / int64(f.BlockAlign)
	return frames * 1000 / int64(f.SampleRate)
}

// Format returns the playback format.
func (h Header) Format() Format {
	return Format{
		SampleRate:    h.Fmt.SampleRate,
		Channels:      h.Fmt.Channels,
		BitsPerSample: h.Fmt.BitsPerSample,
		BlockAlign:    h.Fmt.BlockAlign,
	}
}

// ParseHeader parses and validates a canonical header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, &FormatError{
			Reason: fmt.Sprintf("header is %d bytes, want %d", len(b), HeaderSize),
		}
	}

	le := binary.LittleEndian
	h := Header{
		Riff: RiffChunk{
			ChunkID:   string(b[0:4]),
			ChunkSize: le.Uint32(b[4:8]),
			Format:    string(b[8:12]),
		},
		Fmt: FmtChunk{
			ChunkID:       string(b[12:16]),
			ChunkSize:     le.Uint32(b[16:20]),
			AudioFormat:   le.Uint16(b[20:22]),
			Channels:      le.Uint16(b[22:24]),
			SampleRate:    le.Uint32(b[24:28]),
			ByteRate:      le.Uint32(b[28:32]),
			BlockAlign:    le.Uint16(b[32:34]),
			BitsPerSample: le.Uint16(b[34:36]),
		},
		Data: DataChunk{
			ChunkID:   string(b[36:40]),
			ChunkSize: le.Uint32(b[40:44]),
		},
	}

	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

func (h Header) validate() error {
	tags := []struct {
		field, got, want string
	}{
		{"riff.chunk_id", h.Riff.ChunkID, "RIFF"},
		{"riff.format", h.Riff.Format, "WAVE"},
		{"fmt.chunk_id", h.Fmt.ChunkID, "fmt "},
		{"data.chunk_id", h.Data.ChunkID, "data"},
	}
	for _, t := range tags {
		if t.got != t.want {
			return &FormatError{Field: t.field, Reason: fmt.Sprintf("got %q, want %q", t.got, t.want)}
		}
	}

	if h.Fmt.AudioFormat != AudioFormatPCM {
		return &FormatError{
			Field:  "fmt.audio_format",
			Reason: fmt.Sprintf("%d is not PCM", h.Fmt.AudioFormat),
			Err:    ErrUnsupported,
		}
	}
	if h.Fmt.BitsPerSample != 16 {
		return &FormatError{
			Field:  "fmt.bits_per_sample",
			Reason: fmt.Sprintf("%d bits, only 16 supported", h.Fmt.BitsPerSample),
			Err:    ErrUnsupported,
		}
	}
	if h.Fmt.Channels == 0 {
		return &FormatError{Field: "fmt.channels", Reason: "zero channels"}
	}
	if h.Fmt.SampleRate == 0 {
		return &FormatError{Field: "fmt.sample_rate", Reason: "zero sample rate"}
	}
	if want := h.Fmt.Channels * 2; h.Fmt.BlockAlign != want {
		return &FormatError{
			Field:  "fmt.block_align",
			Reason: fmt.Sprintf("got %d, want %d for %d channels", h.Fmt.BlockAlign, want, h.Fmt.Channels),
		}
	}
	return nil
}
