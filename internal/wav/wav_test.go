package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildHeader returns a canonical header for 16-bit PCM.
func buildHeader(sampleRate uint32, channels uint16, dataSize uint32) []byte {
	b := make([]byte, HeaderSize)
	le := binary.LittleEndian
	copy(b[0:4], "RIFF")
	le.PutUint32(b[4:8], 36+dataSize)
	copy(b[8:12], "WAVE")
	copy(b[12:16], "fmt ")
	le.PutUint32(b[16:20], 16)
	le.PutUint16(b[20:22], AudioFormatPCM)
	le.PutUint16(b[22:24], channels)
	le.PutUint32(b[24:28], sampleRate)
	le.PutUint32(b[28:32], sampleRate*uint32(channels)*2)
	le.PutUint16(b[32:34], channels*2)
	le.PutUint16(b[34:36], 16)
	copy(b[36:40], "data")
	le.PutUint32(b[40:44], dataSize)
	return b
}

func TestParseHeader_Valid(t *testing.T) {
	h, err := ParseHeader(buildHeader(44100, 2, 1000))
	require.NoError(t, err)

	assert.Equal(t, "RIFF", h.Riff.ChunkID)
	assert.Equal(t, "WAVE", h.Riff.Format)
	assert.Equal(t, uint32(1036), h.Riff.ChunkSize)
	assert.Equal(t, uint16(2), h.Fmt.Channels)
	assert.Equal(t, uint32(44100), h.Fmt.SampleRate)
	assert.Equal(t, uint32(176400), h.Fmt.ByteRate)
	assert.Equal(t, uint16(4), h.Fmt.BlockAlign)
	assert.Equal(t, uint32(1000), h.Data.ChunkSize)

	f := h.Format()
	assert.Equal(t, Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16, BlockAlign: 4}, f)
	assert.Equal(t, 176400, f.BytesPerSecond())
}

func TestParseHeader_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(b []byte) []byte
		unsupported bool
	}{
		{"short", func(b []byte) []byte { return b[:43] }, false},
		{"riff tag", func(b []byte) []byte { copy(b[0:4], "RIFX"); return b }, false},
		{"wave tag", func(b []byte) []byte { copy(b[8:12], "AVI "); return b }, false},
		{"fmt tag", func(b []byte) []byte { copy(b[12:16], "LIST"); return b }, false},
		{"data tag", func(b []byte) []byte { copy(b[36:40], "fact"); return b }, false},
		{"float", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[20:22], 3); return b }, true},
		{"24 bit", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[34:36], 24); return b }, true},
		{"no channels", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[22:24], 0); return b }, false},
		{"no rate", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[24:28], 0); return b }, false},
		{"block align", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[32:34], 3); return b }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.mutate(buildHeader(44100, 2, 8)))
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.unsupported, errors.Is(err, ErrUnsupported))
		})
	}
}

func TestDecode_ShortHeader(t *testing.T) {
	_, err := Decode(bytes.NewReader(buildHeader(44100, 2, 8)[:20]))
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Decode(bytes.NewReader(nil))
	require.ErrorAs(t, err, &fe)
}

func TestDecoder_LoadAll(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	src := append(buildHeader(8000, 1, uint32(len(payload))), payload...)
	// Trailing bytes after the data chunk are not part of the track.
	src = append(src, 0xff, 0xff)

	d, err := Decode(bytes.NewReader(src))
	require.NoError(t, err)

	got, err := d.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecoder_LoadAll_Truncated(t *testing.T) {
	src := append(buildHeader(8000, 1, 100), make([]byte, 40)...)

	d, err := Decode(bytes.NewReader(src))
	require.NoError(t, err)

	_, err = d.LoadAll()
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var fe *FormatError
	assert.False(t, errors.As(err, &fe), "truncated payload is not a format error")
}

func TestDecoder_LoadAll_HugeDeclaredSize(t *testing.T) {
	src := append(buildHeader(44100, 2, 0xFFFFFFF0), make([]byte, 10)...)

	d, err := Decode(bytes.NewReader(src))
	require.NoError(t, err)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = d.LoadAll()
	runtime.ReadMemStats(&after)

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20),
		"allocation must track the bytes present, not the declared size")
}

func TestOpen_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	src := append(buildHeader(44100, 2, 0xFFFFFFF0), make([]byte, 10)...)
	require.NoError(t, os.WriteFile(path, src, 0o644))

	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = d.LoadAll()
	runtime.ReadMemStats(&after)

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, ioe.Op, "10 of")
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestDecoder_ReadChunk(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	src := append(buildHeader(8000, 1, uint32(len(payload))), payload...)

	d, err := Decode(bytes.NewReader(src))
	require.NoError(t, err)

	b, err := d.ReadChunk(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, b)

	b, err = d.ReadChunk(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6, 7, 8}, b)

	b, err = d.ReadChunk(4)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []byte{9, 10}, b)

	b, err = d.ReadChunk(4)
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, b)
}

func TestDecoder_ReadChunk_SourceExhausted(t *testing.T) {
	// Header declares more data than the source holds.
	src := append(buildHeader(8000, 1, 100), 1, 2, 3)

	d, err := Decode(bytes.NewReader(src))
	require.NoError(t, err)

	b, err := d.ReadChunk(10)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []byte{1, 2, 3}, b)
}

func TestDurationOf(t *testing.T) {
	f := Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16, BlockAlign: 4}

	tests := []struct {
		name        string
		dataSize    uint32
		wantWhole   int
		wantMinutes int
		wantSeconds int
		wantString  string
	}{
		{"empty", 0, 0, 0, 0, "00:00"},
		{"exact second", 44100 * 4, 1, 0, 1, "00:01"},
		{"remainder rounds up", 44100*4*90 + 4, 90, 1, 31, "01:31"},
		{"half second", 44100 * 2, 0, 0, 1, "00:01"},
		{"carry into minute", 44100*4*59 + 8, 59, 1, 0, "01:00"},
		{"partial frame ignored", 44100*4 + 3, 1, 0, 1, "00:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DurationOf(f, tt.dataSize)
			assert.Equal(t, int(tt.dataSize/4/44100), d.WholeSeconds())
			assert.Equal(t, tt.wantWhole, d.WholeSeconds())
			assert.Equal(t, tt.wantMinutes, d.Minutes)
			assert.Equal(t, tt.wantSeconds, d.Seconds)
			assert.Equal(t, tt.wantString, d.String())
		})
	}
}

func TestDurationOf_DisplayNeverBelowWhole(t *testing.T) {
	f := Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16, BlockAlign: 4}
	for _, size := range []uint32{1, 4, 176399, 176400, 176404, 10_000_000, 52_920_000} {
		d := DurationOf(f, size)
		assert.GreaterOrEqual(t, d.Minutes*60+d.Seconds, d.WholeSeconds(), "size %d", size)
		assert.Less(t, d.Seconds, 60)
	}
}

func TestDurationOf_ZeroFormat(t *testing.T) {
	assert.Equal(t, Duration{}, DurationOf(Format{}, 1000))
}

func TestFormat_Milliseconds(t *testing.T) {
	stereo := Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16, BlockAlign: 4}
	mono := Format{SampleRate: 8000, Channels: 1, BitsPerSample: 16, BlockAlign: 2}

	tests := []struct {
		name  string
		f     Format
		bytes int64
		want  int64
	}{
		{"one second stereo", stereo, 176_400, 1000},
		{"partial frame ignored", stereo, 176_403, 1000},
		{"half second mono", mono, 8000, 500},
		{"zero", mono, 0, 0},
		{"negative", mono, -10, 0},
		{"no format", Format{}, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Milliseconds(tt.bytes))
		})
	}
}

func TestOpen(t *testing.T) {
	payload := []byte{0, 1, 0, 2}
	path := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(path, append(buildHeader(22050, 1, 4), payload...), 0o644))

	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, uint32(22050), d.Format().SampleRate)
	got, err := d.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.wav"))
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
