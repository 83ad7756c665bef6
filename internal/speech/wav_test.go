package speech

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildWAV writes a minimal RIFF/WAVE file with an extra LIST chunk before data.
func buildWAV(channels uint16, rate uint32, pcm []byte) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("RIFF")
	binary.Write(&buf, le, uint32(0)) // size is not checked
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, le, uint32(16))
	binary.Write(&buf, le, uint16(1))
	binary.Write(&buf, le, channels)
	binary.Write(&buf, le, rate)
	binary.Write(&buf, le, rate*uint32(channels)*2)
	binary.Write(&buf, le, channels*2)
	binary.Write(&buf, le, uint16(16))

	buf.WriteString("LIST")
	binary.Write(&buf, le, uint32(3))
	buf.Write([]byte{1, 2, 3, 0}) // odd size plus pad byte

	buf.WriteString("data")
	binary.Write(&buf, le, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

func TestPCMReaderWAV(t *testing.T) {
	pcm := []byte{10, 20, 30, 40, 50, 60}
	r, format, err := PCMReader(bytes.NewReader(buildWAV(1, 16000, pcm)))
	assert.NoError(t, err)
	if assert.NotNil(t, format) {
		assert.Equal(t, uint16(1), format.Channels)
		assert.Equal(t, uint32(16000), format.SampleRate)
		assert.NoError(t, format.Check(16000))
	}

	got, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, pcm, got)
}

func TestPCMReaderRaw(t *testing.T) {
	raw := []byte("not a riff header at all")
	r, format, err := PCMReader(bytes.NewReader(raw))
	assert.NoError(t, err)
	assert.Nil(t, format)

	got, _ := io.ReadAll(r)
	assert.Equal(t, raw, got)

	// Shorter than a RIFF header
	r, format, err = PCMReader(bytes.NewReader([]byte{1, 2}))
	assert.NoError(t, err)
	assert.Nil(t, format)
	got, _ = io.ReadAll(r)
	assert.Equal(t, []byte{1, 2}, got)
}

func TestFormatCheck(t *testing.T) {
	_, stereo, err := PCMReader(bytes.NewReader(buildWAV(2, 16000, nil)))
	assert.NoError(t, err)
	assert.ErrorIs(t, stereo.Check(16000), ErrUnsupportedAudio)

	_, slow, err := PCMReader(bytes.NewReader(buildWAV(1, 8000, nil)))
	assert.NoError(t, err)
	assert.ErrorIs(t, slow.Check(16000), ErrUnsupportedAudio)
}
