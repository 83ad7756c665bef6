package speech

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Format describes the PCM stream found in a WAV header.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

var ErrUnsupportedAudio = errors.New("unsupported audio format")

// PCMReader returns a reader positioned at the first PCM sample. WAV input
// has its RIFF header consumed and its format returned; anything else is
// treated as raw PCM and returned with a nil format.
func PCMReader(r io.Reader) (io.Reader, *Format, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(12)
	if err != nil || !bytes.Equal(head[0:4], []byte("RIFF")) || !bytes.Equal(head[8:12], []byte("WAVE")) {
		// Short or headerless input is raw PCM.
		return br, nil, nil
	}
	if _, err := br.Discard(12); err != nil {
		return nil, nil, err
	}

	var format *Format
	for {
		var chunk struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(br, binary.LittleEndian, &chunk); err != nil {
			return nil, nil, fmt.Errorf("reading wav chunk: %w", err)
		}

		switch string(chunk.ID[:]) {
		case "fmt ":
			if chunk.Size < 16 {
				return nil, nil, fmt.Errorf("%w: fmt chunk too short", ErrUnsupportedAudio)
			}
			var f struct {
				AudioFormat   uint16
				Channels      uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(br, binary.LittleEndian, &f); err != nil {
				return nil, nil, fmt.Errorf("reading wav format: %w", err)
			}
			format = &Format{
				AudioFormat:   f.AudioFormat,
				Channels:      f.Channels,
				SampleRate:    f.SampleRate,
				BitsPerSample: f.BitsPerSample,
			}
			if err := skip(br, int64(chunk.Size)-16+int64(chunk.Size%2)); err != nil {
				return nil, nil, err
			}
		case "data":
			if format == nil {
				return nil, nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedAudio)
			}
			return io.LimitReader(br, int64(chunk.Size)), format, nil
		default:
			if err := skip(br, int64(chunk.Size)+int64(chunk.Size%2)); err != nil {
				return nil, nil, err
			}
		}
	}
}

// Check reports whether f is 16-bit mono PCM at sampleRate.
func (f *Format) Check(sampleRate int) error {
	if f.AudioFormat != 1 || f.BitsPerSample != 16 {
		return fmt.Errorf("%w: need 16-bit PCM", ErrUnsupportedAudio)
	}
	if f.Channels != 1 {
		return fmt.Errorf("%w: need mono, got %d channels", ErrUnsupportedAudio, f.Channels)
	}
	if int(f.SampleRate) != sampleRate {
		return fmt.Errorf("%w: need %d Hz, got %d Hz", ErrUnsupportedAudio, sampleRate, f.SampleRate)
	}
	return nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("skipping wav chunk: %w", err)
	}
	return nil
}
