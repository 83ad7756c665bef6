package speech

import (
	"context"
	"errors"
	"io"
)

var ErrUnavailable = errors.New("speech recognition is not configured")

// Transcriber is the interface that all speech recognition drivers must implement
type Transcriber interface {
	// Transcribe streams raw 16-bit little-endian mono PCM from audio and
	// returns the recognized text of the first terminal result.
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}
