package vosk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fasthttp/websocket"
)

// DefaultFrameSize matches the capture buffer used by desktop clients.
const DefaultFrameSize = 4096

// VoskDriver talks to a vosk-server style WebSocket endpoint: a config
// message, binary audio frames, then an eof message. The server answers
// every frame with either a partial or a terminal result.
type VoskDriver struct {
	URL        string
	SampleRate int
	FrameSize  int
	Dialer     *websocket.Dialer
}

func NewVoskDriver(url string, sampleRate int) *VoskDriver {
	return &VoskDriver{
		URL:        strings.TrimSpace(url),
		SampleRate: sampleRate,
		FrameSize:  DefaultFrameSize,
		Dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

type configMessage struct {
	Config struct {
		SampleRate int `json:"sample_rate"`
	} `json:"config"`
}

// result is one server reply. Text is set only on terminal results.
type result struct {
	Text    *string `json:"text"`
	Partial *string `json:"partial"`
}

var errNoResult = errors.New("vosk: no terminal result")

// Transcribe streams audio until the first terminal result with text, or
// until audio is exhausted, and returns that text.
func (d *VoskDriver) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	if d.URL == "" {
		return "", errors.New("vosk: server url is empty")
	}
	frameSize := d.FrameSize
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, d.URL, nil)
	if err != nil {
		return "", fmt.Errorf("vosk: dial: %w", err)
	}
	defer conn.Close()

	// Unblock reads and writes when ctx ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	text, err := d.stream(conn, audio, frameSize)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return text, nil
}

func (d *VoskDriver) stream(conn *websocket.Conn, audio io.Reader, frameSize int) (string, error) {
	var cfg configMessage
	cfg.Config.SampleRate = d.SampleRate
	if err := conn.WriteJSON(cfg); err != nil {
		return "", fmt.Errorf("vosk: send config: %w", err)
	}

	buf := make([]byte, frameSize)
	for {
		n, readErr := io.ReadFull(audio, buf)
		if n > 0 {
			if err := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); err != nil {
				return "", fmt.Errorf("vosk: send audio: %w", err)
			}
			res, err := readResult(conn)
			if err != nil {
				return "", err
			}
			if res.Text != nil && *res.Text != "" {
				return *res.Text, nil
			}
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("vosk: read audio: %w", readErr)
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"eof" : 1}`)); err != nil {
		return "", fmt.Errorf("vosk: send eof: %w", err)
	}
	res, err := readResult(conn)
	if err != nil {
		return "", err
	}
	if res.Text == nil {
		return "", errNoResult
	}
	return *res.Text, nil
}

func readResult(conn *websocket.Conn) (result, error) {
	var res result
	_, data, err := conn.ReadMessage()
	if err != nil {
		return res, fmt.Errorf("vosk: read result: %w", err)
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("vosk: parse result: %w", err)
	}
	if res.Text != nil {
		trimmed := strings.TrimSpace(*res.Text)
		res.Text = &trimmed
	}
	return res, nil
}
