package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"customer-chatbot/internal/metrics"
	"customer-chatbot/internal/models"
	"customer-chatbot/internal/speech"
	"customer-chatbot/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrVoiceBusy = errors.New("a voice session is already running")
	ErrNoSpeech  = errors.New("no speech recognized")
)

// VoiceWorker runs at most one transcription at a time.
type VoiceWorker struct {
	transcriber speech.Transcriber
	sampleRate  int
	timeout     time.Duration
	slot        chan struct{}
}

// VoiceResult is delivered by Start once the session finishes.
type VoiceResult struct {
	Text string
	Err  error
}

// VoiceMgr is the process-wide worker, installed at startup.
var VoiceMgr = NewVoiceWorker(nil, 16000, 30*time.Second)

// NewVoiceWorker wraps transcriber. A nil transcriber makes every session
// fail with speech.ErrUnavailable.
func NewVoiceWorker(transcriber speech.Transcriber, sampleRate int, timeout time.Duration) *VoiceWorker {
	return &VoiceWorker{
		transcriber: transcriber,
		sampleRate:  sampleRate,
		timeout:     timeout,
		slot:        make(chan struct{}, 1),
	}
}

// Available reports whether a speech backend is configured.
func (w *VoiceWorker) Available() bool {
	return w != nil && w.transcriber != nil
}

func (w *VoiceWorker) tryAcquire() bool {
	select {
	case w.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

func (w *VoiceWorker) acquire(ctx context.Context) error {
	select {
	case w.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *VoiceWorker) release() {
	<-w.slot
}

// Transcribe runs one session in the calling goroutine. It fails with
// ErrVoiceBusy when another session holds the worker.
func (w *VoiceWorker) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	if !w.Available() {
		return "", speech.ErrUnavailable
	}
	if !w.tryAcquire() {
		metrics.VoiceSessionsTotal.WithLabelValues("busy").Inc()
		return "", ErrVoiceBusy
	}
	defer w.release()
	return w.run(ctx, audio)
}

// Start runs one session on a background goroutine and delivers the result
// on the returned channel. Busy and unavailable errors are delivered
// without starting a goroutine.
func (w *VoiceWorker) Start(ctx context.Context, audio io.ReadCloser) <-chan VoiceResult {
	out := make(chan VoiceResult, 1)
	if !w.Available() {
		audio.Close()
		out <- VoiceResult{Err: speech.ErrUnavailable}
		return out
	}
	if !w.tryAcquire() {
		audio.Close()
		metrics.VoiceSessionsTotal.WithLabelValues("busy").Inc()
		out <- VoiceResult{Err: ErrVoiceBusy}
		return out
	}

	go func() {
		defer w.release()
		defer audio.Close()
		text, err := w.run(ctx, audio)
		out <- VoiceResult{Text: text, Err: err}
	}()
	return out
}

// TranscribeWait is Transcribe but queues behind a running session.
func (w *VoiceWorker) TranscribeWait(ctx context.Context, audio io.Reader) (string, error) {
	if !w.Available() {
		return "", speech.ErrUnavailable
	}
	if err := w.acquire(ctx); err != nil {
		return "", err
	}
	defer w.release()
	return w.run(ctx, audio)
}

func (w *VoiceWorker) run(ctx context.Context, audio io.Reader) (string, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	pcm, format, err := speech.PCMReader(audio)
	if err == nil && format != nil {
		err = format.Check(w.sampleRate)
	}
	if err != nil {
		metrics.VoiceSessionsTotal.WithLabelValues("error").Inc()
		logger.Log.Warn("Rejected voice input", zap.Error(err))
		return "", err
	}

	text, err := w.transcriber.Transcribe(ctx, pcm)
	if err != nil {
		metrics.VoiceSessionsTotal.WithLabelValues("error").Inc()
		logger.Log.Error("Voice transcription failed", zap.Duration("latency", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("transcribe: %w", err)
	}

	metrics.VoiceSessionsTotal.WithLabelValues("ok").Inc()
	logger.Log.Info("Recognized text", zap.String("text", text), zap.Duration("latency", time.Since(start)))
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// ProcessVoiceTranscript feeds a transcript into the normal turn pipeline.
func ProcessVoiceTranscript(text string, metadata map[string]interface{}) Reply {
	return ProcessTurn(TurnRequest{
		Input:    text,
		Source:   models.TurnSourceVoice,
		Metadata: metadata,
	})
}
