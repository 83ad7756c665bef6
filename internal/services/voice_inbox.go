package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"customer-chatbot/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	inboxDoneSuffix   = ".done"
	inboxFailedSuffix = ".failed"
)

// VoiceInbox turns audio files moved into a directory into voice turns.
// Files must appear atomically (rename into the directory); each one is
// renamed with a .done or .failed suffix once handled.
type VoiceInbox struct {
	dir        string
	worker     *VoiceWorker
	extensions []string
	watcher    *fsnotify.Watcher

	// processed receives each handled path; used by tests.
	processed chan string
}

func NewVoiceInbox(dir string, worker *VoiceWorker) (*VoiceInbox, error) {
	if dir == "" {
		return nil, errors.New("voice inbox directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &VoiceInbox{
		dir:        dir,
		worker:     worker,
		extensions: []string{".wav", ".pcm", ".raw"},
		watcher:    w,
	}, nil
}

// Run handles files already present, then watches for new ones until ctx
// is done.
func (in *VoiceInbox) Run(ctx context.Context) error {
	defer in.watcher.Close()

	existing, err := in.pending()
	if err != nil {
		return err
	}
	for _, path := range existing {
		in.handle(ctx, path)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-in.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != fsnotify.Create || !in.isWatchedExtension(event.Name) {
				continue
			}
			in.handle(ctx, event.Name)
		case err, ok := <-in.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Warn("Voice inbox watcher error", zap.Error(err))
		}
	}
}

func (in *VoiceInbox) pending() ([]string, error) {
	entries, err := os.ReadDir(in.dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && in.isWatchedExtension(e.Name()) {
			paths = append(paths, filepath.Join(in.dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (in *VoiceInbox) handle(ctx context.Context, path string) {
	// A file that arrived before Run started is seen both in the directory
	// listing and as a create event; the second sighting finds it renamed.
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return
	}

	suffix := inboxDoneSuffix
	if err := in.process(ctx, path); err != nil {
		suffix = inboxFailedSuffix
		logger.Log.Error("Voice inbox file failed", zap.String("path", path), zap.Error(err))
	}
	if err := os.Rename(path, path+suffix); err != nil {
		logger.Log.Warn("Voice inbox rename failed", zap.String("path", path), zap.Error(err))
	}
	if in.processed != nil {
		in.processed <- path
	}
}

func (in *VoiceInbox) process(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	text, err := in.worker.TranscribeWait(ctx, f)
	if err != nil {
		return err
	}
	reply := ProcessVoiceTranscript(text, map[string]interface{}{
		"origin": "inbox",
		"file":   filepath.Base(path),
	})
	logger.Log.Info("Voice inbox turn",
		zap.String("file", filepath.Base(path)),
		zap.String("intent", string(reply.Intent)),
		zap.Uint("turn_id", reply.TurnID))
	return nil
}

func (in *VoiceInbox) isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range in.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
