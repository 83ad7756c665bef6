// Package console is an interactive terminal front end for the chatbot.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"customer-chatbot/internal/models"
	"customer-chatbot/internal/services"
	"customer-chatbot/internal/speech"
)

const (
	header = "Customer Service Chatbot. Type a message, /voice <file>, /history, or /quit to exit."
	prompt = "You: "
)

// Console reads lines from in and renders the conversation to out. All
// rendering and turn processing happens on the goroutine calling Run.
type Console struct {
	in     io.Reader
	out    io.Writer
	worker *services.VoiceWorker
}

func New(in io.Reader, out io.Writer, worker *services.VoiceWorker) *Console {
	return &Console{in: in, out: out, worker: worker}
}

type voiceSession struct {
	path    string
	results <-chan services.VoiceResult
}

// Run loops until the user quits, input ends or ctx is cancelled. A voice
// session still running when input ends is waited for.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(c.out, header)
	fmt.Fprint(c.out, prompt)

	var voice *voiceSession
	for {
		var results <-chan services.VoiceResult
		if voice != nil {
			results = voice.results
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil

		case res := <-results:
			path := voice.path
			voice = nil
			fmt.Fprintln(c.out)
			c.voiceResult(path, res)
			if lines == nil {
				return drainErr(readErr)
			}
			fmt.Fprint(c.out, prompt)

		case line, ok := <-lines:
			if !ok {
				lines = nil
				if voice == nil {
					fmt.Fprintln(c.out)
					return drainErr(readErr)
				}
				continue
			}
			if quit := c.handleLine(ctx, strings.TrimSpace(line), &voice); quit {
				return nil
			}
			fmt.Fprint(c.out, prompt)
		}
	}
}

func drainErr(ch <-chan error) error {
	select {
	case err := <-ch:
		return err
	default:
		return nil
	}
}

func (c *Console) handleLine(ctx context.Context, line string, voice **voiceSession) bool {
	lower := strings.ToLower(line)
	switch {
	case lower == "/quit" || lower == "bye":
		c.bot("Goodbye!")
		return true

	case lower == "/history":
		c.printHistory()

	case lower == "/voice" || strings.HasPrefix(lower, "/voice "):
		path := strings.TrimSpace(line[len("/voice"):])
		if path == "" {
			c.bot("Usage: /voice <path to 16 kHz mono WAV or PCM file>")
			return false
		}
		if *voice != nil {
			c.bot("Voice input is already in progress.")
			return false
		}
		f, err := os.Open(path)
		if err != nil {
			c.bot("Could not open audio file: " + err.Error())
			return false
		}
		fmt.Fprintln(c.out, "(listening to "+filepath.Base(path)+"...)")
		*voice = &voiceSession{path: path, results: c.worker.Start(ctx, f)}

	default:
		reply := services.ProcessTurn(services.TurnRequest{
			Input:    line,
			Source:   models.TurnSourceText,
			Metadata: map[string]interface{}{"origin": "console"},
		})
		c.bot(reply.Response)
	}
	return false
}

func (c *Console) voiceResult(path string, res services.VoiceResult) {
	if res.Err != nil {
		switch {
		case errors.Is(res.Err, services.ErrNoSpeech):
			c.bot("Sorry, I didn't catch that.")
		case errors.Is(res.Err, speech.ErrUnavailable):
			c.bot("Voice input is not configured.")
		case errors.Is(res.Err, services.ErrVoiceBusy):
			c.bot("Voice input is already in progress.")
		default:
			c.bot("Voice input failed: " + res.Err.Error())
		}
		return
	}

	fmt.Fprintln(c.out, "You (voice): "+res.Text)
	reply := services.ProcessVoiceTranscript(res.Text, map[string]interface{}{
		"origin": "console",
		"file":   filepath.Base(path),
	})
	c.bot(reply.Response)
}

func (c *Console) printHistory() {
	const pageSize = 100
	printed := 0
	for page := 1; ; page++ {
		turns, total, err := services.ListHistory(page, pageSize)
		if err != nil {
			c.bot("Could not load history: " + err.Error())
			return
		}
		if total == 0 {
			c.bot("No history yet.")
			return
		}
		for _, t := range turns {
			fmt.Fprintf(c.out, "[%d] You: %s\n", t.ID, t.UserInput)
			c.bot(t.BotResponse)
		}
		printed += len(turns)
		if len(turns) < pageSize || int64(printed) >= total {
			return
		}
	}
}

// bot prints a reply bubble, indenting continuation lines under the label.
func (c *Console) bot(text string) {
	fmt.Fprintln(c.out, "Bot: "+strings.ReplaceAll(text, "\n", "\n     "))
}
