package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"customer-chatbot/internal/database"
	"customer-chatbot/internal/models"
	"customer-chatbot/internal/services"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTranscriber struct{ text string }

func (f fakeTranscriber) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	io.Copy(io.Discard, audio)
	return f.text, nil
}

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Product{}, &models.ChatTurn{})
	if err := database.Migrate(db); err != nil {
		panic("failed to migrate database")
	}
	database.DB = db
	database.RedisClient = nil

	if _, err := services.LoadIntents(""); err != nil {
		panic(err)
	}
	if err := services.SeedProducts(services.DefaultProducts()); err != nil {
		panic(err)
	}
}

func run(t *testing.T, worker *services.VoiceWorker, input string) string {
	t.Helper()
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := New(strings.NewReader(input), &out, worker).Run(ctx)
	assert.NoError(t, err)
	return out.String()
}

func TestConsoleConversation(t *testing.T) {
	setupTestDB()

	out := run(t, services.NewVoiceWorker(nil, 16000, time.Second),
		"Where is my order?\nWhat's the price of the laptop?\n/history\nbye\nnever read\n")

	assert.Contains(t, out, "Bot: Please provide your order number to track your order.")
	assert.Contains(t, out, "Bot: Product: laptop\n     Description: A lightweight laptop with 16GB RAM and 512GB SSD.\n     Price: $1199.99")
	assert.Contains(t, out, "[1] You: Where is my order?")
	assert.Contains(t, out, "Bot: Goodbye!")

	var count int64
	database.DB.Model(&models.ChatTurn{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestConsoleEmptyHistoryAndEOF(t *testing.T) {
	setupTestDB()

	out := run(t, nil, "/history\n")
	assert.Contains(t, out, "Bot: No history yet.")
	assert.True(t, strings.HasPrefix(out, header))
}

func TestConsoleVoice(t *testing.T) {
	setupTestDB()

	path := filepath.Join(t.TempDir(), "clip.pcm")
	assert.NoError(t, os.WriteFile(path, []byte{0, 1, 2, 3}, 0644))

	worker := services.NewVoiceWorker(fakeTranscriber{text: "i want to return my phone"}, 16000, time.Second)
	out := run(t, worker, "/voice "+path+"\n")

	assert.Contains(t, out, "(listening to clip.pcm...)")
	assert.Contains(t, out, "You (voice): i want to return my phone")
	assert.Contains(t, out, "Bot: I can assist you with returns. What item are you looking to return?")

	var turn models.ChatTurn
	assert.NoError(t, database.DB.First(&turn).Error)
	assert.Equal(t, models.TurnSourceVoice, turn.Source)
	assert.Equal(t, models.IntentReturns, turn.Intent)
}

func TestConsoleVoiceErrors(t *testing.T) {
	setupTestDB()

	out := run(t, services.NewVoiceWorker(nil, 16000, time.Second),
		"/voice\n/voice /does/not/exist.wav\n")
	assert.Contains(t, out, "Bot: Usage: /voice")
	assert.Contains(t, out, "Bot: Could not open audio file")

	path := filepath.Join(t.TempDir(), "clip.pcm")
	assert.NoError(t, os.WriteFile(path, []byte{0, 1}, 0644))
	out = run(t, services.NewVoiceWorker(nil, 16000, time.Second), "/voice "+path+"\n")
	assert.Contains(t, out, "Bot: Voice input is not configured.")
}
