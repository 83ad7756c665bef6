package services

import (
	"testing"

	"customer-chatbot/internal/database"
	"customer-chatbot/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Product{}, &models.ChatTurn{})
	err = db.AutoMigrate(&models.Product{}, &models.ChatTurn{})
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

// seedDefaults installs the built-in intents and catalog.
func seedDefaults(t *testing.T) {
	t.Helper()
	if _, err := LoadIntents(""); err != nil {
		t.Fatalf("load intents: %v", err)
	}
	if err := SeedProducts(DefaultProducts()); err != nil {
		t.Fatalf("seed products: %v", err)
	}
}

// fixRandom makes RandomResponse pick index i for the duration of the test.
func fixRandom(t *testing.T, i int) {
	t.Helper()
	orig := randIntn
	randIntn = func(n int) int {
		if i >= n {
			return n - 1
		}
		return i
	}
	t.Cleanup(func() { randIntn = orig })
}
