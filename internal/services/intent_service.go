package services

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"

	"customer-chatbot/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed intents.yaml
var defaultIntentsYAML []byte

var (
	intentMu     sync.RWMutex
	activeIntent *models.IntentTable

	// randIntn picks a reply index; replaced in tests.
	randIntn = rand.Intn
)

// ParseIntents decodes and validates an intent table from YAML.
func ParseIntents(data []byte) (*models.IntentTable, error) {
	var table models.IntentTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse intents: %w", err)
	}
	for i := range table.Rules {
		for j, kw := range table.Rules[i].Keywords {
			table.Rules[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	if err := models.ValidateIntentTable(&table); err != nil {
		return nil, fmt.Errorf("invalid intents: %w", err)
	}
	return &table, nil
}

// LoadIntents installs the intent table read from path, or the built-in
// table when path is empty. It is called once at startup.
func LoadIntents(path string) (*models.IntentTable, error) {
	data := defaultIntentsYAML
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read intents: %w", err)
		}
		data = raw
	}

	table, err := ParseIntents(data)
	if err != nil {
		return nil, err
	}

	intentMu.Lock()
	activeIntent = table
	intentMu.Unlock()
	return table, nil
}

// CurrentIntents returns the installed intent table, installing the built-in
// one on first use.
func CurrentIntents() *models.IntentTable {
	intentMu.RLock()
	table := activeIntent
	intentMu.RUnlock()
	if table != nil {
		return table
	}

	table, err := LoadIntents("")
	if err != nil {
		// The embedded table is validated by tests.
		panic(err)
	}
	return table
}

// ClassifyIntent returns the first intent whose keyword occurs in the
// lowercased input, or the default intent.
func ClassifyIntent(input string) models.IntentName {
	table := CurrentIntents()
	lower := strings.ToLower(input)
	for _, rule := range table.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Name
			}
		}
	}
	return table.Default
}

// RandomResponse picks one of the intent's replies uniformly at random.
func RandomResponse(intent models.IntentName) string {
	table := CurrentIntents()
	responses := table.Responses[intent]
	if len(responses) == 0 {
		responses = table.Responses[table.Default]
	}
	return responses[randIntn(len(responses))]
}
