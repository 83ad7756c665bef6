package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidateIntentTable checks the table structure and that every intent the
// classifier can return has at least one reply.
func ValidateIntentTable(table *IntentTable) error {
	if table == nil {
		return fmt.Errorf("validation failed: intent table is nil")
	}

	validate := validator.New()
	if err := validate.Struct(table); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if len(table.Responses[table.Default]) == 0 {
		return fmt.Errorf("default intent %q has no responses", table.Default)
	}

	seen := make(map[IntentName]bool, len(table.Rules))
	for _, rule := range table.Rules {
		if seen[rule.Name] {
			return fmt.Errorf("intent %q has more than one rule", rule.Name)
		}
		seen[rule.Name] = true
		if len(table.Responses[rule.Name]) == 0 {
			return fmt.Errorf("intent %q has no responses", rule.Name)
		}
	}

	return nil
}
