package engine

import "github.com/google/uuid"

// generateID creates a random ID for scenarios.
func generateID() string {
	return uuid.NewString()
}
