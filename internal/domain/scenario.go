package domain

import "time"

// Scenario is a named snapshot of engine inputs and the output they produced.
// The output is a cache: it can always be recomputed from Input.
type Scenario struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Input     BatchInput `json:"input"`
	Output    Batch      `json:"output"`
	CreatedAt time.Time  `json:"created_at"`
}
