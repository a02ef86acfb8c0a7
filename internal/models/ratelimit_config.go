package models

import "time"

// RatelimitConfig is a stored rate limit in ulule format, e.g. "5-S" for
// five requests per second. Keyed so route groups can carry distinct limits.
type RatelimitConfig struct {
	ConfigKey string    `json:"config_key"`
	Rate      string    `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
