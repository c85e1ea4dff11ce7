package domain

import "time"

// Instance describes this running server. The identity is minted at
// startup and lives only in memory; a restart produces a fresh ID.
// Everything a client needs to trust locally derived colors is here:
// the algorithm tag and the seed this deployment defaults to.
type Instance struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	LocalURL    string    `json:"local_url,omitempty"`
	Algorithm   string    `json:"algorithm"`
	DefaultSeed int64     `json:"default_seed"`
	StartedAt   time.Time `json:"started_at"`
}
