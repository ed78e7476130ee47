package userapi

import (
	"fmt"
	"slices"
	"time"
)

// User is the payload served for one id.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Directory holds the deterministic user set and the per-id behavior.
type Directory struct {
	size    int
	latency map[int]time.Duration
	fail    []int
}

// NewDirectory builds the directory described by cfg.
func NewDirectory(cfg Config) *Directory {
	d := &Directory{
		size:    cfg.Users,
		latency: make(map[int]time.Duration, len(cfg.LatencyMS)),
		fail:    slices.Clone(cfg.FailIDs),
	}
	for id, ms := range cfg.LatencyMS {
		d.latency[id] = time.Duration(ms) * time.Millisecond
	}
	return d
}

// Lookup returns user id and whether it exists.
func (d *Directory) Lookup(id int) (User, bool) {
	if id < 1 || id > d.size {
		return User{}, false
	}
	return User{
		ID:       id,
		Name:     fmt.Sprintf("User %d", id),
		Username: fmt.Sprintf("user%d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
	}, true
}

// Latency is how long the answer for id is held back.
func (d *Directory) Latency(id int) time.Duration {
	return d.latency[id]
}

// Fails reports whether id is configured to fail.
func (d *Directory) Fails(id int) bool {
	return slices.Contains(d.fail, id)
}

// Size is the number of users.
func (d *Directory) Size() int {
	return d.size
}
