package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Mode partitions tasks into two independently displayed lists.
type Mode int

const (
	Work Mode = iota
	Travel
)

func (m Mode) String() string {
	switch m {
	case Work:
		return "work"
	case Travel:
		return "travel"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Label is the tab title.
func (m Mode) Label() string {
	if m == Travel {
		return "Travel"
	}
	return "Work"
}

// Valid reports whether m is one of Work or Travel.
func (m Mode) Valid() bool { return m == Work || m == Travel }

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Work {
		return Travel
	}
	return Work
}

// ParseMode accepts "work" or "travel" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "w":
		return Work, nil
	case "travel", "t":
		return Travel, nil
	}
	return Work, fmt.Errorf("unknown mode %q (want work or travel)", s)
}

// Modes are stored as a "working" boolean: true is Work, false is Travel.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m == Work)
}

// A JSON null leaves m unchanged.
func (m *Mode) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return nil
	}
	var working bool
	if err := json.Unmarshal(b, &working); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	*m = Travel
	if working {
		*m = Work
	}
	return nil
}

// ID identifies a task for the lifetime of an install.
type ID string

// Task is the domain model for a single to-do entry.
type Task struct {
	Text     string `json:"text"`
	Mode     Mode   `json:"working"`
	Complete bool   `json:"complete"`
}

// Entry pairs a task with its ID for rendering.
type Entry struct {
	ID   ID
	Task Task
}
