package tasks

import (
	"strconv"

	"github.com/Makepad-fr/worktravel/internal/model"
)

// idGen hands out millisecond timestamps, bumped so they strictly increase
// even when the clock stalls or moves backwards.
type idGen struct {
	clock Clock
	last  int64
}

func (g *idGen) next() model.ID {
	n := g.clock.Now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return model.ID(strconv.FormatInt(n, 10))
}

// observe keeps loaded IDs from ever being issued again.
func (g *idGen) observe(id model.ID) {
	if n, ok := numericID(id); ok && n > g.last {
		g.last = n
	}
}

func numericID(id model.ID) (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// compareIDs orders numeric IDs by value ahead of any non-numeric ones,
// which fall back to lexicographic order. Generated IDs are increasing,
// so this reproduces insertion order after a reload.
func compareIDs(a, b model.ID) int {
	na, okA := numericID(a)
	nb, okB := numericID(b)
	switch {
	case okA && okB:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
