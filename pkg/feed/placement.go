package feed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SlotKind is the view type of a display slot.
type SlotKind int

const (
	SlotContent SlotKind = iota + 1
	SlotAd
)

func (k SlotKind) String() string {
	switch k {
	case SlotContent:
		return "content"
	case SlotAd:
		return "ad"
	default:
		return "unknown"
	}
}

// Placement decides which display slots hold ad placeholders.
type Placement interface {
	// Kind classifies a zero-based slot position.
	Kind(position int) SlotKind
	// AdsBefore counts ad slots strictly before position.
	AdsBefore(position int) int
	// Reserved is the number of ad slots added to the item count.
	Reserved() int
}

// FixedPlacement puts ads at a fixed set of positions. It does not repeat as
// the list grows.
type FixedPlacement struct {
	positions []int
}

// NewFixedPlacement builds a placement from positions; negatives and
// duplicates are dropped.
func NewFixedPlacement(positions ...int) FixedPlacement {
	seen := make(map[int]struct{}, len(positions))
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		if p < 0 {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return FixedPlacement{positions: out}
}

// DefaultPlacement reserves slots 0 and 6.
func DefaultPlacement() FixedPlacement {
	return NewFixedPlacement(0, 6)
}

// ParseFixedPlacement reads a comma separated position list such as "0,6".
func ParseFixedPlacement(raw string) (FixedPlacement, error) {
	var positions []int
	for _, part := range strings.Split(raw, ",") {
		v := strings.TrimSpace(part)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return FixedPlacement{}, fmt.Errorf("ad slot %q: %w", v, err)
		}
		if n < 0 {
			return FixedPlacement{}, fmt.Errorf("ad slot %d: must not be negative", n)
		}
		positions = append(positions, n)
	}
	return NewFixedPlacement(positions...), nil
}

func (f FixedPlacement) Positions() []int {
	return append([]int(nil), f.positions...)
}

func (f FixedPlacement) Kind(position int) SlotKind {
	i := sort.SearchInts(f.positions, position)
	if i < len(f.positions) && f.positions[i] == position {
		return SlotAd
	}
	return SlotContent
}

func (f FixedPlacement) AdsBefore(position int) int {
	return sort.SearchInts(f.positions, position)
}

func (f FixedPlacement) Reserved() int {
	return len(f.positions)
}
