package accumulator

import (
	"errors"
	"strings"
)

// Type identifies one of the two weekly accumulators.
type Type string

const (
	TypeMaxAcca       Type = "max-acca"
	TypeFirstPickAcca Type = "1st-pick-acca"
)

// Types is the generation order.
var Types = []Type{TypeMaxAcca, TypeFirstPickAcca}

var (
	ErrUnknownType = errors.New("unknown accumulator type")
	ErrNotFound    = errors.New("accumulator not found")
)

// ParseType accepts current and legacy type names.
func ParseType(raw string) (Type, error) {
	switch strings.TrimSpace(raw) {
	case string(TypeMaxAcca), "all-picks", "12-team":
		return TypeMaxAcca, nil
	case string(TypeFirstPickAcca), "6-team":
		return TypeFirstPickAcca, nil
	default:
		return "", ErrUnknownType
	}
}

// MigrateType maps legacy persisted names onto current ones and leaves
// anything else untouched.
func MigrateType(t Type) Type {
	out, err := ParseType(string(t))
	if err != nil {
		return t
	}
	return out
}

// Stakes are the fixed stakes per accumulator type.
type Stakes struct {
	MaxAcca       float64
	FirstPickAcca float64
}

func DefaultStakes() Stakes {
	return Stakes{MaxAcca: 1, FirstPickAcca: 5}
}

func (s Stakes) For(t Type) float64 {
	switch t {
	case TypeMaxAcca:
		return s.MaxAcca
	case TypeFirstPickAcca:
		return s.FirstPickAcca
	default:
		return 0
	}
}

// Bet is one weekly accumulator. IsWon is nil while pending.
type Bet struct {
	Week              int      `json:"week" validate:"gte=1"`
	Type              Type     `json:"type" validate:"required,oneof=max-acca 1st-pick-acca"`
	Stake             float64  `json:"stake" validate:"gte=0"`
	Teams             []string `json:"teams"`
	PotentialWinnings float64  `json:"potentialWinnings"`
	IsWon             *bool    `json:"isWon"`
	ActualWinnings    float64  `json:"actualWinnings"`
}

// Status is a readable form of IsWon.
func (b Bet) Status() string {
	switch {
	case b.IsWon == nil:
		return "PENDING"
	case *b.IsWon:
		return "WON"
	default:
		return "LOST"
	}
}
