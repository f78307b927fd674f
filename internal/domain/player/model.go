package player

import "fmt"

// Position represents the football position categories used by the
// formation and substitution rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition resolves common wire spellings of a position category.
func ParsePosition(raw string) (Position, error) {
	switch raw {
	case "GK", "gk", "goalkeeper":
		return PositionGoalkeeper, nil
	case "DEF", "def", "defender":
		return PositionDefender, nil
	case "MID", "mid", "midfielder":
		return PositionMidfielder, nil
	case "FWD", "fwd", "forward", "striker":
		return PositionForward, nil
	default:
		return "", fmt.Errorf("invalid player position: %q", raw)
	}
}

// Player is a single roster, bench, or fixture-statistics entry.
// Points carries the fixture score when the player comes from a stat
// sheet; 0.0 means the player did not play or did not score.
type Player struct {
	ID       string
	Name     string
	Position Position
	Points   float64
	Captain  bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
