package formation

import (
	"context"
	"errors"

	"github.com/antimaLinux/kickscraper/internal/domain/player"
)

var ErrUnsupportedFormation = errors.New("unsupported formation")

// Formation is the required count of players per position category for
// a valid starting eleven.
type Formation struct {
	Name        string
	Goalkeepers int
	Defenders   int
	Midfielders int
	Forwards    int
}

func (f Formation) Slots(position player.Position) int {
	switch position {
	case player.PositionGoalkeeper:
		return f.Goalkeepers
	case player.PositionDefender:
		return f.Defenders
	case player.PositionMidfielder:
		return f.Midfielders
	case player.PositionForward:
		return f.Forwards
	default:
		return 0
	}
}

func (f Formation) Total() int {
	return f.Goalkeepers + f.Defenders + f.Midfielders + f.Forwards
}

// Catalog resolves formation identifiers like "4-4-2" into requirement
// vectors.
type Catalog interface {
	Get(ctx context.Context, name string) (Formation, bool, error)
	List(ctx context.Context) ([]Formation, error)
}
