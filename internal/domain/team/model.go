package team

import (
	"errors"
	"fmt"
	"time"

	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/player"
)

var (
	ErrInvalidRoster      = errors.New("roster does not match formation")
	ErrDuplicatePlayer    = errors.New("duplicate player in team")
	ErrBenchOverlap       = errors.New("bench player also in starting roster")
	ErrUnknownPosition    = errors.New("unknown player position")
	ErrMissingPlayerID    = errors.New("player id is required")
)

// Team is an immutable fantasy team: a validated starting roster, an
// ordered bench (index = substitution priority), and the formation the
// roster was validated against.
type Team struct {
	ID        string
	Name      string
	Formation formation.Formation
	Starters  []player.Player
	Bench     []player.Player
	UpdatedAt time.Time
}

// New validates the starting roster against the formation's slot counts
// and returns the aggregate. No partial team is ever returned: any
// violation fails construction.
func New(id, name string, f formation.Formation, starters, bench []player.Player) (Team, error) {
	seen := make(map[string]struct{}, len(starters))
	counts := make(map[player.Position]int, len(player.AllPositions))
	for _, p := range starters {
		if p.ID == "" {
			return Team{}, ErrMissingPlayerID
		}
		if _, ok := seen[p.ID]; ok {
			return Team{}, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = struct{}{}
		if _, ok := player.AllPositions[p.Position]; !ok {
			return Team{}, fmt.Errorf("%w: player=%s position=%s", ErrUnknownPosition, p.ID, p.Position)
		}
		counts[p.Position]++
	}

	for position := range player.AllPositions {
		required := f.Slots(position)
		if counts[position] != required {
			return Team{}, fmt.Errorf(
				"%w: %d %s(s) not compatible with %s",
				ErrInvalidRoster, counts[position], position, f.Name,
			)
		}
	}

	benchSeen := make(map[string]struct{}, len(bench))
	for _, p := range bench {
		if p.ID == "" {
			return Team{}, ErrMissingPlayerID
		}
		if _, ok := seen[p.ID]; ok {
			return Team{}, fmt.Errorf("%w: %s", ErrBenchOverlap, p.ID)
		}
		if _, ok := benchSeen[p.ID]; ok {
			return Team{}, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		benchSeen[p.ID] = struct{}{}
		if _, ok := player.AllPositions[p.Position]; !ok {
			return Team{}, fmt.Errorf("%w: player=%s position=%s", ErrUnknownPosition, p.ID, p.Position)
		}
	}

	return Team{
		ID:        id,
		Name:      name,
		Formation: f,
		Starters:  append([]player.Player(nil), starters...),
		Bench:     append([]player.Player(nil), bench...),
	}, nil
}

// CaptainID returns the id of the first starter flagged as captain, in
// roster order, or "" when no captain is set.
func (t Team) CaptainID() string {
	for _, p := range t.Starters {
		if p.Captain {
			return p.ID
		}
	}
	return ""
}
