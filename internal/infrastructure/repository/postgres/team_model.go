package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
)

type teamTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	Name          string    `db:"name"`
	FormationName string    `db:"formation_name"`
	Starters      []byte    `db:"starters"`
	Bench         []byte    `db:"bench"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// rosterEntry is the JSONB shape of one player inside the starters and
// bench columns.
type rosterEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Captain  bool    `json:"captain,omitempty"`
	Points   float64 `json:"points,omitempty"`
}

func rosterToJSON(players []player.Player) ([]byte, error) {
	entries := make([]rosterEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, rosterEntry{
			ID:       p.ID,
			Name:     p.Name,
			Position: string(p.Position),
			Captain:  p.Captain,
			Points:   p.Points,
		})
	}
	return sonic.Marshal(entries)
}

func rosterFromJSON(raw []byte) ([]player.Player, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var entries []rosterEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode roster column: %w", err)
	}

	out := make([]player.Player, 0, len(entries))
	for _, e := range entries {
		out = append(out, player.Player{
			ID:       e.ID,
			Name:     e.Name,
			Position: player.Position(e.Position),
			Captain:  e.Captain,
			Points:   e.Points,
		})
	}
	return out, nil
}

func teamFromRow(row teamTableModel, catalog map[string]formation.Formation) (team.Team, error) {
	starters, err := rosterFromJSON(row.Starters)
	if err != nil {
		return team.Team{}, err
	}
	bench, err := rosterFromJSON(row.Bench)
	if err != nil {
		return team.Team{}, err
	}

	f, ok := catalog[row.FormationName]
	if !ok {
		// Stored teams were validated on write; an unknown name here
		// means the catalog shrank underneath persisted data.
		return team.Team{}, fmt.Errorf("%w: %s", formation.ErrUnsupportedFormation, row.FormationName)
	}

	return team.Team{
		ID:        row.PublicID,
		Name:      row.Name,
		Formation: f,
		Starters:  starters,
		Bench:     bench,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
