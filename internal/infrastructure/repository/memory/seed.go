package memory

import (
	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/player"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
)

const SeedTeamIDScudetto = "team-scudetto-xi"

func SeedFormations() []formation.Formation {
	return []formation.Formation{
		{Name: "3-4-3", Goalkeepers: 1, Defenders: 3, Midfielders: 4, Forwards: 3},
		{Name: "3-5-2", Goalkeepers: 1, Defenders: 3, Midfielders: 5, Forwards: 2},
		{Name: "4-3-3", Goalkeepers: 1, Defenders: 4, Midfielders: 3, Forwards: 3},
		{Name: "4-4-2", Goalkeepers: 1, Defenders: 4, Midfielders: 4, Forwards: 2},
		{Name: "4-5-1", Goalkeepers: 1, Defenders: 4, Midfielders: 5, Forwards: 1},
		{Name: "5-3-2", Goalkeepers: 1, Defenders: 5, Midfielders: 3, Forwards: 2},
		{Name: "5-4-1", Goalkeepers: 1, Defenders: 5, Midfielders: 4, Forwards: 1},
	}
}

func SeedTeams() []team.Team {
	f442 := formation.Formation{Name: "4-4-2", Goalkeepers: 1, Defenders: 4, Midfielders: 4, Forwards: 2}

	return []team.Team{
		{
			ID:        SeedTeamIDScudetto,
			Name:      "Scudetto XI",
			Formation: f442,
			Starters: []player.Player{
				{ID: "ita-gk-01", Name: "Gianluigi Donnarumma", Position: player.PositionGoalkeeper},
				{ID: "ita-def-01", Name: "Alessandro Bastoni", Position: player.PositionDefender},
				{ID: "ita-def-02", Name: "Giovanni Di Lorenzo", Position: player.PositionDefender},
				{ID: "ita-def-03", Name: "Gleison Bremer", Position: player.PositionDefender},
				{ID: "ita-def-04", Name: "Federico Dimarco", Position: player.PositionDefender},
				{ID: "ita-mid-01", Name: "Nicolo Barella", Position: player.PositionMidfielder, Captain: true},
				{ID: "ita-mid-02", Name: "Hakan Calhanoglu", Position: player.PositionMidfielder},
				{ID: "ita-mid-03", Name: "Teun Koopmeiners", Position: player.PositionMidfielder},
				{ID: "ita-mid-04", Name: "Khvicha Kvaratskhelia", Position: player.PositionMidfielder},
				{ID: "ita-fwd-01", Name: "Lautaro Martinez", Position: player.PositionForward},
				{ID: "ita-fwd-02", Name: "Victor Osimhen", Position: player.PositionForward},
			},
			Bench: []player.Player{
				{ID: "ita-gk-02", Name: "Mike Maignan", Position: player.PositionGoalkeeper},
				{ID: "ita-def-05", Name: "Theo Hernandez", Position: player.PositionDefender},
				{ID: "ita-mid-05", Name: "Davide Frattesi", Position: player.PositionMidfielder},
				{ID: "ita-fwd-03", Name: "Ademola Lookman", Position: player.PositionForward},
			},
		},
	}
}

func SeedGameweekStats() map[int][]playerstats.FixtureStat {
	return map[int][]playerstats.FixtureStat{
		1: {
			{PlayerID: "ita-gk-01", Name: "Gianluigi Donnarumma", Position: player.PositionGoalkeeper, Points: 6.5},
			{PlayerID: "ita-def-01", Name: "Alessandro Bastoni", Position: player.PositionDefender, Points: 6},
			{PlayerID: "ita-def-02", Name: "Giovanni Di Lorenzo", Position: player.PositionDefender, Points: 5.5},
			{PlayerID: "ita-def-03", Name: "Gleison Bremer", Position: player.PositionDefender, Points: 7},
			{PlayerID: "ita-mid-01", Name: "Nicolo Barella", Position: player.PositionMidfielder, Points: 7.5},
			{PlayerID: "ita-mid-02", Name: "Hakan Calhanoglu", Position: player.PositionMidfielder, Points: 8},
			{PlayerID: "ita-mid-03", Name: "Teun Koopmeiners", Position: player.PositionMidfielder, Points: 6},
			{PlayerID: "ita-mid-04", Name: "Khvicha Kvaratskhelia", Position: player.PositionMidfielder, Points: 7},
			{PlayerID: "ita-fwd-01", Name: "Lautaro Martinez", Position: player.PositionForward, Points: 9},
			{PlayerID: "ita-fwd-02", Name: "Victor Osimhen", Position: player.PositionForward, Points: 6.5},
			{PlayerID: "ita-def-05", Name: "Theo Hernandez", Position: player.PositionDefender, Points: 6},
			{PlayerID: "ita-fwd-03", Name: "Ademola Lookman", Position: player.PositionForward, Points: 7.5},
		},
	}
}
