package domain

import "time"

type Game struct {
	ID         string
	HomeTeamID string
	AwayTeamID string
	Sport      string
	League     string
	Season     string
	Venue      string
	GameDate   time.Time
	Status     GameStatus
	HomeScore  *int
	AwayScore  *int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusPregame    GameStatus = "pregame"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusHalftime   GameStatus = "halftime"
	GameStatusOvertime   GameStatus = "overtime"
	GameStatusFinal      GameStatus = "final"
	GameStatusPostponed  GameStatus = "postponed"
	GameStatusCancelled  GameStatus = "cancelled"
)

func (s GameStatus) IsValid() bool {
	switch s {
	case GameStatusScheduled, GameStatusPregame, GameStatusInProgress, GameStatusHalftime,
		GameStatusOvertime, GameStatusFinal, GameStatusPostponed, GameStatusCancelled:
		return true
	}
	return false
}

type GameFilter struct {
	Sport  string
	League string
	Status GameStatus
	TeamID string
	Limit  int
	Offset int
}
