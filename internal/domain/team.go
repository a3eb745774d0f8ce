package domain

import "time"

type Team struct {
	ID           string
	Name         string
	City         string
	Sport        string
	League       string
	Abbreviation string
	LogoURL      string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type Player struct {
	ID           string
	TeamID       string
	Name         string
	Position     string
	JerseyNumber *int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
