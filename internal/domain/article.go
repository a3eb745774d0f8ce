package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Article struct {
	ID               string
	Title            string
	Slug             string
	Content          string
	Summary          string
	AuthorID         *string
	Status           ArticleStatus
	Sport            string
	League           string
	Tags             []string
	GameID           *string
	AIConfidence     *decimal.Decimal
	FeaturedImageURL string
	ViewCount        int
	ScheduledAt      *time.Time
	PublishedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
	ArticleStatusScheduled ArticleStatus = "scheduled"
)

func (s ArticleStatus) IsValid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived, ArticleStatusScheduled:
		return true
	}
	return false
}

// ArticleFilter narrows List queries. Zero values mean "any".
type ArticleFilter struct {
	Status ArticleStatus
	Sport  string
	League string
	GameID string
	Limit  int
	Offset int
}

// ArticleStat is a single bucket of an analytics breakdown.
type ArticleStat struct {
	Key   string
	Count int
}

type TopArticle struct {
	ID        string
	Title     string
	Slug      string
	ViewCount int
}
