package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type ArticleRequest struct {
	Title            *string          `json:"title"`
	Slug             *string          `json:"slug"`
	Content          *string          `json:"content"`
	Summary          *string          `json:"summary"`
	Status           *string          `json:"status"`
	Sport            *string          `json:"sport"`
	League           *string          `json:"league"`
	Tags             []string         `json:"tags"`
	GameID           *string          `json:"game_id"`
	AIConfidence     *decimal.Decimal `json:"ai_confidence"`
	FeaturedImageURL *string          `json:"featured_image_url"`
	ScheduledAt      *time.Time       `json:"scheduled_at"`
}

type ArticleResponse struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Slug             string           `json:"slug"`
	Content          string           `json:"content,omitempty"`
	Summary          string           `json:"summary"`
	AuthorID         *string          `json:"author_id"`
	Status           string           `json:"status"`
	Sport            string           `json:"sport"`
	League           string           `json:"league"`
	Tags             []string         `json:"tags"`
	GameID           *string          `json:"game_id"`
	AIConfidence     *decimal.Decimal `json:"ai_confidence"`
	FeaturedImageURL string           `json:"featured_image_url"`
	ViewCount        int              `json:"view_count"`
	ScheduledAt      *time.Time       `json:"scheduled_at"`
	PublishedAt      *time.Time       `json:"published_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at"`
}

type ArticleSummaryResponse struct {
	ArticleResponse
	Excerpt       string             `json:"excerpt"`
	ReadingTime   int                `json:"reading_time"`
	FormattedDate string             `json:"formatted_date"`
	RelativeDate  string             `json:"relative_date"`
	Categories    CategoriesResponse `json:"categories"`
}

type CategoriesResponse struct {
	Sports  []string `json:"sports"`
	Leagues []string `json:"leagues"`
	Other   []string `json:"other"`
}

type ArticleListResponse struct {
	Articles []ArticleSummaryResponse `json:"articles"`
	Count    int                      `json:"count"`
	Limit    int                      `json:"limit,omitempty"`
	Offset   int                      `json:"offset,omitempty"`
}

type WebhookResponse struct {
	Success   bool            `json:"success"`
	Duplicate bool            `json:"duplicate"`
	Article   ArticleResponse `json:"article"`
}

type GameRequest struct {
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	Sport      string    `json:"sport"`
	League     string    `json:"league"`
	Season     string    `json:"season"`
	Venue      string    `json:"venue"`
	GameDate   time.Time `json:"game_date"`
	Status     string    `json:"status"`
	HomeScore  *int      `json:"home_score"`
	AwayScore  *int      `json:"away_score"`
}

type ScoreRequest struct {
	Status    string `json:"status"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
}

type GameResponse struct {
	ID         string     `json:"id"`
	HomeTeamID string     `json:"home_team_id"`
	AwayTeamID string     `json:"away_team_id"`
	Sport      string     `json:"sport"`
	League     string     `json:"league"`
	LeagueName string     `json:"league_name"`
	Season     string     `json:"season"`
	Venue      string     `json:"venue"`
	GameDate   time.Time  `json:"game_date"`
	Status     string     `json:"status"`
	HomeScore  *int       `json:"home_score"`
	AwayScore  *int       `json:"away_score"`
	Score      string     `json:"score,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type TeamRequest struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Sport        string `json:"sport"`
	League       string `json:"league"`
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logo_url"`
}

type TeamResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	City         string     `json:"city"`
	Sport        string     `json:"sport"`
	League       string     `json:"league"`
	Abbreviation string     `json:"abbreviation"`
	LogoURL      string     `json:"logo_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type LeagueResponse struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	FootballLeagueID int    `json:"football_league_id,omitempty"`
}

type TeamDetailsResponse struct {
	TeamResponse
	Players []PlayerResponse `json:"players"`
}

type PlayerRequest struct {
	TeamID       string `json:"team_id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	JerseyNumber *int   `json:"jersey_number"`
	IsActive     *bool  `json:"is_active"`
}

type PlayerResponse struct {
	ID           string     `json:"id"`
	TeamID       string     `json:"team_id"`
	Name         string     `json:"name"`
	Position     string     `json:"position"`
	JerseyNumber *int       `json:"jersey_number"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type GenerateRequest struct {
	GameID       string `json:"game_id"`
	ArticleType  string `json:"article_type"`
	TargetLength int    `json:"target_length"`
	Priority     string `json:"priority"`
}

type TaskResponse struct {
	ID           string     `json:"id"`
	GameID       string     `json:"game_id"`
	ArticleType  string     `json:"article_type"`
	TargetLength int        `json:"target_length"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	ArticleID    *string    `json:"article_id"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type StatResponse struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type TopArticleResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	ViewCount int    `json:"view_count"`
}

type AnalyticsResponse struct {
	TotalArticles      int                  `json:"total_articles"`
	ArticlesByStatus   []StatResponse       `json:"articles_by_status"`
	ArticlesBySport    []StatResponse       `json:"articles_by_sport"`
	TotalViews         int                  `json:"total_views"`
	PublishedLastWeek  int                  `json:"published_last_week"`
	TopArticles        []TopArticleResponse `json:"top_articles"`
	AgentTasksByStatus []StatResponse       `json:"agent_tasks_by_status"`
}

type ConfigRequest struct {
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
}

type ConfigResponse struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
