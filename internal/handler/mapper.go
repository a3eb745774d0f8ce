package handler

import (
	"time"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

func domainArticleToHTTP(article *domain.Article) ArticleResponse {
	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:               article.ID,
		Title:            article.Title,
		Slug:             article.Slug,
		Content:          article.Content,
		Summary:          article.Summary,
		AuthorID:         article.AuthorID,
		Status:           string(article.Status),
		Sport:            article.Sport,
		League:           article.League,
		Tags:             tags,
		GameID:           article.GameID,
		AIConfidence:     article.AIConfidence,
		FeaturedImageURL: article.FeaturedImageURL,
		ViewCount:        article.ViewCount,
		ScheduledAt:      article.ScheduledAt,
		PublishedAt:      article.PublishedAt,
		CreatedAt:        article.CreatedAt,
		UpdatedAt:        article.UpdatedAt,
	}
}

// processedArticleToHTTP builds the list form. The full body is dropped
// unless withContent is set.
func processedArticleToHTTP(p content.ProcessedArticle, now time.Time, withContent bool) ArticleSummaryResponse {
	resp := ArticleSummaryResponse{
		ArticleResponse: domainArticleToHTTP(&p.Article),
		Excerpt:         p.Excerpt,
		ReadingTime:     p.ReadingTime,
		FormattedDate:   p.FormattedDate,
		Categories: CategoriesResponse{
			Sports:  emptyIfNil(p.Categories.Sports),
			Leagues: emptyIfNil(p.Categories.Leagues),
			Other:   emptyIfNil(p.Categories.Other),
		},
	}
	if !withContent {
		resp.Content = ""
	}

	date := p.CreatedAt
	if p.PublishedAt != nil {
		date = *p.PublishedAt
	}
	if !date.IsZero() {
		resp.RelativeDate = content.FormatRelativeTime(date, now)
	}
	return resp
}

func processedArticlesToHTTP(articles []content.ProcessedArticle, now time.Time) []ArticleSummaryResponse {
	out := make([]ArticleSummaryResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, processedArticleToHTTP(a, now, false))
	}
	return out
}

func httpArticleToDomain(req ArticleRequest) *domain.Article {
	article := &domain.Article{
		Tags:         req.Tags,
		GameID:       req.GameID,
		AIConfidence: req.AIConfidence,
		ScheduledAt:  req.ScheduledAt,
	}
	article.Title = deref(req.Title)
	article.Slug = deref(req.Slug)
	article.Content = deref(req.Content)
	article.Summary = deref(req.Summary)
	article.Status = domain.ArticleStatus(deref(req.Status))
	article.Sport = deref(req.Sport)
	article.League = deref(req.League)
	article.FeaturedImageURL = deref(req.FeaturedImageURL)
	return article
}

func httpArticleToPatch(req ArticleRequest) service.ArticlePatch {
	patch := service.ArticlePatch{
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		Summary:          req.Summary,
		Sport:            req.Sport,
		League:           req.League,
		Tags:             req.Tags,
		GameID:           req.GameID,
		AIConfidence:     req.AIConfidence,
		FeaturedImageURL: req.FeaturedImageURL,
		ScheduledAt:      req.ScheduledAt,
	}
	if req.Status != nil {
		status := domain.ArticleStatus(*req.Status)
		patch.Status = &status
	}
	return patch
}

func domainGameToHTTP(game *domain.Game) GameResponse {
	resp := GameResponse{
		ID:         game.ID,
		HomeTeamID: game.HomeTeamID,
		AwayTeamID: game.AwayTeamID,
		Sport:      game.Sport,
		League:     game.League,
		LeagueName: content.LeagueDisplayName(game.League),
		Season:     game.Season,
		Venue:      game.Venue,
		GameDate:   game.GameDate,
		Status:     string(game.Status),
		HomeScore:  game.HomeScore,
		AwayScore:  game.AwayScore,
		CreatedAt:  game.CreatedAt,
		UpdatedAt:  game.UpdatedAt,
	}
	if game.HomeScore != nil && game.AwayScore != nil {
		resp.Score = content.FormatScore(*game.HomeScore, *game.AwayScore)
	}
	return resp
}

func httpGameToDomain(req GameRequest) *domain.Game {
	return &domain.Game{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		Sport:      req.Sport,
		League:     req.League,
		Season:     req.Season,
		Venue:      req.Venue,
		GameDate:   req.GameDate,
		Status:     domain.GameStatus(req.Status),
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
	}
}

func domainTeamToHTTP(team *domain.Team) TeamResponse {
	return TeamResponse{
		ID:           team.ID,
		Name:         team.Name,
		City:         team.City,
		Sport:        team.Sport,
		League:       team.League,
		Abbreviation: team.Abbreviation,
		LogoURL:      team.LogoURL,
		CreatedAt:    team.CreatedAt,
		UpdatedAt:    team.UpdatedAt,
	}
}

func leaguesToHTTP(leagues []content.League) []LeagueResponse {
	out := make([]LeagueResponse, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, LeagueResponse{Key: l.Key, Name: l.Name, FootballLeagueID: l.FootballID})
	}
	return out
}

func httpTeamToDomain(req TeamRequest) *domain.Team {
	return &domain.Team{
		Name:         req.Name,
		City:         req.City,
		Sport:        req.Sport,
		League:       req.League,
		Abbreviation: req.Abbreviation,
		LogoURL:      req.LogoURL,
	}
}

func domainPlayerToHTTP(player *domain.Player) PlayerResponse {
	return PlayerResponse{
		ID:           player.ID,
		TeamID:       player.TeamID,
		Name:         player.Name,
		Position:     player.Position,
		JerseyNumber: player.JerseyNumber,
		IsActive:     player.IsActive,
		CreatedAt:    player.CreatedAt,
		UpdatedAt:    player.UpdatedAt,
	}
}

func domainPlayersToHTTP(players []*domain.Player) []PlayerResponse {
	out := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, domainPlayerToHTTP(p))
	}
	return out
}

func httpPlayerToDomain(req PlayerRequest) *domain.Player {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &domain.Player{
		TeamID:       req.TeamID,
		Name:         req.Name,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
		IsActive:     active,
	}
}

func domainUserToHTTP(user *domain.UserProfile) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
}

func domainTaskToHTTP(task *domain.AgentTask) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		GameID:       task.GameID,
		ArticleType:  string(task.ArticleType),
		TargetLength: task.TargetLength,
		Priority:     string(task.Priority),
		Status:       string(task.Status),
		ArticleID:    task.ArticleID,
		Error:        task.Error,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

func domainStatsToHTTP(stats []domain.ArticleStat) []StatResponse {
	out := make([]StatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, StatResponse{Key: s.Key, Count: s.Count})
	}
	return out
}

func domainSummaryToHTTP(summary *domain.AnalyticsSummary) AnalyticsResponse {
	top := make([]TopArticleResponse, 0, len(summary.TopArticles))
	for _, a := range summary.TopArticles {
		top = append(top, TopArticleResponse{ID: a.ID, Title: a.Title, Slug: a.Slug, ViewCount: a.ViewCount})
	}
	return AnalyticsResponse{
		TotalArticles:      summary.TotalArticles,
		ArticlesByStatus:   domainStatsToHTTP(summary.ArticlesByStatus),
		ArticlesBySport:    domainStatsToHTTP(summary.ArticlesBySport),
		TotalViews:         summary.TotalViews,
		PublishedLastWeek:  summary.PublishedLastWeek,
		TopArticles:        top,
		AgentTasksByStatus: domainStatsToHTTP(summary.AgentTasksByStatus),
	}
}

func domainConfigToHTTP(cfg *domain.SystemConfig) ConfigResponse {
	return ConfigResponse{
		Key:         cfg.Key,
		Value:       cfg.Value,
		Description: cfg.Description,
		UpdatedAt:   cfg.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
