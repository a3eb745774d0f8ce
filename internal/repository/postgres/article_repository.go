package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

const articleColumns = `
	id, title, slug, content, summary, author_id, status, sport, league, tags,
	game_id, ai_confidence, featured_image_url, view_count, scheduled_at,
	published_at, created_at, updated_at`

const defaultListLimit = 20

type articleRepository struct {
	executor DBExecutor
}

func NewArticleRepository(db *sql.DB) *articleRepository {
	return &articleRepository{executor: db}
}

func NewArticleRepositoryWithTx(tx *sql.Tx) *articleRepository {
	return &articleRepository{executor: tx}
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if err := checkArticleRefs(article); err != nil {
		return err
	}

	tags, err := encodeTags(article.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO articles (
			id, title, slug, content, summary, author_id, status, sport, league, tags,
			game_id, ai_confidence, featured_image_url, scheduled_at, published_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at
	`

	err = r.executor.QueryRowContext(
		ctx,
		query,
		article.ID,
		article.Title,
		article.Slug,
		article.Content,
		article.Summary,
		nullable(article.AuthorID),
		string(article.Status),
		article.Sport,
		article.League,
		tags,
		nullable(article.GameID),
		nullDecimal(article.AIConfidence),
		article.FeaturedImageURL,
		nullable(article.ScheduledAt),
		nullable(article.PublishedAt),
		now(),
	).Scan(&article.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugExists
		}
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("insert article: %w", err)
	}

	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError("article with id " + id)
	}

	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("article with id " + id)
		}
		return nil, err
	}

	return article, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1`

	article, err := scanArticle(r.executor.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("article with slug " + slug)
		}
		return nil, err
	}

	return article, nil
}

func (r *articleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]*domain.Article, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Status != "" {
		add("status", string(filter.Status))
	}
	if filter.Sport != "" {
		add("sport", filter.Sport)
	}
	if filter.League != "" {
		add("league", filter.League)
	}
	if filter.GameID != "" {
		if !isUUID(filter.GameID) {
			return nil, domain.NewBadRequestError("game_id filter must be a UUID")
		}
		add("game_id", filter.GameID)
	}

	query := `SELECT ` + articleColumns + ` FROM articles`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY COALESCE(published_at, created_at) DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.queryArticles(ctx, query, args...)
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	if !isUUID(article.ID) {
		return domain.NewNotFoundError("article with id " + article.ID)
	}
	if err := checkArticleRefs(article); err != nil {
		return err
	}

	tags, err := encodeTags(article.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE articles
		SET title = $2, slug = $3, content = $4, summary = $5, status = $6, sport = $7,
			league = $8, tags = $9, game_id = $10, ai_confidence = $11,
			featured_image_url = $12, scheduled_at = $13, published_at = $14, updated_at = $15
		WHERE id = $1
		RETURNING updated_at
	`

	var updatedAt sql.NullTime
	err = r.executor.QueryRowContext(
		ctx,
		query,
		article.ID,
		article.Title,
		article.Slug,
		article.Content,
		article.Summary,
		string(article.Status),
		article.Sport,
		article.League,
		tags,
		nullable(article.GameID),
		nullDecimal(article.AIConfidence),
		article.FeaturedImageURL,
		nullable(article.ScheduledAt),
		nullable(article.PublishedAt),
		now(),
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("article with id " + article.ID)
		}
		if isUniqueViolation(err) {
			return domain.ErrSlugExists
		}
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("update article: %w", err)
	}
	article.UpdatedAt = nullTimePtr(updatedAt)

	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.NewNotFoundError("article with id " + id)
	}
	result, err := r.executor.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return expectOneRow(result, domain.NewNotFoundError("article with id "+id))
}

func (r *articleRepository) Publish(ctx context.Context, id string, publishedAt time.Time) error {
	if !isUUID(id) {
		return domain.NewNotFoundError("article with id " + id)
	}

	query := `
		UPDATE articles
		SET status = $2, published_at = $3, scheduled_at = NULL, updated_at = $3
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, string(domain.ArticleStatusPublished), publishedAt)
	if err != nil {
		return fmt.Errorf("publish article: %w", err)
	}
	return expectOneRow(result, domain.NewNotFoundError("article with id "+id))
}

// PublishScheduled publishes the article only while it is still scheduled.
// It reports false when the article was archived, rescheduled to draft or
// published by someone else since it was listed.
func (r *articleRepository) PublishScheduled(ctx context.Context, id string, publishedAt time.Time) (bool, error) {
	query := `
		UPDATE articles
		SET status = $2, published_at = $3, scheduled_at = NULL, updated_at = $3
		WHERE id = $1 AND status = $4
	`

	result, err := r.executor.ExecContext(ctx, query, id, string(domain.ArticleStatusPublished), publishedAt,
		string(domain.ArticleStatusScheduled))
	if err != nil {
		return false, fmt.Errorf("publish scheduled article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *articleRepository) IncrementViews(ctx context.Context, id string) error {
	result, err := r.executor.ExecContext(ctx, "UPDATE articles SET view_count = view_count + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return expectOneRow(result, domain.NewNotFoundError("article with id "+id))
}

func (r *articleRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*domain.Article, error) {
	query := `SELECT ` + articleColumns + `
		FROM articles
		WHERE status = $1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
		ORDER BY scheduled_at
		LIMIT $3`

	return r.queryArticles(ctx, query, string(domain.ArticleStatusScheduled), now, limit)
}

// Search matches published articles whose title, summary or content contains
// the query, case-insensitively. Title matches rank first.
func (r *articleRepository) Search(ctx context.Context, q string, limit int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	pattern := "%" + escapeLike(q) + "%"

	query := `SELECT ` + articleColumns + `
		FROM articles
		WHERE status = $1 AND (title ILIKE $2 OR summary ILIKE $2 OR content ILIKE $2)
		ORDER BY (title ILIKE $2) DESC, published_at DESC NULLS LAST
		LIMIT $3`

	return r.queryArticles(ctx, query, string(domain.ArticleStatusPublished), pattern, limit)
}

func (r *articleRepository) queryArticles(ctx context.Context, query string, args ...any) ([]*domain.Article, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	article := &domain.Article{}
	var (
		status       string
		authorID     sql.NullString
		gameID       sql.NullString
		tags         []byte
		aiConfidence decimal.NullDecimal
		scheduledAt  sql.NullTime
		publishedAt  sql.NullTime
		updatedAt    sql.NullTime
	)

	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Content,
		&article.Summary,
		&authorID,
		&status,
		&article.Sport,
		&article.League,
		&tags,
		&gameID,
		&aiConfidence,
		&article.FeaturedImageURL,
		&article.ViewCount,
		&scheduledAt,
		&publishedAt,
		&article.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Status = domain.ArticleStatus(status)
	article.AuthorID = nullStringPtr(authorID)
	article.GameID = nullStringPtr(gameID)
	if aiConfidence.Valid {
		article.AIConfidence = &aiConfidence.Decimal
	}
	article.ScheduledAt = nullTimePtr(scheduledAt)
	article.PublishedAt = nullTimePtr(publishedAt)
	article.UpdatedAt = nullTimePtr(updatedAt)

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &article.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for article %s: %w", article.ID, err)
		}
	}

	return article, nil
}

func checkArticleRefs(article *domain.Article) error {
	if err := checkUUIDRef("game_id", article.GameID); err != nil {
		return err
	}
	return checkUUIDRef("author_id", article.AuthorID)
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
