// Package content holds the pure text helpers used when articles are listed,
// rendered or ingested: excerpts, reading time, dates, slugs and keyword
// categories.
package content

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

const (
	DefaultWordsPerMinute = 200
	ExcerptLength         = 150
	excerptEllipsis       = "..."
	articleDateLayout     = "January 2, 2006"
)

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	slugInvalidChar = regexp.MustCompile(`[^a-z0-9\s-]`)
)

// ProcessedArticle is an article plus the display fields derived from it.
type ProcessedArticle struct {
	domain.Article
	Excerpt       string
	ReadingTime   int
	FormattedDate string
	Categories    KeywordCategories
}

// ProcessArticleContent derives excerpt, reading time, display date and
// keyword categories. The date is the publication date when set, otherwise
// the creation date.
func ProcessArticleContent(article domain.Article) ProcessedArticle {
	processed := ProcessedArticle{
		Article:     article,
		Excerpt:     Excerpt(article.Summary, article.Content, ExcerptLength),
		ReadingTime: GetReadingTime(article.Content, DefaultWordsPerMinute),
		Categories:  CategorizeKeywords(append([]string{article.Sport, article.League}, article.Tags...)),
	}

	date := article.CreatedAt
	if article.PublishedAt != nil {
		date = *article.PublishedAt
	}
	if !date.IsZero() {
		processed.FormattedDate = FormatArticleDate(date)
	}

	return processed
}

// Excerpt prefers the summary; otherwise it strips markup from the body and
// cuts it to maxLen runes followed by an ellipsis.
func Excerpt(summary, body string, maxLen int) string {
	if s := strings.TrimSpace(summary); s != "" {
		return s
	}

	text := htmlTagPattern.ReplaceAllString(body, " ")
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + excerptEllipsis
}

// GetReadingTime returns whole minutes, rounded up. Empty content is 0.
func GetReadingTime(content string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / float64(wordsPerMinute)))
}

func FormatArticleDate(t time.Time) string {
	return t.Format(articleDateLayout)
}

// FormatRelativeTime renders t relative to now, e.g. "3 days ago".
func FormatRelativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// GenerateSlug builds a URL-friendly slug from an article title.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChar.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func FormatScore(home, away int) string {
	return fmt.Sprintf("%d-%d", home, away)
}

// CleanName trims, collapses inner whitespace and title-cases each word.
func CleanName(name string) string {
	name = strings.TrimSpace(whitespaceRun.ReplaceAllString(name, " "))
	if name == "" {
		return ""
	}
	words := strings.Split(name, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return strings.ToUpper(string(r)) + strings.ToLower(w[size:])
}

// SanitizeLogInput strips CR/LF and caps the value so it is safe to log.
func SanitizeLogInput(value any) string {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	if utf8.RuneCountInString(s) > 100 {
		s = string([]rune(s)[:100]) + excerptEllipsis
	}
	return s
}
