package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"portfolio_backend/pkg/apperrors"
)

// MaxLength bounds the base slug; the numeric suffix may go past it
const MaxLength = 200

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Sluggable is implemented by models with a slug column
type Sluggable interface {
	GetID() uint
	SlugSource() string
	GetSlug() string
	SetSlug(slug string)
}

// Slugify lowercases, strips diacritics and hyphenates s. It may return "".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > MaxLength {
		s = strings.Trim(string([]rune(s)[:MaxLength]), "-")
	}
	return s
}

// Assign returns the first free slug among base, base-1, base-2, ... in table,
// ignoring the row excludeID. Run it in the transaction that saves the row.
func Assign(tx *gorm.DB, table, candidate string, excludeID uint) (string, error) {
	base := Slugify(candidate)
	if base == "" {
		return "", apperrors.ErrInvalidInput("slug", "Cannot derive a slug from an empty title", map[string]string{
			"title": candidate,
		})
	}

	for i := 0; ; i++ {
		slug := base
		if i > 0 {
			slug = fmt.Sprintf("%s-%d", base, i)
		}

		taken, err := isTaken(tx, table, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
	}
}

// Ensure assigns a slug to m when it has none. An existing slug is never
// regenerated, so renaming the title keeps the URL stable.
func Ensure(tx *gorm.DB, m Sluggable) error {
	if m.GetSlug() != "" {
		return nil
	}

	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(m); err != nil {
		return fmt.Errorf("parse model for slug: %w", err)
	}

	slug, err := Assign(tx, stmt.Schema.Table, m.SlugSource(), m.GetID())
	if err != nil {
		return err
	}
	m.SetSlug(slug)
	return nil
}

func isTaken(tx *gorm.DB, table, slug string, excludeID uint) (bool, error) {
	q := tx.Session(&gorm.Session{NewDB: true}).Table(table).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slug %q: %w", slug, err)
	}
	return count > 0, nil
}
