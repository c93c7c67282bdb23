package notes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/studylit/internal/models"
)

type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortTitle     SortKey = "title"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Query controls Arrange. Zero value: no search, newest first.
type Query struct {
	Search string
	Sort   SortKey
	Order  SortOrder
}

// Arrange puts pinned notes first, oldest pinned first, and never hides them.
// The remaining notes are filtered by Search (case-insensitive, on title,
// content, url and author) and sorted by Sort and Order.
func Arrange(all []models.Note, q Query) ([]models.Note, error) {
	if q.Sort == "" {
		q.Sort = SortCreatedAt
	}
	if q.Order == "" {
		q.Order = Desc
	}
	if q.Sort != SortCreatedAt && q.Sort != SortTitle {
		return nil, fmt.Errorf("%w: %q", ErrQuery, q.Sort)
	}
	if q.Order != Asc && q.Order != Desc {
		return nil, fmt.Errorf("%w: %q", ErrQuery, q.Order)
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	var pinned, rest []models.Note
	for _, n := range all {
		switch {
		case n.Pinned:
			pinned = append(pinned, n)
		case term == "" || matches(n, term):
			rest = append(rest, n)
		}
	}

	sort.SliceStable(pinned, func(i, j int) bool {
		return pinned[i].CreatedAt.Before(pinned[j].CreatedAt)
	})
	sort.SliceStable(rest, func(i, j int) bool {
		a, b := rest[i], rest[j]
		if q.Order == Desc {
			a, b = b, a
		}
		if q.Sort == SortTitle {
			return a.Title < b.Title
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return append(pinned, rest...), nil
}

func matches(n models.Note, term string) bool {
	for _, field := range []string{n.Title, n.Content, n.URL, n.Author} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
