// Package query builds the predicate selecting the notes a user may see
// under a given filter and search term. It emits SQL text and arguments
// but never touches the database, so every branch is unit-testable.
package query

import (
	"fmt"
	"strings"
)

type Filter string

const (
	FilterAll    Filter = "all"
	FilterMy     Filter = "my"
	FilterShared Filter = "shared"
	FilterPublic Filter = "public"
)

const (
	DefaultLimit = 12
	MaxLimit     = 48
)

// ParseFilter maps a query-string value to a Filter. Unknown values fall
// back to "all", matching how the filter dropdown behaved.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterMy, FilterShared, FilterPublic:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Params are the caller-supplied listing parameters before
// normalization.
type Params struct {
	UserID string
	Filter Filter
	Search string
	Page   int
	Limit  int
}

// Normalize clamps paging values into their valid ranges. Policy is
// clamp, not reject: page floors at 1, limit defaults to DefaultLimit
// and is bounded to [1, MaxLimit].
func (p Params) Normalize() Params {
	if p.Filter == "" {
		p.Filter = FilterAll
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Spec is a normalized query specification ready for the storage layer.
type Spec struct {
	Where   string
	Args    []interface{}
	OrderBy string
	Limit   int
	Offset  int
}

// VisiblePredicate returns the owner-or-public-or-shared expression for
// the notes table aliased as alias, with the user id at the given
// placeholder position. This single predicate governs read access to a
// note, its comments, and comment creation.
func VisiblePredicate(alias string, userPos int) string {
	return fmt.Sprintf(
		"(%[1]s.author_id = $%[2]d OR %[1]s.is_public = TRUE OR EXISTS (SELECT 1 FROM note_shares s WHERE s.note_id = %[1]s.id AND s.shared_with_id = $%[2]d))",
		alias, userPos)
}

// Build composes the WHERE clause for the notes listing. The notes table
// is expected to be aliased as "n".
func Build(p Params) Spec {
	p = p.Normalize()

	var where string
	args := []interface{}{p.UserID}

	switch p.Filter {
	case FilterMy:
		where = "n.author_id = $1"
	case FilterShared:
		where = "EXISTS (SELECT 1 FROM note_shares s WHERE s.note_id = n.id AND s.shared_with_id = $1)"
	case FilterPublic:
		where = "n.is_public = TRUE"
		args = args[:0]
	default:
		// "all" shows exactly what the user is allowed to open.
		where = VisiblePredicate("n", 1)
	}

	if search := strings.TrimSpace(p.Search); search != "" {
		pos := len(args) + 1
		cond := fmt.Sprintf("(n.title ILIKE $%d OR n.content ILIKE $%d)", pos, pos)
		if where == "" {
			where = cond
		} else {
			where = where + " AND " + cond
		}
		args = append(args, "%"+search+"%")
	}

	if where == "" {
		where = "TRUE"
	}

	return Spec{
		Where: where,
		Args:  args,
		// The id tie-break keeps pagination deterministic when several
		// notes share an updated_at.
		OrderBy: "n.updated_at DESC, n.id DESC",
		Limit:   p.Limit,
		Offset:  (p.Page - 1) * p.Limit,
	}
}

// PageInfo describes one page of a listing.
type PageInfo struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Page computes pagination metadata for a total row count.
func (p Params) PageInfo(total int) PageInfo {
	p = p.Normalize()
	totalPages := (total + p.Limit - 1) / p.Limit
	return PageInfo{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
