// Package filter compiles album list filters and the caller's identity into a
// parameterized SQL predicate.
//
// The predicate is built as a list of typed clauses, each carrying its own
// '?' placeholders and bound values. Rendering to a driver's bindvar style
// happens in one pass over the finished string, so placeholder numbering can
// never drift from argument order.
package filter

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// Request is a decoded album list filter. Zero values mean "no restriction".
type Request struct {
	// Users restricts results to albums uploaded by one of these keys.
	// nil applies no uploader restriction.
	Users []string

	// From and To select albums whose timeframe overlaps the window.
	From *int64
	To   *int64

	// IncludeDrafts asks for the caller's own drafts next to published albums.
	IncludeDrafts bool
}

// Caller is the identity on whose behalf a query runs.
// The zero value is an anonymous caller.
type Caller struct {
	Key string
}

func (c Caller) IsAnonymous() bool {
	return c.Key == ""
}

// Predicate is a compiled WHERE clause (without the keyword) and its
// positional arguments. Where uses '?' placeholders; see Render.
type Predicate struct {
	Where string
	Args  []any
}

// Render returns Where with placeholders rewritten for the given sqlx bind
// type (sqlx.QUESTION, sqlx.DOLLAR, ...).
func (p Predicate) Render(bindType int) string {
	return sqlx.Rebind(bindType, p.Where)
}

type clause struct {
	sql  string
	args []any
}

// Compile builds the predicate for req as seen by caller.
//
// Clauses are emitted in a fixed order: uploader set, lower bound, upper
// bound, then draft visibility. The visibility rule is always last and is
// never omitted. Compile has no failure mode; input validation happens when
// the request is decoded.
func Compile(req Request, caller Caller) Predicate {
	var clauses []clause

	if len(req.Users) > 0 {
		clauses = append(clauses, uploaderClause(req.Users))
	}
	if req.From != nil {
		clauses = append(clauses, fromClause(*req.From))
	}
	if req.To != nil {
		clauses = append(clauses, toClause(*req.To))
	}

	return render(clauses, visibilityClause(req.IncludeDrafts, caller))
}

// render joins the optional clauses and the mandatory visibility clause.
func render(clauses []clause, visibility clause) Predicate {
	clauses = append(clauses, visibility)

	parts := make([]string, 0, len(clauses))
	var args []any
	for _, c := range clauses {
		parts = append(parts, c.sql)
		args = append(args, c.args...)
	}

	return Predicate{
		Where: strings.Join(parts, " AND "),
		Args:  args,
	}
}

func uploaderClause(users []string) clause {
	args := make([]any, len(users))
	for i, u := range users {
		args[i] = u
	}
	return clause{
		sql:  "uploader_key IN (" + placeholders(len(users)) + ")",
		args: args,
	}
}

// fromClause matches albums that end at or after from, or start at or after
// it. Either endpoint may be NULL.
func fromClause(from int64) clause {
	return clause{
		sql:  "(timeframe_to >= ? OR timeframe_from >= ?)",
		args: []any{from, from},
	}
}

// toClause is the mirror of fromClause for the upper bound.
func toClause(to int64) clause {
	return clause{
		sql:  "(timeframe_from <= ? OR timeframe_to <= ?)",
		args: []any{to, to},
	}
}

// visibilityClause hides other users' drafts. An anonymous caller binds NULL,
// which never compares equal, leaving only published albums.
func visibilityClause(includeDrafts bool, caller Caller) clause {
	if !includeDrafts {
		return clause{sql: "draft = FALSE"}
	}

	var owner any
	if !caller.IsAnonymous() {
		owner = caller.Key
	}
	return clause{
		sql:  "(uploader_key = ? OR draft = FALSE)",
		args: []any{owner},
	}
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
