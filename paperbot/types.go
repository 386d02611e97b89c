package paperbot

import "github.com/paperbot/paperbot/paperbot/query"

// Sort enums are defined alongside the tables in the query package and
// re-exported here for callers that only touch the façade.
type (
	SortCriterion = query.SortCriterion
	SortOrder     = query.SortOrder
)

const (
	SortSubmittedDate = query.SortSubmittedDate
	SortRelevance     = query.SortRelevance
	SortLastUpdated   = query.SortLastUpdated

	SortDescending = query.SortDescending
	SortAscending  = query.SortAscending
)

// CompiledQuery is handed to the archive search client verbatim.
type CompiledQuery struct {
	Query      string
	MaxResults int
	SortBy     SortCriterion
	SortOrder  SortOrder
	Echo       string
}

// Result is a successful parse. Tokens and AST are populated only when the
// parser was constructed in debug mode.
type Result struct {
	Query  CompiledQuery
	Tokens []query.Token
	AST    query.Expr
}
