package query

import (
	"fmt"
	"strings"
	"time"
)

// Compiled is the transformer's output: the archive query string, the
// result cap, the sort specification, and a human-readable echo.
type Compiled struct {
	Query      string
	MaxResults int
	SortBy     SortCriterion
	SortOrder  SortOrder
	Echo       string
}

// TransformError reports a semantic problem found while compiling an AST.
type TransformError struct {
	Message string
}

func (e *TransformError) Error() string { return e.Message }

// Transform compiles an expression and its options into an archive query.
func Transform(expr Expr, opts Options) (*Compiled, error) {
	body, err := render(expr, nil)
	if err != nil {
		return nil, err
	}

	queryString := body
	if !opts.Since.IsZero() || !opts.Until.IsZero() {
		// A naked OR at the root must be grouped before the date range
		// is AND-ed on.
		if _, ok := expr.(Or); ok {
			queryString = "(" + queryString + ")"
		}
		queryString = queryString + " AND " + dateRangeClause(opts)
	}

	echo := fmt.Sprintf("%s (%d results, %s %s)", queryString, opts.MaxResults, opts.SortBy, opts.SortOrder)

	return &Compiled{
		Query:      queryString,
		MaxResults: opts.MaxResults,
		SortBy:     opts.SortBy,
		SortOrder:  opts.SortOrder,
		Echo:       echo,
	}, nil
}

// render walks the AST with the ambient field inherited from enclosing
// sigil-led groups. Parenthesization follows the archive grammar: OR
// groups are wrapped when they appear under AND, NOT carries its own
// parentheses, and field-context groups render as prefix:(inner).
func render(e Expr, ambient *Field) (string, error) {
	switch n := e.(type) {
	case Term:
		return renderTerm(n, ambient)

	case And:
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			s, err := render(child, ambient)
			if err != nil {
				return "", err
			}
			if _, ok := child.(Or); ok {
				s = "(" + s + ")"
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " AND "), nil

	case Or:
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			s, err := render(child, ambient)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " OR "), nil

	case Not:
		inner, err := render(n.Inner, ambient)
		if err != nil {
			return "", err
		}
		return "NOT ( " + inner + " )", nil

	case Group:
		return renderGroup(n, ambient)

	default:
		return "", &TransformError{Message: fmt.Sprintf("unknown expression type: %T", e)}
	}
}

func renderGroup(g Group, ambient *Field) (string, error) {
	fieldContext := g.FieldContext
	if fieldContext == nil && g.Prefix != "" {
		f, ok := FieldByPrefix[g.Prefix]
		if !ok {
			return "", &TransformError{Message: "Unrecognized field: " + g.Prefix}
		}
		fieldContext = &f
	}

	if fieldContext != nil {
		inner, err := render(g.Inner, fieldContext)
		if err != nil {
			return "", err
		}
		return fieldContext.Prefix() + ":(" + inner + ")", nil
	}

	inner, err := render(g.Inner, ambient)
	if err != nil {
		return "", err
	}
	switch g.Inner.(type) {
	case And, Or:
		return "(" + inner + ")", nil
	default:
		return inner, nil
	}
}

func renderTerm(t Term, ambient *Field) (string, error) {
	var field Field
	inherited := false

	switch {
	case t.Prefix != "":
		f, ok := FieldByPrefix[t.Prefix]
		if !ok {
			return "", &TransformError{Message: "Unrecognized field: " + t.Prefix}
		}
		field = f
	case t.Field != nil:
		field = *t.Field
	case ambient != nil:
		field = *ambient
		inherited = true
	default:
		field = FieldTitle
	}

	value := t.Value
	if field == FieldCategory {
		normalized, err := NormalizeCategory(value)
		if err != nil {
			return "", err
		}
		value = normalized
	}
	if t.Phrase {
		value = `"` + value + `"`
	}

	// Terms that inherit the group's field render bare: the prefix is on
	// the enclosing prefix:(...) group.
	if inherited {
		return value, nil
	}
	return field.Prefix() + ":" + value, nil
}

// dateRangeClause renders the submission-date window, defaulting the
// absent side so the archive always receives a closed interval.
func dateRangeClause(opts Options) string {
	since := opts.Since
	until := opts.Until

	loc := time.UTC
	switch {
	case !since.IsZero():
		loc = since.Location()
	case !until.IsZero():
		loc = until.Location()
	}

	if since.IsZero() {
		since = time.Date(1900, 1, 1, 0, 0, 0, 0, loc)
	}
	if until.IsZero() {
		until = time.Date(2100, 1, 1, 0, 0, 0, 0, loc)
	}

	const layout = "20060102150405"
	return "submittedDate:[" + since.Format(layout) + " TO " + until.Format(layout) + "]"
}
