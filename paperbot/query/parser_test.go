package query

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLex(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Lex(input)
	require.NoError(t, err)
	return tokens
}

func mustParse(t *testing.T, input string) (Expr, Options) {
	t.Helper()
	expr, opts, err := Parse(mustLex(t, input))
	require.NoError(t, err)
	return expr, opts
}

func fieldPtr(f Field) *Field { return &f }

func TestParseSingleKeyword(t *testing.T) {
	expr, opts := mustParse(t, "quantum")

	if diff := cmp.Diff(Expr(Term{Value: "quantum"}), expr); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, DefaultResultCount, opts.MaxResults)
	assert.Equal(t, SortSubmittedDate, opts.SortBy)
	assert.Equal(t, SortDescending, opts.SortOrder)
}

func TestParseImplicitAnd(t *testing.T) {
	expr, _ := mustParse(t, "quantum @hinton")

	want := Expr(And{Children: []Expr{
		Term{Value: "quantum"},
		Term{Field: fieldPtr(FieldAuthor), Value: "hinton"},
	}})
	if diff := cmp.Diff(want, expr); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOrBindsLooserThanAnd(t *testing.T) {
	expr, _ := mustParse(t, "deep learning | quantum computing")

	want := Expr(Or{Children: []Expr{
		And{Children: []Expr{Term{Value: "deep"}, Term{Value: "learning"}}},
		And{Children: []Expr{Term{Value: "quantum"}, Term{Value: "computing"}}},
	}})
	if diff := cmp.Diff(want, expr); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOrIsFlat(t *testing.T) {
	expr, _ := mustParse(t, "bert | gpt | t5")

	or, ok := expr.(Or)
	require.True(t, ok, "expected Or, got %T", expr)
	assert.Len(t, or.Children, 3)
}

func TestParseDoubleNegationPreserved(t *testing.T) {
	expr, _ := mustParse(t, "--quantum")

	want := Expr(Not{Inner: Not{Inner: Term{Value: "quantum"}}})
	if diff := cmp.Diff(want, expr); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSigilGroupCarriesFieldContext(t *testing.T) {
	expr, _ := mustParse(t, "@(hinton lecun)")

	want := Expr(Group{
		Inner: And{Children: []Expr{
			Term{Value: "hinton"},
			Term{Value: "lecun"},
		}},
		FieldContext: fieldPtr(FieldAuthor),
	})
	if diff := cmp.Diff(want, expr); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFieldGroupCarriesPrefix(t *testing.T) {
	expr, _ := mustParse(t, "ti:(quantum computing)")

	group, ok := expr.(Group)
	require.True(t, ok, "expected Group, got %T", expr)
	assert.Nil(t, group.FieldContext)
	assert.Equal(t, "ti", group.Prefix)
}

func TestParsePlainGroup(t *testing.T) {
	expr, _ := mustParse(t, "(bert | gpt) @google")

	and, ok := expr.(And)
	require.True(t, ok, "expected And, got %T", expr)
	require.Len(t, and.Children, 2)

	group, ok := and.Children[0].(Group)
	require.True(t, ok, "expected Group, got %T", and.Children[0])
	assert.Nil(t, group.FieldContext)
	_, ok = group.Inner.(Or)
	assert.True(t, ok, "expected Or inside group, got %T", group.Inner)
}

func TestParseOptionsAnywhere(t *testing.T) {
	// Options may appear before, between, or after content tokens.
	_, opts := mustParse(t, "20 quantum rd @hinton")
	assert.Equal(t, 20, opts.MaxResults)
	assert.Equal(t, SortRelevance, opts.SortBy)
	assert.Equal(t, SortDescending, opts.SortOrder)
}

func TestParseSortAscending(t *testing.T) {
	_, opts := mustParse(t, "quantum la")
	assert.Equal(t, SortLastUpdated, opts.SortBy)
	assert.Equal(t, SortAscending, opts.SortOrder)
}

func TestParseDateBounds(t *testing.T) {
	loc := time.FixedZone("test", -9*3600)
	tokens := mustLex(t, "quantum >20240101 <20241231")
	_, opts, err := ParseIn(tokens, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), opts.Since)
	// A date-only upper bound covers the whole day named.
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), opts.Until)
}

func TestParseDateBoundWithTime(t *testing.T) {
	loc := time.UTC
	tokens := mustLex(t, "quantum <20241231235959")
	_, opts, err := ParseIn(tokens, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, loc), opts.Until)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty input", "", "Empty query"},
		{"only options", "20 rd", "Empty query"},
		{"result count zero", "quantum 0", "Number of results must be between 1 and 1000"},
		{"result count too big", "quantum 1001", "Number of results must be between 1 and 1000"},
		{"duplicate number", "quantum 10 20", "Duplicate result count"},
		{"duplicate sort", "quantum s r", "Duplicate sort specifier"},
		{"duplicate since", "quantum >20240101 >20240202", "Duplicate date bound"},
		{"invalid date", "quantum >20241301", "Invalid date bound: 20241301"},
		{"unmatched open", "(quantum", "Unmatched parenthesis"},
		{"unmatched close", "quantum)", "Unmatched parenthesis"},
		{"empty group", "quantum ()", "Empty group"},
		{"or without right operand", "(quantum | )", "Missing operand after '|'"},
		{"or at end", "quantum |", "Missing operand after '|'"},
		{"consecutive or", "a | | b", "Consecutive OR operators"},
		{"not without operand", "(quantum -)", "Missing operand after '-'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(mustLex(t, tt.input))
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantMsg, parseErr.Message)
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	_, _, err := Parse(mustLex(t, "quantum 0"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 8, parseErr.Pos)
}
