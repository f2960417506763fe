// Package sqlguard validates that model-generated SQL is a single
// read-only statement before it reaches the database.
package sqlguard

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptyStatement    = errors.New("sql statement is empty")
	ErrMultipleStatement = errors.New("multiple sql statements are not allowed")
)

// NotAllowedError reports a statement outside the read-only allow-list.
type NotAllowedError struct {
	Keyword string
}

func (e *NotAllowedError) Error() string {
	return fmt.Sprintf("statement %q is not allowed, only SELECT/WITH queries may run", e.Keyword)
}

// Check returns the normalized statement or an error. Only a single
// SELECT, or a WITH whose top-level statement is a SELECT, passes. The
// scan tracks quotes and parenthesis depth so string literals and CTE
// bodies cannot hide or fake statement boundaries.
func Check(sqlText string) (string, error) {
	normalized := stripTrailingSemicolons(sqlText)
	if normalized == "" {
		return "", ErrEmptyStatement
	}
	if containsUnquotedSemicolon(normalized) {
		return "", ErrMultipleStatement
	}

	keyword := leadingKeyword(normalized)
	switch keyword {
	case "select":
		return normalized, nil
	case "with":
		statement := topLevelStatementKeyword(normalized)
		if statement != "select" {
			if statement == "" {
				statement = "with"
			}
			return "", &NotAllowedError{Keyword: strings.ToUpper(statement)}
		}
		return normalized, nil
	default:
		return "", &NotAllowedError{Keyword: strings.ToUpper(keyword)}
	}
}

func leadingKeyword(sqlText string) string {
	fields := strings.Fields(strings.ToLower(sqlText))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// topLevelStatementKeyword finds the statement keyword that follows the
// CTE list of a WITH query. CTE bodies live inside parentheses, so the
// first statement keyword at depth zero is the one that actually runs.
func topLevelStatementKeyword(sqlText string) string {
	for _, word := range topLevelWords(sqlText) {
		switch word {
		case "select", "insert", "update", "delete", "merge":
			return word
		}
	}
	return ""
}

// topLevelWords returns the lowercased words outside string literals,
// quoted identifiers, and parentheses.
func topLevelWords(sqlText string) []string {
	var words []string
	var current strings.Builder
	var inSingle, inDouble bool
	depth := 0

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}
	for _, r := range sqlText {
		switch {
		case inSingle:
			if r == '\'' {
				inSingle = false
			}
		case inDouble:
			if r == '"' {
				inDouble = false
			}
		case r == '\'':
			flush()
			inSingle = true
		case r == '"':
			flush()
			inDouble = true
		case r == '(':
			flush()
			depth++
		case r == ')':
			flush()
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}

func containsUnquotedSemicolon(sqlText string) bool {
	var inSingle, inDouble bool
	for _, r := range sqlText {
		switch {
		case inSingle:
			if r == '\'' {
				inSingle = false
			}
		case inDouble:
			if r == '"' {
				inDouble = false
			}
		case r == '\'':
			inSingle = true
		case r == '"':
			inDouble = true
		case r == ';':
			return true
		}
	}
	return false
}

func stripTrailingSemicolons(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}
