// Package filter narrows entity collections by a conjunction of clauses:
// field equality, calendar-day range and case-insensitive free-text search.
//
// Filtering is pure. Apply never reorders or mutates its input, and an empty
// clause list returns a copy equal to the input. A clause that references a
// field a record does not carry excludes that record.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// Clause is one predicate of a conjunction
type Clause interface {
	Match(r sales.Record) bool
}

// ClauseFunc adapts a function to Clause
type ClauseFunc func(r sales.Record) bool

// Match implements Clause
func (f ClauseFunc) Match(r sales.Record) bool { return f(r) }

var matchAll = ClauseFunc(func(sales.Record) bool { return true })

// Apply returns the records matching every clause, in input order.
func Apply[T sales.Record](items []T, clauses ...Clause) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, clauses) {
			out = append(out, item)
		}
	}
	return out
}

// Count returns how many records match every clause
func Count[T sales.Record](items []T, clauses ...Clause) int {
	n := 0
	for _, item := range items {
		if matches(item, clauses) {
			n++
		}
	}
	return n
}

func matches(r sales.Record, clauses []Clause) bool {
	for _, c := range clauses {
		if c != nil && !c.Match(r) {
			return false
		}
	}
	return true
}

// Equals matches records whose field equals value exactly. An empty value matches all.
func Equals(field, value string) Clause {
	if value == "" {
		return matchAll
	}
	return ClauseFunc(func(r sales.Record) bool {
		v, ok := r.Field(field)
		return ok && v == value
	})
}

// Between matches records dated within [from, to] by calendar day, both ends
// inclusive. Either bound may be empty for an open-ended range; both empty matches all.
// Bounds are YYYY-MM-DD keys.
func Between(from, to string) Clause {
	if from == "" && to == "" {
		return matchAll
	}
	return ClauseFunc(func(r sales.Record) bool {
		day, ok := r.Day()
		if !ok {
			return false
		}
		if from != "" && day < from {
			return false
		}
		if to != "" && day > to {
			return false
		}
		return true
	})
}

// Contains matches records where any of fields contains query, ignoring case.
// An empty query matches all. With no fields given, "name" is searched.
func Contains(query string, fields ...string) Clause {
	if query == "" {
		return matchAll
	}
	if len(fields) == 0 {
		fields = []string{"name"}
	}
	needle := fold(query)
	return ClauseFunc(func(r sales.Record) bool {
		for _, f := range fields {
			if v, ok := r.Field(f); ok && strings.Contains(fold(v), needle) {
				return true
			}
		}
		return false
	})
}

// fold applies Unicode case folding. A Caser is stateful, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
