package finbook

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FilterOp is a per-column comparison operator.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpNeq FilterOp = "neq"
	OpLt  FilterOp = "lt"
	OpGt  FilterOp = "gt"
	OpIn  FilterOp = "in"  // substring for text columns, equality for others
	OpNin FilterOp = "nin"
)

// Filter is a single column filter. Unknown columns and operators are
// ignored, not errors.
type Filter struct {
	Column string   `json:"column"`
	By     FilterOp `json:"by"`
	Value  string   `json:"value"`
}

// DayFilter matches dates with partial specificity: year only, year+month,
// or year+month+day. Zero Month/Day means unset.
type DayFilter struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month,omitempty"`
	Day   int        `json:"day,omitempty"`
}

// Matches reports whether the date matches at the filter's granularity.
func (f DayFilter) Matches(d Date) bool {
	if d.Year() != f.Year {
		return false
	}
	if f.Month != 0 && d.Month() != f.Month {
		return false
	}
	if f.Day != 0 && d.Day() != f.Day {
		return false
	}
	return true
}

// RangeFilter restricts to a [From, To] window at month granularity.
type RangeFilter struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// SortDirection orders a sorted sequence.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort names the single active sort column and direction.
type Sort struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// Query is the filter/sort/pagination state passed in by the caller.
// Page is 1-based.
type Query struct {
	Filters     []Filter
	Day         *DayFilter
	Range       *RangeFilter
	ShowPending bool
	Sort        *Sort
	Page        int
	PerPage     int
}

// QueryResult carries one page of transactions and the total size of the
// filtered (unpaged) set.
type QueryResult struct {
	Items []Transaction `json:"items"`
	Total int           `json:"total"`
}

// txColumn is a sortable, filterable transaction column with explicit typed
// comparators, selected by name. This replaces dynamic field access with a
// small tagged union of known columns.
type txColumn struct {
	match func(t Transaction, op FilterOp, value string) bool
	less  func(a, b Transaction) bool
}

var txColumns = map[string]txColumn{
	"desc":     textColumn(func(t Transaction) string { return t.Desc }),
	"status":   textColumn(func(t Transaction) string { return string(t.Status) }),
	"account":  idColumn(func(t Transaction) uuid.UUID { return t.Account }),
	"category": idColumn(func(t Transaction) uuid.UUID { return t.Category }),
	"opId":     idColumn(func(t Transaction) uuid.UUID { return t.OpID }),
	"in":       amountColumn(func(t Transaction) Amount { return t.In }),
	"out":      amountColumn(func(t Transaction) Amount { return t.Out }),
	"when":     dateColumn(),
}

func textColumn(get func(Transaction) string) txColumn {
	return txColumn{
		match: func(t Transaction, op FilterOp, value string) bool {
			v := get(t)
			switch op {
			case OpEq:
				return v == value
			case OpNeq:
				return v != value
			case OpLt:
				return v < value
			case OpGt:
				return v > value
			case OpIn:
				return strings.Contains(strings.ToLower(v), strings.ToLower(value))
			case OpNin:
				return !strings.Contains(strings.ToLower(v), strings.ToLower(value))
			}
			return true
		},
		less: func(a, b Transaction) bool { return get(a) < get(b) },
	}
}

func idColumn(get func(Transaction) uuid.UUID) txColumn {
	return txColumn{
		match: func(t Transaction, op FilterOp, value string) bool {
			v := get(t).String()
			switch op {
			case OpEq, OpIn:
				return v == value
			case OpNeq, OpNin:
				return v != value
			case OpLt:
				return v < value
			case OpGt:
				return v > value
			}
			return true
		},
		less: func(a, b Transaction) bool { return get(a).String() < get(b).String() },
	}
}

func amountColumn(get func(Transaction) Amount) txColumn {
	return txColumn{
		match: func(t Transaction, op FilterOp, value string) bool {
			want, err := ParseAmount(value)
			if err != nil {
				return true // unparseable value: filter ignored
			}
			v := get(t)
			switch op {
			case OpEq, OpIn:
				return v.Equal(want)
			case OpNeq, OpNin:
				return !v.Equal(want)
			case OpLt:
				return v.LessThan(want)
			case OpGt:
				return v.GreaterThan(want)
			}
			return true
		},
		less: func(a, b Transaction) bool { return get(a).Cmp(get(b)) < 0 },
	}
}

func dateColumn() txColumn {
	return txColumn{
		match: func(t Transaction, op FilterOp, value string) bool {
			want, err := ParseDate(value)
			if err != nil {
				return true
			}
			switch op {
			case OpEq, OpIn:
				return t.When == want
			case OpNeq, OpNin:
				return t.When != want
			case OpLt:
				return t.When.Before(want)
			case OpGt:
				return t.When.After(want)
			}
			return true
		},
		less: func(a, b Transaction) bool { return a.When.Before(b.When) },
	}
}

// FetchTransactions applies the query's filters, sorting and pagination over
// the transaction list and returns one page plus the total filtered count.
//
// Pending transactions are excluded by default; they become visible when
// ShowPending is set or when an explicit status filter is present.
func (s *Store) FetchTransactions(q Query) QueryResult {
	showPending := q.ShowPending
	for _, f := range q.Filters {
		if f.Column == "status" {
			showPending = true
			break
		}
	}

	data := make([]Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if !showPending && t.Status == Pending {
			continue
		}
		data = append(data, t)
	}

	for _, f := range q.Filters {
		col, known := txColumns[f.Column]
		if !known {
			continue
		}
		filtered := make([]Transaction, 0, len(data))
		for _, t := range data {
			if col.match(t, f.By, f.Value) {
				filtered = append(filtered, t)
			}
		}
		data = filtered
	}

	if q.Day != nil {
		filtered := make([]Transaction, 0, len(data))
		for _, t := range data {
			if q.Day.Matches(t.When) {
				filtered = append(filtered, t)
			}
		}
		data = filtered
	}

	if q.Range != nil {
		from, to := q.Range.From.StartOfMonth(), q.Range.To.EndOfMonth()
		filtered := make([]Transaction, 0, len(data))
		for _, t := range data {
			if !t.When.Before(from) && !t.When.After(to) {
				filtered = append(filtered, t)
			}
		}
		data = filtered
	}

	if q.Sort != nil {
		if col, known := txColumns[q.Sort.Column]; known {
			sort.SliceStable(data, func(i, j int) bool { return col.less(data[i], data[j]) })
			// desc reverses the fully sorted sequence; negating the
			// comparator instead would break the stable tie order.
			if q.Sort.Direction == Desc {
				slices.Reverse(data)
			}
		}
	}

	total := len(data)
	items := data
	if q.PerPage > 0 {
		start := (q.Page - 1) * q.PerPage
		if start < 0 {
			start = 0
		}
		if start > total {
			start = total
		}
		end := start + q.PerPage
		if end > total {
			end = total
		}
		items = data[start:end]
	}
	return QueryResult{Items: items, Total: total}
}
