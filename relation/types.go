// Package relation implements the Typed Column Store: a columnar,
// shared-read representation of one tabular relation.
//
// A Relation owns one typed, null-tracked slice per column. Every other
// package in this module (vertical, points, distance, metric, fd) reads a
// *Relation without mutating it during Execute, mirroring the borrowed-view
// discipline lvlath's core.Graph applies to its adjacency maps.
package relation

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Sentinel errors for relation construction and access.
var (
	// ErrNoColumns indicates a dataset stream declared zero columns.
	ErrNoColumns = errors.New("relation: dataset has no columns")

	// ErrRowWidthMismatch indicates a row did not carry one value per column.
	ErrRowWidthMismatch = errors.New("relation: row width does not match column count")

	// ErrColumnIndex indicates a column index is out of [0, numColumns).
	ErrColumnIndex = errors.New("relation: column index out of range")
)

// ColumnType is the closed set of semantic types a parsed column can hold.
type ColumnType int

const (
	// Undefined marks a column whose type could not be inferred (empty
	// relation, or every value null).
	Undefined ColumnType = iota
	// Integer columns hold int64 values.
	Integer
	// Double columns hold float64 values.
	Double
	// BigDecimal columns hold arbitrary-precision decimals.
	BigDecimal
	// String columns hold raw, unparsed text.
	String
)

// String renders the ColumnType as a lower-case identifier.
func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Double:
		return "double"
	case BigDecimal:
		return "big_decimal"
	case String:
		return "string"
	default:
		return "undefined"
	}
}

// Column describes one field of a Relation: its name, its ordinal Index,
// and the ColumnType values were parsed into.
type Column struct {
	Name  string
	Index int
	Type  ColumnType
}

// TypedColumn is the parsed, per-row storage for one Column, plus a
// parallel null mask. Exactly one of the Ints/Floats/Decimals/Strings
// slices is populated, selected by Column.Type; an Undefined column
// populates none of them.
type TypedColumn struct {
	Column   Column
	Nulls    []bool
	Ints     []int64
	Floats   []float64
	Decimals []*big.Float
	Strings  []string
}

// Len reports the number of rows stored in the column.
func (c *TypedColumn) Len() int {
	return len(c.Nulls)
}

// IsNull reports whether row is null in this column.
func (c *TypedColumn) IsNull(row int) bool {
	return c.Nulls[row]
}

// Float returns row's value widened to float64. It is valid for Integer,
// Double and BigDecimal columns; callers must not call it on String or
// Undefined columns.
func (c *TypedColumn) Float(row int) float64 {
	switch c.Column.Type {
	case Integer:
		return float64(c.Ints[row])
	case Double:
		return c.Floats[row]
	case BigDecimal:
		f, _ := c.Decimals[row].Float64()
		return f
	default:
		return 0
	}
}

// String returns row's raw textual value for a String column.
func (c *TypedColumn) String(row int) string {
	return c.Strings[row]
}

// Relation is an ordered sequence of typed columns sharing a row count.
// It is built once by Parse and is read-only thereafter.
type Relation struct {
	Columns  []Column
	Typed    []*TypedColumn
	RowCount int
}

// NumColumns reports the number of columns in the relation.
func (r *Relation) NumColumns() int {
	return len(r.Columns)
}

// Column returns the TypedColumn at idx, or ErrColumnIndex if out of range.
func (r *Relation) Column(idx int) (*TypedColumn, error) {
	if idx < 0 || idx >= len(r.Typed) {
		return nil, fmt.Errorf("%w: %d", ErrColumnIndex, idx)
	}
	return r.Typed[idx], nil
}

// DatasetStream is the external row source: number of columns, column
// names, and a pull-style row iterator. Implementations are provided by
// CLI/API front-ends and CSV readers outside the core.
type DatasetStream interface {
	NumColumns() int
	ColumnNames() []string
	Next() (row []string, ok bool, err error)
}

// SliceStream is a DatasetStream backed by an in-memory table, used by
// tests and by small embedded callers.
type SliceStream struct {
	Names []string
	Rows  [][]string
	pos   int
}

// NumColumns implements DatasetStream.
func (s *SliceStream) NumColumns() int { return len(s.Names) }

// ColumnNames implements DatasetStream.
func (s *SliceStream) ColumnNames() []string { return s.Names }

// Next implements DatasetStream.
func (s *SliceStream) Next() ([]string, bool, error) {
	if s.pos >= len(s.Rows) {
		return nil, false, nil
	}
	row := s.Rows[s.pos]
	s.pos++
	if len(row) != len(s.Names) {
		return nil, false, fmt.Errorf("%w: row %d has %d values, want %d",
			ErrRowWidthMismatch, s.pos-1, len(row), len(s.Names))
	}
	return row, true, nil
}

// Stream returns a DatasetStream that replays r's rows as strings, so
// another Primitive can Fit against the same data r was parsed from.
func (r *Relation) Stream() DatasetStream {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	rows := make([][]string, r.RowCount)
	for row := 0; row < r.RowCount; row++ {
		cells := make([]string, len(r.Typed))
		for col, tc := range r.Typed {
			if tc.IsNull(row) {
				cells[col] = NullToken
				continue
			}
			switch tc.Column.Type {
			case String:
				cells[col] = tc.Strings[row]
			case Integer:
				cells[col] = strconv.FormatInt(tc.Ints[row], 10)
			case Double:
				cells[col] = strconv.FormatFloat(tc.Floats[row], 'g', -1, 64)
			case BigDecimal:
				cells[col] = tc.Decimals[row].Text('g', -1)
			}
		}
		rows[row] = cells
	}
	return &SliceStream{Names: names, Rows: rows}
}

// NullToken is the textual marker interpreted as SQL-style NULL while
// parsing raw string cells: an empty string always means NULL.
const NullToken = ""

// Parse reads stream to completion and builds a Relation, inferring each
// column's ColumnType from the values observed: a column that parses
// entirely (ignoring nulls) as int64 is Integer; failing that, as float64
// is Double; failing that, as a big.Float is BigDecimal; otherwise it is
// String. A column with only null values is Undefined.
//
// Complexity: O(rows * columns).
func Parse(stream DatasetStream) (*Relation, error) {
	n := stream.NumColumns()
	if n == 0 {
		return nil, ErrNoColumns
	}
	names := stream.ColumnNames()

	var rawRows [][]string
	for {
		row, ok, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d",
				ErrRowWidthMismatch, len(rawRows), len(row), n)
		}
		rawRows = append(rawRows, row)
	}

	rel := &Relation{
		Columns:  make([]Column, n),
		Typed:    make([]*TypedColumn, n),
		RowCount: len(rawRows),
	}
	for col := 0; col < n; col++ {
		values := make([]string, len(rawRows))
		for i, row := range rawRows {
			values[i] = row[col]
		}
		rel.Typed[col] = buildColumn(names[col], col, values)
		rel.Columns[col] = rel.Typed[col].Column
	}
	return rel, nil
}

func buildColumn(name string, index int, values []string) *TypedColumn {
	typ := inferType(values)
	col := Column{Name: name, Index: index, Type: typ}
	tc := &TypedColumn{Column: col, Nulls: make([]bool, len(values))}

	switch typ {
	case Integer:
		tc.Ints = make([]int64, len(values))
		for i, v := range values {
			if v == NullToken {
				tc.Nulls[i] = true
				continue
			}
			n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			tc.Ints[i] = n
		}
	case Double:
		tc.Floats = make([]float64, len(values))
		for i, v := range values {
			if v == NullToken {
				tc.Nulls[i] = true
				continue
			}
			f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
			tc.Floats[i] = f
		}
	case BigDecimal:
		tc.Decimals = make([]*big.Float, len(values))
		for i, v := range values {
			if v == NullToken {
				tc.Nulls[i] = true
				tc.Decimals[i] = new(big.Float)
				continue
			}
			f, _, err := big.ParseFloat(strings.TrimSpace(v), 10, 100, big.ToNearestEven)
			if err != nil {
				f = new(big.Float)
			}
			tc.Decimals[i] = f
		}
	case String:
		tc.Strings = make([]string, len(values))
		for i, v := range values {
			if v == NullToken {
				tc.Nulls[i] = true
				continue
			}
			tc.Strings[i] = v
		}
	default: // Undefined: every value was null
		for i := range values {
			tc.Nulls[i] = true
		}
	}
	return tc
}

// inferType scans the non-null values of a column and returns the
// narrowest ColumnType all of them parse as.
func inferType(values []string) ColumnType {
	sawValue := false
	isInt, isFloat, isDecimal := true, true, true
	for _, v := range values {
		if v == NullToken {
			continue
		}
		sawValue = true
		trimmed := strings.TrimSpace(v)
		if isInt {
			if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
				isFloat = false
			}
		}
		if isDecimal {
			if _, _, err := big.ParseFloat(trimmed, 10, 100, big.ToNearestEven); err != nil {
				isDecimal = false
			}
		}
	}
	switch {
	case !sawValue:
		return Undefined
	case isInt:
		return Integer
	case isFloat:
		return Double
	case isDecimal:
		return BigDecimal
	default:
		return String
	}
}
