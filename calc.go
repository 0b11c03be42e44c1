// Package linreg implements the ordinary least-squares regression worksheet
// functions SLOPE and INTERCEPT over already-evaluated spreadsheet values.
//
// Arguments arrive as FormulaArg values produced by a surrounding formula
// engine: literal numbers, strings or booleans, propagated error tokens,
// live single-cell references, or rectangular ranges. The package applies
// spreadsheet error-propagation and exclusion semantics and yields either a
// finite number or a spreadsheet error token, never a coerced default.
package linreg

import "strconv"

// ArgType is the type of a formula argument.
type ArgType byte

// Formula argument types enumeration.
const (
	ArgUnknown ArgType = iota
	ArgString
	ArgMatrix
	ArgNumber
	ArgError
	ArgRef
	ArgEmpty
)

// Spreadsheet error tokens. A propagated input error keeps whatever token
// it arrived with; these constants cover the errors this package raises
// itself.
const (
	ErrorDIV   = "#DIV/0!"
	ErrorNA    = "#N/A"
	ErrorNUM   = "#NUM!"
	ErrorVALUE = "#VALUE!"
)

// CellRef is a live reference to a single cell owned by the surrounding
// engine. Value reads the cell's current value; it must be read-only and
// idempotent for the duration of one evaluation.
type CellRef interface {
	Value() FormulaArg
}

// FormulaArg is the tagged union over the payloads a formula argument can
// hold. Booleans are stored as numbers with the Boolean flag set.
type FormulaArg struct {
	Number  float64
	String  string
	Boolean bool
	Matrix  [][]FormulaArg
	Ref     CellRef
	Error   string
	Type    ArgType
}

// NewNumberArg constructs a number formula argument.
func NewNumberArg(n float64) FormulaArg {
	return FormulaArg{Type: ArgNumber, Number: n}
}

// NewStringArg constructs a string formula argument.
func NewStringArg(s string) FormulaArg {
	return FormulaArg{Type: ArgString, String: s}
}

// NewBoolArg constructs a boolean formula argument.
func NewBoolArg(b bool) FormulaArg {
	var n float64
	if b {
		n = 1
	}
	return FormulaArg{Type: ArgNumber, Number: n, Boolean: true}
}

// NewEmptyArg constructs an empty formula argument, the value of a blank
// cell.
func NewEmptyArg() FormulaArg {
	return FormulaArg{Type: ArgEmpty}
}

// NewErrorArg constructs an error formula argument carrying a spreadsheet
// error token and a human-readable message.
func NewErrorArg(token, msg string) FormulaArg {
	return FormulaArg{Type: ArgError, String: token, Error: msg}
}

// NewMatrixArg constructs a matrix formula argument from rectangular,
// row-major cell rows, the shape a range argument resolves to.
func NewMatrixArg(rows [][]FormulaArg) FormulaArg {
	return FormulaArg{Type: ArgMatrix, Matrix: rows}
}

// NewRefArg constructs a single-cell reference formula argument. The
// referenced value is read lazily at each access, not snapshotted.
func NewRefArg(ref CellRef) FormulaArg {
	return FormulaArg{Type: ArgRef, Ref: ref}
}

// Value returns the caller-facing string rendering of the argument: the
// number, the boolean literal, the string, or the error token.
func (fa FormulaArg) Value() string {
	switch fa.Type {
	case ArgNumber:
		if fa.Boolean {
			if fa.Number == 0 {
				return "FALSE"
			}
			return "TRUE"
		}
		return strconv.FormatFloat(fa.Number, 'f', -1, 64)
	case ArgString:
		return fa.String
	case ArgError:
		return fa.String
	}
	return ""
}
