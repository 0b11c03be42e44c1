package linreg

import (
	"fmt"
	"math"
)

// Function selects which linear-regression coefficient an evaluation
// returns.
type Function byte

// Linear regression functions enumeration.
const (
	Intercept Function = iota
	Slope
)

func (f Function) name() string {
	if f == Intercept {
		return "INTERCEPT"
	}
	return "SLOPE"
}

// valueVector is a fixed-size, zero-based view over the cells of one
// formula argument, regardless of whether the argument was a literal, a
// single-cell reference or a range. Its size never changes after
// construction; item with an index outside [0, size) panics.
type valueVector interface {
	size() int
	item(index int) FormulaArg
}

// scalarVector presents a literal value as a vector of size 1.
type scalarVector struct {
	value FormulaArg
}

func (v scalarVector) size() int { return 1 }

func (v scalarVector) item(index int) FormulaArg {
	checkIndex(index, 1)
	return v.value
}

// refVector presents a single-cell reference as a vector of size 1. Each
// item call re-reads the referenced cell, so the value is never stale
// within an evaluation.
type refVector struct {
	ref CellRef
}

func (v refVector) size() int { return 1 }

func (v refVector) item(index int) FormulaArg {
	checkIndex(index, 1)
	return v.ref.Value()
}

// areaVector presents a rectangular range in row-major order: index i maps
// to row i/width, column i%width.
type areaVector struct {
	matrix [][]FormulaArg
	width  int
}

func newAreaVector(matrix [][]FormulaArg) areaVector {
	var width int
	if len(matrix) > 0 {
		width = len(matrix[0])
	}
	return areaVector{matrix: matrix, width: width}
}

func (v areaVector) size() int { return v.width * len(v.matrix) }

func (v areaVector) item(index int) FormulaArg {
	checkIndex(index, v.size())
	return v.matrix[index/v.width][index%v.width]
}

func checkIndex(index, size int) {
	if index < 0 || index >= size {
		panic(fmt.Sprintf("linreg: index %d outside range [0, %d)", index, size))
	}
}

// newValueVector normalizes one formula argument into a valueVector. An
// argument that is itself an error fails construction and is returned
// unchanged in errArg; the evaluation surfaces it before any computation.
func newValueVector(arg FormulaArg) (vv valueVector, errArg FormulaArg) {
	switch arg.Type {
	case ArgError:
		return nil, arg
	case ArgMatrix:
		return newAreaVector(arg.Matrix), FormulaArg{}
	case ArgRef:
		return refVector{ref: arg.Ref}, FormulaArg{}
	}
	return scalarVector{value: arg}, FormulaArg{}
}

// linearRegression runs the shared two-pass least-squares pipeline over two
// value vectors and selects one coefficient.
//
// Error handling behaves as if X were fully evaluated before Y: the first
// error found on the X side wins over any Y-side error, whatever their
// index order. An index contributes to the sums only when both sides hold
// plain numbers; booleans, strings and blanks are silently skipped. The
// means intentionally divide by the full pair count rather than the count
// of numeric pairs, matching established spreadsheet engine behavior.
func linearRegression(function Function, vvX, vvY valueVector) FormulaArg {
	size := vvX.size()
	if size == 0 || vvY.size() != size {
		return NewErrorArg(ErrorNA, fmt.Sprintf("%s requires operands of equal size", function.name()))
	}

	var firstXerr, firstYerr *FormulaArg
	var accumulatedSome bool

	// first pass: sum the numeric pairs and compute the means
	var sumx, sumy float64
	for i := 0; i < size; i++ {
		vx, vy := vvX.item(i), vvY.item(i)
		if vx.Type == ArgError {
			if firstXerr == nil {
				firstXerr = &vx
				continue
			}
		}
		if vy.Type == ArgError {
			if firstYerr == nil {
				firstYerr = &vy
				continue
			}
		}
		// a pair counts only when both elements are plain numbers
		if vx.Type == ArgNumber && !vx.Boolean && vy.Type == ArgNumber && !vy.Boolean {
			accumulatedSome = true
			sumx += vx.Number
			sumy += vy.Number
		}
	}
	xbar := sumx / float64(size)
	ybar := sumy / float64(size)

	// second pass: variance and covariance about the means, with the same
	// error-recording state carried over
	var sxx, sxy float64
	for i := 0; i < size; i++ {
		vx, vy := vvX.item(i), vvY.item(i)
		if vx.Type == ArgError {
			if firstXerr == nil {
				firstXerr = &vx
				continue
			}
		}
		if vy.Type == ArgError {
			if firstYerr == nil {
				firstYerr = &vy
				continue
			}
		}
		if vx.Type == ArgNumber && !vx.Boolean && vy.Type == ArgNumber && !vy.Boolean {
			sxx += (vx.Number - xbar) * (vx.Number - xbar)
			sxy += (vx.Number - xbar) * (vy.Number - ybar)
		}
	}
	slope := sxy / sxx
	intercept := ybar - slope*xbar

	if firstXerr != nil {
		return *firstXerr
	}
	if firstYerr != nil {
		return *firstYerr
	}
	if !accumulatedSome {
		return NewErrorArg(ErrorDIV, fmt.Sprintf("%s found no numeric pair", function.name()))
	}

	result := slope
	if function == Intercept {
		result = intercept
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return NewErrorArg(ErrorNUM, fmt.Sprintf("%s result is not a finite number", function.name()))
	}
	return NewNumberArg(result)
}

// Evaluate computes one linear-regression coefficient from two formula
// arguments, arg0 holding the x values and arg1 the y values. It returns a
// number argument on success and an error argument otherwise; input errors
// propagate with their original token.
func Evaluate(function Function, arg0, arg1 FormulaArg) FormulaArg {
	vvX, errArg := newValueVector(arg0)
	if errArg.Type == ArgError {
		return errArg
	}
	vvY, errArg := newValueVector(arg1)
	if errArg.Type == ArgError {
		return errArg
	}
	return linearRegression(function, vvX, vvY)
}

// Calc evaluates a linear-regression function with the arity checking the
// surrounding engine would normally perform: anything but exactly two
// arguments yields a #VALUE! error.
func Calc(function Function, args ...FormulaArg) FormulaArg {
	if len(args) != 2 {
		return NewErrorArg(ErrorVALUE, fmt.Sprintf("%s requires 2 arguments", function.name()))
	}
	return Evaluate(function, args[0], args[1])
}

// SLOPE function returns the slope of the least-squares regression line
// through the given x and y values.
func SLOPE(xs, ys FormulaArg) FormulaArg {
	return Evaluate(Slope, xs, ys)
}

// INTERCEPT function returns the point at which the least-squares
// regression line through the given x and y values crosses the y-axis.
func INTERCEPT(xs, ys FormulaArg) FormulaArg {
	return Evaluate(Intercept, xs, ys)
}
