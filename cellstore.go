package linreg

import "sync"

// CellStore is an in-memory cell-value collaborator organized by sheet. It
// is the reference implementation of the cell data a CellRef dereferences:
// regression arguments built with Ref read the store's current value on
// every access. Safe for concurrent readers; callers must not mutate the
// store while an evaluation that references it is in flight.
type CellStore struct {
	mu     sync.RWMutex
	sheets map[string]map[string]FormulaArg
}

// NewCellStore creates an empty cell store.
func NewCellStore() *CellStore {
	return &CellStore{
		sheets: make(map[string]map[string]FormulaArg),
	}
}

// Get returns the value of a cell and whether the cell is present.
func (cs *CellStore) Get(sheet, cell string) (FormulaArg, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if cells, ok := cs.sheets[sheet]; ok {
		value, exists := cells[cell]
		return value, exists
	}
	return FormulaArg{}, false
}

// Set stores the value of a cell, creating the sheet if needed.
func (cs *CellStore) Set(sheet, cell string, value FormulaArg) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.sheets[sheet]; !ok {
		cs.sheets[sheet] = make(map[string]FormulaArg)
	}
	cs.sheets[sheet][cell] = value
}

// DeleteSheet removes a sheet and all its cells.
func (cs *CellStore) DeleteSheet(sheet string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.sheets, sheet)
}

// Clear removes every sheet from the store.
func (cs *CellStore) Clear() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.sheets = make(map[string]map[string]FormulaArg)
}

// Len returns the total number of stored cells across all sheets.
func (cs *CellStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	total := 0
	for _, cells := range cs.sheets {
		total += len(cells)
	}
	return total
}

// SheetLen returns the number of stored cells on one sheet.
func (cs *CellStore) SheetLen(sheet string) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if cells, ok := cs.sheets[sheet]; ok {
		return len(cells)
	}
	return 0
}

// Ref returns a live reference to one cell. A missing cell dereferences to
// the empty argument, the value of a blank spreadsheet cell.
func (cs *CellStore) Ref(sheet, cell string) CellRef {
	return storeRef{store: cs, sheet: sheet, cell: cell}
}

type storeRef struct {
	store *CellStore
	sheet string
	cell  string
}

func (r storeRef) Value() FormulaArg {
	if value, ok := r.store.Get(r.sheet, r.cell); ok {
		return value
	}
	return NewEmptyArg()
}
