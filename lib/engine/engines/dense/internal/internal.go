package internal

import (
	"fmt"

	"github.com/ValentinKolb/vrpstate/lib/problem"
)

// --------------------------------------------------------------------------
// Cell Type (one slot of one row)
// --------------------------------------------------------------------------

// Cell stores a single slot value. Set distinguishes a stored nil from an absent value.
type Cell struct {
	Value any
	Set   bool
}

func (c Cell) String() string {
	if !c.Set {
		return "Cell{absent}"
	}
	return fmt.Sprintf("Cell{%v}", c.Value)
}

// GrowCells returns row extended to at least n cells.
// Cells beyond the previous length are always zero because rows never shrink.
func GrowCells(row []Cell, n int) []Cell {
	if n <= cap(row) {
		return row[:n]
	}
	grown := make([]Cell, n, max(n, 2*cap(row)))
	copy(grown, row)
	return grown
}

// --------------------------------------------------------------------------
// Rows Type (entity -> dense row -> slot)
// --------------------------------------------------------------------------

// Rows maps entity handles to dense rows of cells indexed by slot.
// Row storage is recycled after Reset; cells are zeroed so no stale references survive.
type Rows[K comparable] struct {
	index    map[K]int
	rows     [][]Cell
	used     int
	slotHint int
	live     int
}

// NewRows creates an empty table. slotHint is the initial slot capacity of new rows.
func NewRows[K comparable](rowHint, slotHint int) *Rows[K] {
	return &Rows[K]{
		index:    make(map[K]int, rowHint),
		rows:     make([][]Cell, 0, rowHint),
		slotHint: slotHint,
	}
}

// Put stores value in the slot of the row for key, allocating the row if needed.
func (r *Rows[K]) Put(key K, slot int, value any) {
	pos, ok := r.index[key]
	if !ok {
		pos = r.alloc()
		r.index[key] = pos
	}

	row := r.rows[pos]
	if slot >= len(row) {
		row = GrowCells(row, slot+1)
		r.rows[pos] = row
	}

	if !row[slot].Set {
		r.live++
	}
	row[slot] = Cell{Value: value, Set: true}
}

// Get returns the value in the slot of the row for key.
func (r *Rows[K]) Get(key K, slot int) (any, bool) {
	pos, ok := r.index[key]
	if !ok {
		return nil, false
	}
	row := r.rows[pos]
	if slot >= len(row) {
		return nil, false
	}
	c := row[slot]
	return c.Value, c.Set
}

// alloc hands out the next free row, reusing rows from before the last Reset.
func (r *Rows[K]) alloc() int {
	pos := r.used
	r.used++
	if pos < len(r.rows) {
		return pos
	}
	r.rows = append(r.rows, make([]Cell, 0, r.slotHint))
	return pos
}

// Reset drops all rows and values. Backing arrays are kept for reuse.
func (r *Rows[K]) Reset() {
	for i := 0; i < r.used; i++ {
		clear(r.rows[i])
	}
	clear(r.index)
	r.used = 0
	r.live = 0
}

// Len returns the number of rows in use.
func (r *Rows[K]) Len() int { return r.used }

// Live returns the number of set cells.
func (r *Rows[K]) Live() int { return r.live }

// RowSizes returns the slot length of every row in use.
func (r *Rows[K]) RowSizes() []float64 {
	sizes := make([]float64, r.used)
	for i := 0; i < r.used; i++ {
		sizes[i] = float64(len(r.rows[i]))
	}
	return sizes
}

// --------------------------------------------------------------------------
// VehicleRows Type (entity -> dense row -> vehicle position -> slot)
// --------------------------------------------------------------------------

// VehicleRows maps entity handles to rows that are split per vehicle position.
type VehicleRows[K comparable] struct {
	index    map[K]int
	rows     [][][]Cell
	used     int
	slotHint int
	vehicles *VehicleIndex
	live     int
}

// NewVehicleRows creates an empty table whose vehicle dimension follows vehicles.
func NewVehicleRows[K comparable](vehicles *VehicleIndex, rowHint, slotHint int) *VehicleRows[K] {
	return &VehicleRows[K]{
		index:    make(map[K]int, rowHint),
		rows:     make([][][]Cell, 0, rowHint),
		slotHint: slotHint,
		vehicles: vehicles,
	}
}

// Put stores value for key, vehicle and slot. Unknown vehicles are added to the index.
func (r *VehicleRows[K]) Put(key K, vehicle problem.Vehicle, slot int, value any) {
	vPos := r.vehicles.Position(vehicle)

	pos, ok := r.index[key]
	if !ok {
		pos = r.alloc()
		r.index[key] = pos
	}

	row := r.rows[pos]
	if vPos >= len(row) {
		grown := make([][]Cell, max(vPos+1, r.vehicles.Len()))
		copy(grown, row)
		row = grown
		r.rows[pos] = row
	}

	cells := row[vPos]
	if slot >= len(cells) {
		if cells == nil {
			cells = make([]Cell, 0, max(r.slotHint, slot+1))
		}
		cells = GrowCells(cells, slot+1)
		row[vPos] = cells
	}

	if !cells[slot].Set {
		r.live++
	}
	cells[slot] = Cell{Value: value, Set: true}
}

// Get returns the value for key, vehicle and slot. Unknown vehicles are never added.
func (r *VehicleRows[K]) Get(key K, vehicle problem.Vehicle, slot int) (any, bool) {
	vPos, ok := r.vehicles.Lookup(vehicle)
	if !ok {
		return nil, false
	}
	pos, ok := r.index[key]
	if !ok {
		return nil, false
	}
	row := r.rows[pos]
	if vPos >= len(row) {
		return nil, false
	}
	cells := row[vPos]
	if slot >= len(cells) {
		return nil, false
	}
	c := cells[slot]
	return c.Value, c.Set
}

func (r *VehicleRows[K]) alloc() int {
	pos := r.used
	r.used++
	if pos < len(r.rows) {
		return pos
	}
	r.rows = append(r.rows, make([][]Cell, r.vehicles.Len()))
	return pos
}

// Reset drops all rows and values. Backing arrays are kept for reuse.
func (r *VehicleRows[K]) Reset() {
	for i := 0; i < r.used; i++ {
		for _, cells := range r.rows[i] {
			clear(cells)
		}
	}
	clear(r.index)
	r.used = 0
	r.live = 0
}

// Len returns the number of rows in use.
func (r *VehicleRows[K]) Len() int { return r.used }

// Live returns the number of set cells.
func (r *VehicleRows[K]) Live() int { return r.live }

// --------------------------------------------------------------------------
// VehicleIndex Type (vehicle -> dense position)
// --------------------------------------------------------------------------

// VehicleIndex assigns dense positions to vehicles by identity.
// Positions are never reassigned, also not on Reset of the row tables.
type VehicleIndex struct {
	positions map[problem.Vehicle]int
	presized  int
}

// NewVehicleIndex creates an index pre-populated with vehicles in order.
// Duplicate vehicles keep their first position.
func NewVehicleIndex(vehicles []problem.Vehicle) *VehicleIndex {
	idx := &VehicleIndex{positions: make(map[problem.Vehicle]int, len(vehicles))}
	for _, v := range vehicles {
		idx.Position(v)
	}
	idx.presized = len(idx.positions)
	return idx
}

// Lookup returns the position of the vehicle if it is known.
func (v *VehicleIndex) Lookup(vehicle problem.Vehicle) (int, bool) {
	pos, ok := v.positions[vehicle]
	return pos, ok
}

// Position returns the position of the vehicle, assigning the next one if it is unknown.
func (v *VehicleIndex) Position(vehicle problem.Vehicle) int {
	if pos, ok := v.positions[vehicle]; ok {
		return pos
	}
	pos := len(v.positions)
	v.positions[vehicle] = pos
	return pos
}

// Len returns the number of known vehicles.
func (v *VehicleIndex) Len() int { return len(v.positions) }

// Presized returns the number of vehicles known at construction.
func (v *VehicleIndex) Presized() int { return v.presized }
