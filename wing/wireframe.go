package wing

import "gonum.org/v1/gonum/spatial/r3"

// Wireframe is the dense station by element grid of cells. Sections with
// fewer elements than the widest section are padded with absent cells.
type Wireframe struct {
	z     []float64
	cells [][]Cell // [station][element]
	nelem int
}

// NewWireframe arranges sections in the given station order.
func NewWireframe(sections []Section) *Wireframe {
	w := &Wireframe{
		z:     make([]float64, len(sections)),
		cells: make([][]Cell, len(sections)),
	}
	for _, s := range sections {
		w.nelem = max(w.nelem, len(s.Cells))
	}
	for i, s := range sections {
		w.z[i] = s.Z
		row := make([]Cell, w.nelem)
		copy(row, s.Cells)
		w.cells[i] = row
	}
	return w
}

// Stations returns the number of stations.
func (w *Wireframe) Stations() int { return len(w.cells) }

// Elements returns the number of element columns.
func (w *Wireframe) Elements() int { return w.nelem }

// Z returns the span fraction of station i.
func (w *Wireframe) Z(i int) float64 { return w.z[i] }

// At returns the cell of element j at station i.
func (w *Wireframe) At(i, j int) Cell { return w.cells[i][j] }

// Present returns the presence of element j at every station.
func (w *Wireframe) Present(j int) []bool {
	p := make([]bool, len(w.cells))
	for i := range w.cells {
		p[i] = w.cells[i][j].Present()
	}
	return p
}

// LoftGroup is a maximal run of consecutive stations at which one element
// is present. Curves are ordered by station.
type LoftGroup struct {
	Element  int
	Stations []int
	Curves   [][]r3.Vec
}

// LoftGroups partitions every element column into its loftable runs.
// Runs never bridge an absent station and runs of a single station are dropped.
// Groups are ordered by element, then by first station.
func (w *Wireframe) LoftGroups() []LoftGroup {
	var groups []LoftGroup
	for j := 0; j < w.nelem; j++ {
		for _, run := range groupRuns(w.Present(j)) {
			g := LoftGroup{Element: j, Stations: run, Curves: make([][]r3.Vec, len(run))}
			for k, i := range run {
				g.Curves[k] = w.cells[i][j].Curve()
			}
			groups = append(groups, g)
		}
	}
	return groups
}

// groupRuns returns the index runs of consecutive true values of length two or more.
func groupRuns(present []bool) [][]int {
	var runs [][]int
	var run []int
	flush := func() {
		if len(run) >= 2 {
			runs = append(runs, run)
		}
		run = nil
	}
	for i, p := range present {
		if !p {
			flush()
			continue
		}
		run = append(run, i)
	}
	flush()
	return runs
}
