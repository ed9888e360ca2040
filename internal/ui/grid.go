package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// WeekGrid renders the life grid: one cell per week of the expected lifespan,
// laid out in rows of one year (52 columns). Cells up to the filled count are
// drawn in the primary color, the rest stay muted. The filled count is driven
// externally, one frame at a time, by the reveal animator.
type WeekGrid struct {
	widget.BaseWidget

	total  int
	filled int
}

// NewWeekGrid creates an empty grid.
func NewWeekGrid() *WeekGrid {
	g := &WeekGrid{}
	g.ExtendBaseWidget(g)
	return g
}

// SetTotal resizes the grid to the given number of cells. The filled count is
// clamped to the new size.
func (g *WeekGrid) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	if total == g.total {
		return
	}
	g.total = total
	if g.filled > total {
		g.filled = total
	}
	g.Refresh()
}

// SetFilled updates the number of highlighted cells, clamped to [0, total].
func (g *WeekGrid) SetFilled(n int) {
	if n < 0 {
		n = 0
	}
	if n > g.total {
		n = g.total
	}
	if n == g.filled {
		return
	}
	g.filled = n
	g.Refresh()
}

// Total returns the current cell count.
func (g *WeekGrid) Total() int {
	return g.total
}

// Filled returns the current highlighted cell count.
func (g *WeekGrid) Filled() int {
	return g.filled
}

// CreateRenderer implements fyne.Widget.
func (g *WeekGrid) CreateRenderer() fyne.WidgetRenderer {
	r := &weekGridRenderer{grid: g}
	r.sync()
	return r
}

type weekGridRenderer struct {
	grid    *WeekGrid
	cells   []*canvas.Rectangle
	objects []fyne.CanvasObject
}

// sync grows or shrinks the cell pool to match the grid size and recolors
// every cell from the filled count.
func (r *weekGridRenderer) sync() {
	for len(r.cells) < r.grid.total {
		r.cells = append(r.cells, canvas.NewRectangle(theme.Color(theme.ColorNameDisabledButton)))
	}
	r.cells = r.cells[:r.grid.total]

	lived := theme.Color(theme.ColorNamePrimary)
	rest := theme.Color(theme.ColorNameDisabledButton)
	for i, cell := range r.cells {
		if i < r.grid.filled {
			cell.FillColor = lived
		} else {
			cell.FillColor = rest
		}
	}

	r.objects = r.objects[:0]
	for _, cell := range r.cells {
		r.objects = append(r.objects, cell)
	}
}

func (r *weekGridRenderer) Layout(_ fyne.Size) {
	step := float32(config.GridCellSize + config.GridCellGap)
	size := fyne.NewSize(config.GridCellSize, config.GridCellSize)

	for i, cell := range r.cells {
		col := i % config.GridColumns
		row := i / config.GridColumns
		cell.Resize(size)
		cell.Move(fyne.NewPos(float32(col)*step, float32(row)*step))
	}
}

func (r *weekGridRenderer) MinSize() fyne.Size {
	if r.grid.total == 0 {
		return fyne.NewSize(0, 0)
	}
	rows := (r.grid.total + config.GridColumns - 1) / config.GridColumns
	step := config.GridCellSize + config.GridCellGap
	return fyne.NewSize(
		float32(config.GridColumns*step-config.GridCellGap),
		float32(rows*step-config.GridCellGap),
	)
}

func (r *weekGridRenderer) Refresh() {
	resized := len(r.cells) != r.grid.total
	r.sync()
	if resized {
		r.Layout(r.grid.Size())
	}
	canvas.Refresh(r.grid)
}

func (r *weekGridRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *weekGridRenderer) Destroy() {}
