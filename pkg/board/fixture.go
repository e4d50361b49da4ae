package board

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/vietanhdev/kirapilot-dnd/pkg/errors"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
)

// Layout defaults applied when a fixture omits dimensions.
const (
	DefaultColumnWidth = 280.0
	DefaultTaskHeight  = 48.0
	DefaultGap         = 8.0
	DefaultPadding     = 8.0
)

// Fixture is a declarative board description, decodable from TOML (CLI
// fixtures) and JSON (web API requests).
type Fixture struct {
	Board   BoardSpec    `toml:"board" json:"board"`
	Columns []ColumnSpec `toml:"columns" json:"columns"`
}

// BoardSpec describes the overall frame.
type BoardSpec struct {
	Width   float64 `toml:"width" json:"width"`
	Height  float64 `toml:"height" json:"height"`
	Gap     float64 `toml:"gap" json:"gap"`
	Padding float64 `toml:"padding" json:"padding"`
}

// ColumnSpec describes one droppable column.
// X may be omitted; columns are then laid out left to right.
type ColumnSpec struct {
	ID    string     `toml:"id" json:"id"`
	Title string     `toml:"title" json:"title"`
	X     float64    `toml:"x" json:"x"`
	Width float64    `toml:"width" json:"width"`
	Tasks []TaskSpec `toml:"tasks" json:"tasks"`
}

// TaskSpec describes one draggable item.
type TaskSpec struct {
	ID     string  `toml:"id" json:"id"`
	Title  string  `toml:"title" json:"title"`
	Height float64 `toml:"height" json:"height"`
}

// LoadFixture decodes a TOML fixture from r.
func LoadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "decode board fixture")
	}
	return &f, nil
}

// Build materializes the fixture into an element tree rooted at a single
// board node. Column and task rectangles are computed from the fixture's
// dimensions: columns side by side, tasks stacked top to bottom with the
// configured gap.
//
// Missing ids are filled with generated UUIDs so fixtures can stay terse.
// Duplicate ids are rejected.
func (f *Fixture) Build() (*Node, error) {
	if len(f.Columns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidBoard, "board has no columns")
	}

	gap := f.Board.Gap
	if gap == 0 {
		gap = DefaultGap
	}
	padding := f.Board.Padding
	if padding == 0 {
		padding = DefaultPadding
	}

	seen := make(map[string]bool)
	claim := func(id string) (string, error) {
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return "", errors.New(errors.ErrCodeInvalidBoard, "duplicate id %q", id)
		}
		seen[id] = true
		return id, nil
	}

	height := f.Board.Height
	if height == 0 {
		height = f.tallestColumn(gap, padding)
	}

	root := NewNode("board", geom.RectAt(0, 0, f.frameWidth(gap), height))

	x := 0.0
	for _, cs := range f.Columns {
		id, err := claim(cs.ID)
		if err != nil {
			return nil, err
		}

		width := cs.Width
		if width == 0 {
			width = DefaultColumnWidth
		}
		left := cs.X
		if left == 0 && x > 0 {
			left = x
		}

		col := NewNode(id, geom.RectAt(left, 0, width, height))
		col.SetAttr(AttrColumnID, id)

		y := padding
		for _, ts := range cs.Tasks {
			taskID, err := claim(ts.ID)
			if err != nil {
				return nil, err
			}
			h := ts.Height
			if h == 0 {
				h = DefaultTaskHeight
			}
			task := NewNode(taskID, geom.RectAt(left+padding, y, width-2*padding, h))
			task.SetAttr(AttrTaskID, taskID)
			col.Append(task)
			y += h + gap
		}

		root.Append(col)
		x = left + width + gap
	}

	return root, nil
}

// frameWidth returns the total width covered by the fixture's columns.
func (f *Fixture) frameWidth(gap float64) float64 {
	if f.Board.Width > 0 {
		return f.Board.Width
	}
	// Without an explicit frame width, size to whichever is larger: the
	// rightmost explicit column edge or the packed row of columns.
	maxRight := 0.0
	total := 0.0
	for _, cs := range f.Columns {
		cw := cs.Width
		if cw == 0 {
			cw = DefaultColumnWidth
		}
		if cs.X+cw > maxRight {
			maxRight = cs.X + cw
		}
		total += cw + gap
	}
	if total > maxRight {
		return total
	}
	return maxRight
}

// tallestColumn returns the height needed to fit the fullest column.
func (f *Fixture) tallestColumn(gap, padding float64) float64 {
	max := 0.0
	for _, cs := range f.Columns {
		h := padding
		for _, ts := range cs.Tasks {
			th := ts.Height
			if th == 0 {
				th = DefaultTaskHeight
			}
			h += th + gap
		}
		h += padding
		if h > max {
			max = h
		}
	}
	return max
}
