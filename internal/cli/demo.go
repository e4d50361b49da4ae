package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/collision"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

// Demo board cell geometry. Terminal cells are the coordinate space: one
// cell is one unit, so mouse positions feed the detector directly.
const (
	demoColumnWidth = 26
	demoTaskHeight  = 3
	demoGap         = 1
	demoPadding     = 1
	demoHeaderRows  = 2 // title line + blank line above the board
)

// newDemoCmd creates the demo command, an interactive kanban board.
func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Interactive terminal kanban board with mouse dragging",
		Long: `Interactive terminal kanban board with mouse dragging.

Drag tasks between columns with the mouse. While dragging, the drop
placeholder shows where the task would land, computed by the same
detection pipeline the API and simulate command use. Press q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			zone.NewGlobal()
			m := newDemoModel()
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
			_, err := p.Run()
			return err
		},
	}
	return cmd
}

// demoTask is one card on the demo board.
type demoTask struct {
	id    string
	title string
}

// demoColumn is one column of cards.
type demoColumn struct {
	id    string
	title string
	tasks []demoTask
}

// demoModel is the bubbletea model for the demo board.
type demoModel struct {
	columns []demoColumn
	adapter *collision.Adapter
	root    board.Element

	draggedID string
	dropPos   *placeholder.Position
	status    string
}

// newDemoModel seeds the board with a small backlog.
func newDemoModel() *demoModel {
	m := &demoModel{
		columns: []demoColumn{
			{id: "todo", title: "To Do", tasks: []demoTask{
				{id: "write-docs", title: "Write docs"},
				{id: "fix-login", title: "Fix login bug"},
				{id: "add-tests", title: "Add tests"},
			}},
			{id: "in-progress", title: "In Progress", tasks: []demoTask{
				{id: "review-pr", title: "Review PR"},
				{id: "design-api", title: "Design API"},
			}},
			{id: "done", title: "Done", tasks: []demoTask{
				{id: "setup-ci", title: "Set up CI"},
			}},
		},
		adapter: collision.NewAdapter(nil, nil),
		status:  "drag a card with the mouse",
	}
	m.rebuildGeometry()
	return m
}

// rebuildGeometry rematerializes the element tree from the current column
// contents. Called after every drop.
func (m *demoModel) rebuildGeometry() {
	f := board.Fixture{
		Board: board.BoardSpec{Gap: demoGap, Padding: demoPadding},
	}
	for _, col := range m.columns {
		cs := board.ColumnSpec{ID: col.id, Title: col.title, Width: demoColumnWidth}
		for _, task := range col.tasks {
			cs.Tasks = append(cs.Tasks, board.TaskSpec{ID: task.id, Title: task.title, Height: demoTaskHeight})
		}
		f.Columns = append(f.Columns, cs)
	}
	root, err := f.Build()
	if err != nil {
		// The fixture is generated from in-memory state; ids are unique.
		panic(err)
	}
	m.root = root
}

func (m *demoModel) Init() tea.Cmd {
	return nil
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.startDrag(msg)
			}
		case tea.MouseActionMotion:
			if m.draggedID != "" {
				m.dropPos = m.detect(msg)
			}
		case tea.MouseActionRelease:
			if m.draggedID != "" && msg.Button == tea.MouseButtonLeft {
				m.finishDrag(msg)
			}
		}
	}
	return m, nil
}

// startDrag grabs the card under the mouse, if any.
func (m *demoModel) startDrag(msg tea.MouseMsg) {
	for _, col := range m.columns {
		for _, task := range col.tasks {
			if zone.Get(task.id).InBounds(msg) {
				m.draggedID = task.id
				m.dropPos = nil
				m.status = fmt.Sprintf("dragging %s", task.title)
				return
			}
		}
	}
}

// detect maps the mouse position into board space and runs one detection
// pass.
func (m *demoModel) detect(msg tea.MouseMsg) *placeholder.Position {
	pointer := geom.Point{X: float64(msg.X), Y: float64(msg.Y - demoHeaderRows)}
	matches := m.adapter.Detect(context.Background(), collision.Args{
		Active:     collision.Active{ID: m.draggedID},
		Droppables: collision.DroppablesFrom(m.root),
		Pointer:    pointer,
	})
	if len(matches) == 0 || matches[0].Data == nil {
		return nil
	}
	if matches[0].Data.Position == nil {
		// Empty column: drop appends, represented as a position with no
		// anchor so View can still highlight the column.
		return &placeholder.Position{ColumnID: matches[0].ID, Edge: placeholder.Below}
	}
	return matches[0].Data.Position
}

// finishDrag applies the drop and resets drag state.
func (m *demoModel) finishDrag(msg tea.MouseMsg) {
	pos := m.detect(msg)
	if pos != nil {
		m.applyDrop(pos)
		m.status = fmt.Sprintf("dropped into %s", pos.ColumnID)
	} else {
		m.status = "drop cancelled"
	}
	m.draggedID = ""
	m.dropPos = nil
	m.rebuildGeometry()
}

// applyDrop moves the dragged task to the position's column and anchor.
func (m *demoModel) applyDrop(pos *placeholder.Position) {
	var dragged demoTask
	found := false
	for ci := range m.columns {
		for ti, task := range m.columns[ci].tasks {
			if task.id == m.draggedID {
				dragged = task
				m.columns[ci].tasks = append(m.columns[ci].tasks[:ti], m.columns[ci].tasks[ti+1:]...)
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return
	}

	for ci := range m.columns {
		if m.columns[ci].id != pos.ColumnID {
			continue
		}
		idx := len(m.columns[ci].tasks)
		for ti, task := range m.columns[ci].tasks {
			if task.id == pos.TaskID {
				idx = ti
				if pos.Edge == placeholder.Below {
					idx = ti + 1
				}
				break
			}
		}
		tasks := m.columns[ci].tasks
		tasks = append(tasks[:idx], append([]demoTask{dragged}, tasks[idx:]...)...)
		m.columns[ci].tasks = tasks
		return
	}
}

// Demo styles.
var (
	demoColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Width(demoColumnWidth - 2).
			MarginRight(demoGap)

	demoTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	demoCardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Width(demoColumnWidth - 6)

	demoDraggedStyle = demoCardStyle.
				BorderForeground(colorDim).
				Foreground(colorDim)

	demoPlaceholderStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Width(demoColumnWidth - 6)
)

func (m *demoModel) View() string {
	rendered := make([]string, 0, len(m.columns))
	for _, col := range m.columns {
		rendered = append(rendered, m.viewColumn(col))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	view := demoTitleStyle.Render("kiradnd demo") +
		StyleDim.Render("  ·  q quits") + "\n\n" +
		body + "\n" +
		StyleDim.Render(m.status) + "\n"

	// Scan registers the zone markers so InBounds sees this frame's layout.
	return zone.Scan(view)
}

// viewColumn renders one column with the placeholder indicator inserted.
func (m *demoModel) viewColumn(col demoColumn) string {
	indicator := demoPlaceholderStyle.Render("──── drop here ────")

	parts := []string{demoTitleStyle.Render(col.title)}
	targeted := m.dropPos != nil && m.dropPos.ColumnID == col.id

	if targeted && m.dropPos.TaskID == "" {
		parts = append(parts, indicator)
	}
	for _, task := range col.tasks {
		if targeted && m.dropPos.TaskID == task.id && m.dropPos.Edge == placeholder.Above {
			parts = append(parts, indicator)
		}

		style := demoCardStyle
		if task.id == m.draggedID {
			style = demoDraggedStyle
		}
		parts = append(parts, zone.Mark(task.id, style.Render(task.title)))

		if targeted && m.dropPos.TaskID == task.id && m.dropPos.Edge == placeholder.Below {
			parts = append(parts, indicator)
		}
	}

	return demoColumnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
