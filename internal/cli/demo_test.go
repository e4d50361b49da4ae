package cli

import (
	"testing"

	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

func taskIDs(col demoColumn) []string {
	out := make([]string, len(col.tasks))
	for i, task := range col.tasks {
		out[i] = task.id
	}
	return out
}

func assertOrder(t *testing.T, col demoColumn, want ...string) {
	t.Helper()
	got := taskIDs(col)
	if len(got) != len(want) {
		t.Fatalf("column %s = %v, want %v", col.id, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %s = %v, want %v", col.id, got, want)
		}
	}
}

func TestApplyDropAbove(t *testing.T) {
	m := newDemoModel()
	m.draggedID = "add-tests"
	m.applyDrop(&placeholder.Position{TaskID: "write-docs", Edge: placeholder.Above, ColumnID: "todo"})

	assertOrder(t, m.columns[0], "add-tests", "write-docs", "fix-login")
}

func TestApplyDropBelow(t *testing.T) {
	m := newDemoModel()
	m.draggedID = "write-docs"
	m.applyDrop(&placeholder.Position{TaskID: "fix-login", Edge: placeholder.Below, ColumnID: "todo"})

	assertOrder(t, m.columns[0], "fix-login", "write-docs", "add-tests")
}

func TestApplyDropCrossColumn(t *testing.T) {
	m := newDemoModel()
	m.draggedID = "write-docs"
	m.applyDrop(&placeholder.Position{TaskID: "review-pr", Edge: placeholder.Below, ColumnID: "in-progress"})

	assertOrder(t, m.columns[0], "fix-login", "add-tests")
	assertOrder(t, m.columns[1], "review-pr", "write-docs", "design-api")
}

func TestApplyDropEmptyAnchorAppends(t *testing.T) {
	m := newDemoModel()
	m.draggedID = "write-docs"
	// An empty-column drop carries no anchor task.
	m.applyDrop(&placeholder.Position{ColumnID: "done", Edge: placeholder.Below})

	assertOrder(t, m.columns[2], "setup-ci", "write-docs")
}

func TestApplyDropUnknownDraggedIsNoop(t *testing.T) {
	m := newDemoModel()
	m.draggedID = "ghost"
	m.applyDrop(&placeholder.Position{TaskID: "write-docs", Edge: placeholder.Above, ColumnID: "todo"})

	assertOrder(t, m.columns[0], "write-docs", "fix-login", "add-tests")
}
