package placeholder

import (
	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/errors"
)

// Validate checks that a previously computed position still matches the
// element tree under root, returning nil when it does. It re-resolves both
// the referenced column and task and confirms the column still contains
// the task.
//
// Hosts call this after any mutation that might have moved or removed
// elements (a reorder committing, a task deletion); a stale position should
// be discarded and recomputed on the next pointer event.
func Validate(pos *Position, root board.Element) error {
	if pos == nil {
		return errors.New(errors.ErrCodeInvalidPosition, "position is nil")
	}
	if root == nil {
		return errors.New(errors.ErrCodeInvalidBoard, "board root is nil")
	}
	if pos.TaskID == "" {
		return errors.New(errors.ErrCodeInvalidPosition, "position has no task id")
	}
	if pos.ColumnID == "" {
		return errors.New(errors.ErrCodeInvalidPosition, "position has no column id")
	}
	if pos.Edge != Above && pos.Edge != Below {
		return errors.New(errors.ErrCodeInvalidPosition, "unknown edge %q", pos.Edge)
	}

	column := board.FindByAttr(root, board.AttrColumnID, pos.ColumnID)
	if column == nil {
		return errors.New(errors.ErrCodeColumnNotFound, "column %q is not on the board", pos.ColumnID)
	}
	if !board.Contains(column, board.AttrTaskID, pos.TaskID) {
		return errors.New(errors.ErrCodeTaskNotFound, "task %q is not in column %q", pos.TaskID, pos.ColumnID)
	}
	return nil
}
