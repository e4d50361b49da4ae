package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/collision"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
)

// newSimulateCmd creates the simulate command for computing placeholder
// decisions over a board fixture.
func newSimulateCmd() *cobra.Command {
	var (
		pointers  []string
		draggedID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate [board.toml]",
		Short: "Compute placeholder decisions for pointer positions over a board fixture",
		Long: `Compute placeholder decisions for pointer positions over a board fixture.

The simulate command loads a TOML board fixture, builds the element tree,
and runs collision detection for each --pointer position, printing where
the drop placeholder would render. Pass --dragged to exclude a task as the
item being dragged, which also reports whether the drop would be a
same-column reorder.

Repeat --pointer to trace a pointer path through the board.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), args[0], pointers, draggedID, asJSON)
		},
	}

	cmd.Flags().StringArrayVarP(&pointers, "pointer", "p", nil, "pointer position as x,y (repeatable)")
	cmd.Flags().StringVarP(&draggedID, "dragged", "d", "", "task id being dragged (excluded from anchors)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit decisions as JSON")
	_ = cmd.MarkFlagRequired("pointer")

	return cmd
}

// simDecision is one simulated detection result.
type simDecision struct {
	Pointer    geom.Point        `json:"pointer"`
	Matches    []collision.Match `json:"matches"`
	SameColumn bool              `json:"sameColumn"`
}

// runSimulate loads the fixture and runs one detection pass per pointer.
func runSimulate(ctx context.Context, path string, pointers []string, draggedID string, asJSON bool) error {
	logger := loggerFromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer f.Close()

	fixture, err := board.LoadFixture(f)
	if err != nil {
		return fmt.Errorf("load fixture %s: %w", path, err)
	}
	root, err := fixture.Build()
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}

	logger.Debug("board built",
		"columns", len(board.Columns(root)),
		"tasks", len(board.Tasks(root)))

	adapter := collision.NewAdapter(nil, nil)
	droppables := collision.DroppablesFrom(root)

	var decisions []simDecision
	for _, raw := range pointers {
		pointer, err := parsePointer(raw)
		if err != nil {
			return err
		}
		matches := adapter.Detect(ctx, collision.Args{
			Active:     collision.Active{ID: draggedID},
			Droppables: droppables,
			Pointer:    pointer,
		})
		d := simDecision{Pointer: pointer, Matches: matches}
		if len(matches) > 0 && matches[0].Data != nil {
			d.SameColumn = matches[0].Data.SameColumn
		}
		decisions = append(decisions, d)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decisions)
	}

	for _, d := range decisions {
		printDecision(d)
	}
	return nil
}

// printDecision renders one decision for terminal output.
func printDecision(d simDecision) {
	at := fmt.Sprintf("(%g, %g)", d.Pointer.X, d.Pointer.Y)
	if len(d.Matches) == 0 {
		printWarning("%s no column under pointer", at)
		return
	}
	m := d.Matches[0]
	if m.Data == nil || m.Data.Position == nil {
		printInfo("%s column %s is empty, drop appends", at, m.ID)
		return
	}
	printSuccess("%s placeholder %s", at, m.Data.Position)
	if d.SameColumn {
		printDetail("same-column reorder")
	}
}

// parsePointer parses an "x,y" flag value.
func parsePointer(raw string) (geom.Point, error) {
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return geom.Point{}, fmt.Errorf("invalid pointer %q: expected x,y", raw)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid pointer x in %q: %w", raw, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid pointer y in %q: %w", raw, err)
	}
	return geom.Point{X: x, Y: y}, nil
}
