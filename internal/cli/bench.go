package cli

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
	"github.com/vietanhdev/kirapilot-dnd/pkg/perf"
	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

// newBenchCmd creates the bench command for measuring detection latency.
func newBenchCmd() *cobra.Command {
	var (
		columns int
		tasks   int
		passes  int
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark collision detection against the frame budget",
		Long: `Benchmark collision detection against the frame budget.

The bench command builds a synthetic board and runs detection passes with
random pointer positions, comparing the linear scan against the spatially
indexed binary search. Both must stay under the 16ms frame budget at the
95th percentile for dragging to feel smooth at 60fps.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), columns, tasks, passes, seed)
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 3, "number of columns on the synthetic board")
	cmd.Flags().IntVar(&tasks, "tasks", 200, "tasks per column")
	cmd.Flags().IntVar(&passes, "passes", 10000, "detection passes to run")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for pointer positions")

	return cmd
}

// runBench builds the synthetic board and measures both detection paths.
func runBench(ctx context.Context, columns, tasks, passes int, seed int64) error {
	logger := loggerFromContext(ctx)

	fixture := syntheticFixture(columns, tasks)
	root, err := fixture.Build()
	if err != nil {
		return fmt.Errorf("build synthetic board: %w", err)
	}
	frame := root.Rect()

	logger.Debug("synthetic board built",
		"columns", columns,
		"tasks_per_column", tasks,
		"frame", frame)

	// Pre-read the sorted bounds per column so the measurement isolates the
	// detection algorithms from geometry capture.
	reader := placeholder.NewReader(nil)
	cols := board.Columns(root)
	bounds := make([][]placeholder.Bounds, len(cols))
	ids := make([]string, len(cols))
	for i, col := range cols {
		ids[i] = board.ColumnID(col)
		bounds[i] = reader.ColumnTaskBounds(col, "")
	}

	rng := rand.New(rand.NewSource(seed))
	points := make([]geom.Point, passes)
	cells := make([]int, passes)
	for i := range points {
		cells[i] = rng.Intn(len(cols))
		points[i] = geom.Point{
			X: rng.Float64() * frame.Width(),
			Y: rng.Float64()*frame.Height()*1.1 - frame.Height()*0.05,
		}
	}

	prog := newProgress(logger)

	linear := perf.NewMonitor()
	for i := 0; i < passes; i++ {
		c := cells[i]
		linear.Track(func() {
			placeholder.Calculate(points[i], bounds[c], ids[c], "")
		})
	}

	indexed := perf.NewMonitor()
	for i := 0; i < passes; i++ {
		c := cells[i]
		indexed.Track(func() {
			placeholder.DetectCollision(points[i], bounds[c], ids[c], "")
		})
	}

	prog.done(fmt.Sprintf("Ran %d detection passes", 2*passes))

	printNewline()
	fmt.Println(StyleTitle.Render("Detection latency") + StyleDim.Render(fmt.Sprintf(" (%d tasks/column, last %d samples)", tasks, linear.Stats().Count)))
	printKeyValue("linear", linear.Stats().String())
	printKeyValue("indexed", indexed.Stats().String())
	printNewline()

	reportBudget("linear scan", linear)
	reportBudget("indexed search", indexed)
	return nil
}

// reportBudget prints whether a monitor's window fits the frame budget.
func reportBudget(name string, m *perf.Monitor) {
	if m.Acceptable() {
		printSuccess("%s within frame budget (p95 %s < %s)", name, m.Stats().P95, perf.FrameBudget)
	} else {
		printError("%s over frame budget (p95 %s >= %s)", name, m.Stats().P95, perf.FrameBudget)
	}
}

// syntheticFixture lays out a board with the given shape at default task
// dimensions.
func syntheticFixture(columns, tasks int) board.Fixture {
	f := board.Fixture{}
	for c := 0; c < columns; c++ {
		col := board.ColumnSpec{ID: fmt.Sprintf("col-%d", c)}
		for t := 0; t < tasks; t++ {
			col.Tasks = append(col.Tasks, board.TaskSpec{ID: fmt.Sprintf("col-%d-task-%d", c, t)})
		}
		f.Columns = append(f.Columns, col)
	}
	return f
}
