package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/reactivity/reactive"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	widthKey  = "width"
	heightKey = "height"
	itersKey  = "iters"
)

var benchFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  widthKey,
		Usage: "Largest number of chains to run",
		Value: 100,
	},
	&cli.IntFlag{
		Name:  heightKey,
		Usage: "Largest chain length to run",
		Value: 100,
	},
	&cli.IntFlag{
		Name:  itersKey,
		Usage: "Writes measured per configuration",
		Value: 100,
	},
}

var sizes = []int{1, 10, 100, 1_000}

type benchSize struct {
	w, h int
}

// benchGrid lists every (width, height) pair from sizes within the limits.
func benchGrid(maxWidth, maxHeight int) []benchSize {
	var grid []benchSize
	for _, w := range sizes {
		for _, h := range sizes {
			if w > maxWidth || h > maxHeight {
				continue
			}
			grid = append(grid, benchSize{w: w, h: h})
		}
	}
	return grid
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	maxWidth := int(cmd.Int(widthKey))
	maxHeight := int(cmd.Int(heightKey))
	iters := int(cmd.Int(itersKey))
	for _, f := range []struct {
		key string
		v   int
	}{{widthKey, maxWidth}, {heightKey, maxHeight}, {itersKey, iters}} {
		if f.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", f.key, f.v)
		}
	}

	log.Printf("warming up")
	benchmarkPropagation(1, 1, iters)

	tbl := table.NewWriter()
	tbl.SetTitle("Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "computeds", "avg", "min", "p75", "p99", "max"})

	for _, size := range benchGrid(maxWidth, maxHeight) {
		calc := benchmarkPropagation(size.w, size.h, iters)
		tbl.AppendRow(table.Row{
			fmt.Sprintf("propagate: %d * %d", size.w, size.h),
			humanize.Comma(int64(size.w * size.h)),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		})
	}
	tbl.Render()
	return nil
}

// benchmarkPropagation builds w chains of h computed values over one source,
// each chain read by an effect, and times writes to the source.
func benchmarkPropagation(w, h, iters int) *tachymeter.Metrics {
	rs := reactive.CreateReactiveSystem(func(from *reactive.EffectRunner, err error) {
		log.Panic(err)
	}, reactive.WithMaxDepth(reactive.DefaultMaxDepth+h))

	src := reactive.NewRef(rs, 1)
	for i := 0; i < w; i++ {
		last := src.Value
		for j := 0; j < h; j++ {
			prev := last
			last = reactive.NewComputed(rs, func() int {
				return prev() + 1
			}).Value
		}
		reactive.Effect(rs, func() error {
			last()
			return nil
		})
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		src.SetValue(src.Peek() + 1)
		tach.AddTime(time.Since(start))
	}
	return tach.Calc()
}
