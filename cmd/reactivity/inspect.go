package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/delaneyj/reactivity/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func runInspect(ctx context.Context, cmd *cli.Command) error {
	rs := newSystem()
	if _, err := cartFromFlags(rs, cmd); err != nil {
		return err
	}
	renderInspect(os.Stdout, rs)
	return nil
}

func renderInspect(w io.Writer, rs *reactive.ReactiveSystem) {
	snap := rs.Snapshot()
	names := map[reactive.EffectID]string{}
	for _, e := range snap.Effects {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("effect#%d", e.ID)
		}
		names[e.ID] = name
	}

	deps := tablewriter.NewWriter(w)
	deps.SetHeader([]string{"target", "label", "key", "subscribers"})
	for _, t := range snap.Targets {
		if len(t.Keys) == 0 {
			deps.Append([]string{fmt.Sprint(t.ID), t.Label, "-", "-"})
			continue
		}
		for _, k := range t.Keys {
			subs := make([]string, 0, len(k.Effects))
			for _, id := range k.Effects {
				subs = append(subs, names[id])
			}
			deps.Append([]string{fmt.Sprint(t.ID), t.Label, k.Key, strings.Join(subs, ", ")})
		}
	}
	deps.Render()

	effects := tablewriter.NewWriter(w)
	effects.SetHeader([]string{"effect", "deps", "runs"})
	for _, e := range snap.Effects {
		effects.Append([]string{
			names[e.ID],
			fmt.Sprint(e.Deps),
			humanize.Comma(int64(e.Runs)),
		})
	}
	effects.Render()

	stats := rs.Stats()
	counters := tablewriter.NewWriter(w)
	counters.SetHeader([]string{"counter", "value"})
	counters.AppendBulk([][]string{
		{"targets", humanize.Comma(int64(stats.Targets))},
		{"dependency sets", humanize.Comma(int64(stats.DependencySets))},
		{"subscriptions", humanize.Comma(int64(stats.Subscriptions))},
		{"effects", humanize.Comma(int64(stats.Effects))},
		{"runs", humanize.Comma(int64(stats.Runs))},
		{"triggers", humanize.Comma(int64(stats.Triggers))},
		{"digest", fmt.Sprintf("%016x", rs.Digest())},
	})
	counters.Render()
}
