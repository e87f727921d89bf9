package main

import (
	"context"
	"fmt"
	"os"

	"github.com/delaneyj/reactivity/cmd/reactivity/templates"
	"github.com/urfave/cli/v3"
)

func runGraph(ctx context.Context, cmd *cli.Command) error {
	rs := newSystem()
	if _, err := cartFromFlags(rs, cmd); err != nil {
		return err
	}

	out := cmd.String(outKey)
	if out == "" {
		templates.WriteGraphDOT(os.Stdout, rs.Snapshot())
		return nil
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create graph output: %w", err)
	}
	defer f.Close()
	templates.WriteGraphDOT(f, rs.Snapshot())
	return nil
}
