package main

import (
	"context"
	"log"
	"os"

	"github.com/delaneyj/reactivity/reactive"
	"github.com/urfave/cli/v3"
)

//go:generate qtc -dir=templates

const (
	priceKey    = "price"
	quantityKey = "quantity"
	discountKey = "discount"
	stepKey     = "step"
	outKey      = "out"
)

var cartFlags = []cli.Flag{
	&cli.FloatFlag{
		Name:  priceKey,
		Usage: "Initial unit price",
		Value: 5,
	},
	&cli.FloatFlag{
		Name:  quantityKey,
		Usage: "Initial quantity",
		Value: 2,
	},
	&cli.FloatFlag{
		Name:  discountKey,
		Usage: "Fraction taken off the price",
		Value: 0.1,
	},
	&cli.StringSliceFlag{
		Name:  stepKey,
		Usage: "Write applied after setup, as key=value; repeatable",
		Value: []string{"quantity=3", "price=10"},
	},
}

func main() {
	cmd := &cli.Command{
		Name:  "reactivity",
		Usage: "Explore push-based dependency tracking",
		Commands: []*cli.Command{
			{
				Name:   "cart",
				Usage:  "Run the shopping cart scenario and log every recomputation",
				Flags:  cartFlags,
				Action: runCart,
			},
			{
				Name:  "graph",
				Usage: "Print the cart's dependency graph as Graphviz DOT",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  outKey,
						Usage: "Write to this file instead of stdout",
					},
				}, cartFlags...),
				Action: runGraph,
			},
			{
				Name:   "inspect",
				Usage:  "Print the cart's dependency registry and counters",
				Flags:  cartFlags,
				Action: runInspect,
			},
			{
				Name:   "bench",
				Usage:  "Measure propagation through chains of computed values",
				Flags:  benchFlags,
				Action: runBench,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newSystem() *reactive.ReactiveSystem {
	return reactive.CreateReactiveSystem(func(from *reactive.EffectRunner, err error) {
		if from != nil {
			log.Printf("%s failed: %v", from, err)
			return
		}
		log.Printf("propagation failed: %v", err)
	})
}
