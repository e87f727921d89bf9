package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/delaneyj/reactivity/reactive"
	"github.com/urfave/cli/v3"
)

type cart struct {
	product   *reactive.Observable[string, float64]
	salePrice *reactive.Computed[float64]
	total     *reactive.Computed[float64]
}

func newCart(rs *reactive.ReactiveSystem, price, quantity, discount float64) *cart {
	product := reactive.Observe(rs, map[string]float64{
		priceKey:    price,
		quantityKey: quantity,
		discountKey: discount,
	}).Named("product")

	salePrice := reactive.NewComputed(rs, func() float64 {
		return product.Get(priceKey) * (1 - product.Get(discountKey))
	}, reactive.WithName("salePrice"))

	total := reactive.NewComputed(rs, func() float64 {
		return salePrice.Value() * product.Get(quantityKey)
	}, reactive.WithName("total"))

	return &cart{
		product:   product,
		salePrice: salePrice,
		total:     total,
	}
}

// apply parses a key=value step and writes it into the product.
func (c *cart) apply(step string) error {
	key, raw, ok := strings.Cut(step, "=")
	if !ok {
		return fmt.Errorf("step %q: expected key=value", step)
	}
	key = strings.TrimSpace(key)
	if _, known := c.product.Lookup(key); !known {
		return fmt.Errorf("step %q: unknown key %q", step, key)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("step %q: %w", step, err)
	}
	c.product.Set(key, v)
	return nil
}

func cartFromFlags(rs *reactive.ReactiveSystem, cmd *cli.Command) (*cart, error) {
	c := newCart(rs, cmd.Float(priceKey), cmd.Float(quantityKey), cmd.Float(discountKey))
	for _, step := range cmd.StringSlice(stepKey) {
		if err := c.apply(step); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func runCart(ctx context.Context, cmd *cli.Command) error {
	rs := newSystem()
	c := newCart(rs, cmd.Float(priceKey), cmd.Float(quantityKey), cmd.Float(discountKey))

	stop := reactive.Effect(rs, func() error {
		log.Printf("salePrice=%g total=%g", c.salePrice.Value(), c.total.Value())
		return nil
	}, reactive.WithName("logger"))
	defer stop()

	for _, step := range cmd.StringSlice(stepKey) {
		log.Printf("set %s", step)
		if err := c.apply(step); err != nil {
			return err
		}
	}
	return nil
}
