package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shopcart/internal/client/shop"
)

var errAddUsage = errors.New("usage: add <item-id>")

// Items prints the catalog currently held by the controller.
func (a *App) Items(_ context.Context) error {
	items := a.shop.Items()
	if len(items) == 0 {
		printlnFn("No items available (try 'refresh')")
		return nil
	}

	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "#%d %s - $%s", it.ID, it.Name, shop.FormatPrice(it.Price))
		if it.Description != "" {
			fmt.Fprintf(&b, "\n    %s", it.Description)
		}
		b.WriteByte('\n')
	}
	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}

// Refresh reloads the catalog from the server and prints it.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.shop.FetchItems(ctx); err != nil {
		return err
	}
	return a.Items(ctx)
}

// Add puts one unit of the item named by args[0] into the cart.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: add <item-id>")
		return errAddUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid item id:", args[0])
		return fmt.Errorf("invalid item id %q: %w", args[0], err)
	}
	return a.shop.AddToCart(ctx, id)
}

func (a *App) Cart(ctx context.Context) error {
	return a.shop.ShowCart(ctx)
}

func (a *App) Orders(ctx context.Context) error {
	return a.shop.ShowOrderHistory(ctx)
}

func (a *App) Checkout(ctx context.Context) error {
	return a.shop.Checkout(ctx)
}
