package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Items(ctx context.Context) error
	Refresh(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	Orders(ctx context.Context) error
	Checkout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l) items, refresh, add <item-id>, cart, orders, checkout, logout, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". Prompts inside handlers read from the same reader, so piped
// input is consumed line by line.
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  help, items | l, refresh, add <item-id>, cart, orders, checkout,
//	  logout, exit | quit
//
// Errors returned by handlers are ignored here; handlers report their own
// failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if a.isLoggedIn() {
			dispatchLoggedIn(ctx, a, cmd, args)
		} else {
			dispatchLoggedOut(ctx, a, cmd)
		}
	}
}

func dispatchLoggedOut(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx)
	case "items", "l", "refresh", "add", "cart", "orders", "checkout", "logout":
		printlnFn("Please log in first")
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchLoggedIn(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "items", "l":
		_ = a.Items(ctx)
	case "refresh":
		_ = a.Refresh(ctx)
	case "add":
		_ = a.Add(ctx, args)
	case "cart":
		_ = a.Cart(ctx)
	case "orders":
		_ = a.Orders(ctx)
	case "checkout":
		_ = a.Checkout(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "login", "register":
		printlnFn("Already logged in; logout first")
	default:
		printlnFn("Unknown command:", cmd)
	}
}
