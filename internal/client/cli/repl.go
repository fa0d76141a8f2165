package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	SoilHealth(ctx context.Context) error
	PestAlerts(ctx context.Context) error
	Reports(ctx context.Context) error
	ProfitableCrops(ctx context.Context) error
	YieldForm(ctx context.Context) error
	YieldResults(ctx context.Context) error
	Irrigation(ctx context.Context) error
	LocalWeather(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the AgriVision client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// Command prompts share the same reader, so the loop must not buffer ahead
// of the current line.
//
// Any errors returned by command handlers are ignored here; handlers render
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "agv %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				fmt.Fprintln(w, "Available commands: dashboard, soil, pests, reports, crops, yield, results, irrigation, weather, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, register, weather, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "soil":
			_ = a.SoilHealth(ctx)

		case "pests":
			_ = a.PestAlerts(ctx)

		case "reports":
			_ = a.Reports(ctx)

		case "crops":
			_ = a.ProfitableCrops(ctx)

		case "yield":
			_ = a.YieldForm(ctx)

		case "results":
			_ = a.YieldResults(ctx)

		case "irrigation":
			_ = a.Irrigation(ctx)

		case "weather":
			_ = a.LocalWeather(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
