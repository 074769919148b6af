package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stationq/internal/app"
	"stationq/internal/queue"
)

const usageText = `stationq manages the station's durable task queue.

Usage:
  stationq [-config path] <command> [argument]

Commands:
  add <task[,priority[,option,...]]>
        queue one task; valid tasks: backup_ftp, measure, set_clock_gnss,
        set_station_params, vacuum_. Priority 1 or 2 (default 2); any
        further fields are passed to the worker as options.
        Example: stationq add measure,1,fast
  list  display all undone tasks in the queue
  cron  queue a measurement if inside the configured window (for cron)
  boot  mark that the system restarted and clock/location need setup
  run   stay resident and fire the cron check on the configured schedule
`

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./stationq.yaml", "path to config file (yaml or json)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usageText) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	code := dispatch(ctx, a, flag.Args())
	a.Close()
	os.Exit(code)
}

func dispatch(ctx context.Context, a *app.App, args []string) int {
	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "add requires a task argument")
			return 2
		}
		err := a.Add(ctx, args[1])
		if errors.Is(err, queue.ErrUnknownAction) {
			fmt.Fprintln(os.Stderr, "no valid task was provided")
			return 1
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error while adding task to queue:", err)
			return 1
		}
		return 0

	case "list":
		if err := a.List(ctx, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "error while listing queue:", err)
			return 1
		}
		return 0

	case "cron":
		// Suppressed is a normal outcome; only real failures exit non-zero.
		if _, err := a.Cron(ctx); err != nil {
			return 1
		}
		return 0

	case "boot":
		if err := a.Boot(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "error while setting boot marker:", err)
			return 1
		}
		return 0

	case "run":
		if err := a.Run(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		flag.Usage()
		return 2
	}
}
