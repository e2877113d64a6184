// paywatch follows one checkout session until it settles, using the same
// status endpoint the landing page polls. Exit code 0 means approved, 1
// failed, 2 still pending after the attempt cap.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gift-registry-service/internal/client"
	"gift-registry-service/internal/poller"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "service base URL")
	preferenceID := flag.String("preference", "", "checkout preference id to watch")
	interval := flag.Duration("interval", poller.DefaultInterval, "poll interval")
	attempts := flag.Int("attempts", poller.DefaultMaxAttempts, "max poll attempts")
	flag.Parse()

	if *preferenceID == "" {
		fmt.Fprintln(os.Stderr, "missing -preference")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statusClient := client.NewStatusClient(*baseURL)
	watcher := poller.New(statusClient, *interval, *attempts, func(state poller.State) {
		fmt.Printf("%s  %s\n", time.Now().Format(time.TimeOnly), state)
	})

	state, err := watcher.Run(ctx, *preferenceID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "watch aborted:", err)
		os.Exit(2)
	}

	switch state {
	case poller.StateApproved:
		os.Exit(0)
	case poller.StateFailed:
		os.Exit(1)
	default:
		os.Exit(2)
	}
}
