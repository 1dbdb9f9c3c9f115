package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/pouriyajamshidi/tcprobe"
	"github.com/pouriyajamshidi/tcprobe/dns"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

const shutdownTimeout = 5 * time.Second

// Run executes the tcprobe application and returns an exit code
func Run() int {
	config, err := ProcessUserInput(os.Args[1:])
	if err != nil {
		return handleError(err, nil)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		config.PrinterConfig.NoColor = true
	}

	logger := newLogger(config.Verbose)
	slog.SetDefault(logger)

	printer, err := tcprobe.NewPrinter(config.PrinterConfig)
	if err != nil {
		return handleError(err, nil)
	}

	ctx := setupSignalHandler(context.Background())

	handler, shutdown, err := setupTelemetry(ctx, config.OTLPEndpoint, logger)
	if err != nil {
		printer.Done()
		return handleError(err, printer)
	}

	summary := buildProber(config, handler).Run(ctx, config.Targets)

	tcprobe.PrintSummary(printer, &summary)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		logger.Warn("flush telemetry", "error", err)
	}

	if err := printer.Done(); err != nil {
		return handleError(err, printer)
	}

	return exitCode(&summary)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func buildProber(config ProberConfig, handler tcprobe.EventHandler) *tcprobe.Prober {
	var resolverOpts []dns.ResolverOption
	switch {
	case config.UseIPv4:
		resolverOpts = append(resolverOpts, dns.WithIPv4Only())
	case config.UseIPv6:
		resolverOpts = append(resolverOpts, dns.WithIPv6Only())
	}

	return tcprobe.NewProber(
		tcprobe.WithTimeout(config.Timeout),
		tcprobe.WithRetries(config.Retries),
		tcprobe.WithConcurrency(config.Concurrency),
		tcprobe.WithResolver(dns.NewResolver(resolverOpts...)),
		tcprobe.WithEventHandler(handler),
	)
}

// exitCode is 0 only when every target is healthy.
func exitCode(s *statistics.Summary) int {
	if s.AllHealthy() {
		return 0
	}
	return 1
}

func setupSignalHandler(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

func handleError(err error, printer tcprobe.Printer) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrHelpRequested) {
		return 0
	}

	if errors.Is(err, ErrVersionRequested) {
		PrintVersion()
		return 0
	}

	if errors.Is(err, ErrUpdateCheckRequested) {
		msg, checkErr := CheckForUpdates()
		if checkErr != nil {
			printError(checkErr, printer)
			return 1
		}
		fmt.Println(msg)
		return 0
	}

	printError(err, printer)
	return 1
}

func printError(err error, printer tcprobe.Printer) {
	if printer != nil {
		printer.PrintError("%v", err)
		return
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
