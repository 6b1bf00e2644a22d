// Package main provides the linkaudit CLI entrypoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/lukemcguire/linkaudit/audit"
	"github.com/lukemcguire/linkaudit/classify"
	"github.com/lukemcguire/linkaudit/config"
	"github.com/lukemcguire/linkaudit/crawler"
	"github.com/lukemcguire/linkaudit/result"
	"github.com/lukemcguire/linkaudit/tui"
	"github.com/lukemcguire/linkaudit/verify"
)

// exitSetup is returned when the audit could not produce a result.
const exitSetup = 2

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := config.Parse(args, stderr)
	if config.IsHelp(err) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitSetup
	}

	logger := newLogger(stderr, opts.Verbose)

	binary, err := crawler.Locate(opts.Crawler)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitSetup
	}
	logger.WithField("crawler", binary).Debug("using crawler")

	var progressCh chan result.Event
	if opts.Progress {
		progressCh = make(chan result.Event, 100)
	}

	cfg := crawler.DefaultConfig(binary)
	cfg.ExtraArgs = opts.CrawlerArgs
	runner := crawler.New(cfg, logger, progressCh)

	var verifier audit.LinkVerifier
	if opts.Retry {
		policy := verify.DefaultPolicy()
		policy.Timeout = runner.Timeout()
		verifier = verify.New(policy, nil, logger, progressCh)
	}

	rules := classify.Rules{
		Errors:   classify.ParseSelector(opts.Errors),
		Warnings: classify.ParseSelector(opts.Warnings),
	}
	auditor := audit.New(opts.URL, rules, runner, verifier, logger)

	var rep *result.Report
	if opts.Progress {
		rep, err = runWithProgress(ctx, auditor, progressCh, opts.Format, stdout, stderr)
	} else {
		rep, err = auditor.Run(ctx)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", describe(err))
		return exitSetup
	}
	if rep == nil {
		// Interrupted from the progress view.
		return exitSetup
	}

	if !(opts.Progress && opts.Format == config.FormatText) {
		if err := writeReport(stdout, rep, opts.Format); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitSetup
		}
	}
	return result.ExitCode(rep.HasError)
}

// runWithProgress drives the audit through the interactive view. The styled
// report replaces the plain one in text mode; other formats keep stdout clean
// by drawing the view on stderr.
func runWithProgress(ctx context.Context, auditor *audit.Auditor, progressCh chan result.Event, format string, stdout, stderr io.Writer) (*result.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := stderr
	if format == config.FormatText {
		out = stdout
	}

	model := tui.NewModel(ctx, cancel, auditor, progressCh)
	finalModel, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}

	final := finalModel.(tui.Model)
	return final.GetReport(), final.Err()
}

func writeReport(w io.Writer, rep *result.Report, format string) error {
	switch format {
	case config.FormatJSON:
		return result.WriteJSON(w, rep.Alerts)
	case config.FormatCSV:
		return result.WriteCSV(w, rep.Alerts)
	default:
		result.PrintReport(w, rep)
		return nil
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// describe adds a hint to the errors a user can act on.
func describe(err error) error {
	var setupErr *crawler.SetupError
	var parseErr *crawler.ParseError
	switch {
	case errors.As(err, &setupErr):
		return fmt.Errorf("%w (is %s a working muffet binary?)", err, setupErr.Binary)
	case errors.As(err, &parseErr):
		return fmt.Errorf("%w (the crawler did not print a JSON report)", err)
	case errors.Is(err, context.Canceled):
		return errors.New("audit interrupted")
	}
	return err
}
