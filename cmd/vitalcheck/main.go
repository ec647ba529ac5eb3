// Vitalcheck classifies one set of vital readings, blinks an alert on stdout
// for every reading outside its safe band and exits non-zero if any reading
// was critical.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/linnemanlabs/go-core/cfg"
	"github.com/linnemanlabs/go-core/log"
	v "github.com/linnemanlabs/go-core/version"

	vc "github.com/linnemanlabs/vitalwatch/internal/cfg"
	"github.com/linnemanlabs/vitalwatch/internal/monitor"
	"github.com/linnemanlabs/vitalwatch/internal/render"
	"github.com/linnemanlabs/vitalwatch/internal/vitals"
	"github.com/linnemanlabs/vitalwatch/internal/vitals/catalog"
)

const appName = "vitalwatch"
const component = "vitalcheck"

// exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitCritical = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, render.SleepContext(ctx))
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, delay render.DelayFunc) int {
	v.AppName = appName
	v.Component = component

	fs := flag.NewFlagSet(component, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		checkCfg vc.CheckConfig
		logCfg   log.Config
	)
	checkCfg.RegisterFlags(fs)
	logCfg.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	// env vars fill anything not set on the command line
	cfg.FillFromEnv(fs, "VITALWATCH_", func(format string, args ...any) {
		fmt.Fprintf(stderr, format+"\n", args...)
	})

	if err := errors.Join(checkCfg.Validate(), logCfg.Validate()); err != nil {
		fmt.Fprintln(stderr, "configuration validation failed:", err)
		return exitError
	}

	// stdout carries the blink sequence, logs go to stderr
	logOpts := logCfg.ToOptions(v.AppName)
	logOpts.Writer = stderr
	lg, err := log.New(logOpts)
	if err != nil {
		fmt.Fprintln(stderr, "logger init:", err)
		return exitError
	}
	defer func() { _ = lg.Sync() }()
	L := lg.With("component", component)
	ctx = log.WithContext(ctx, L)

	var opts []vitals.Option
	if checkCfg.DisableWarnings {
		opts = append(opts, vitals.WithoutWarnings())
	}
	engine := vitals.NewEngine(catalog.New(), checkCfg.Language, render.NewConsole(stdout, delay), opts...)
	svc := monitor.NewService(engine, L, nil)

	res, err := svc.CheckVitals(ctx, checkCfg.Temperature, checkCfg.PulseRate, checkCfg.SpO2)
	if err != nil {
		L.Error(ctx, err, "vitals check failed")
		return exitError
	}

	for _, a := range res.Assessments {
		L.Info(ctx, "assessed", "vital", a.Vital, "value", a.Value, "severity", a.Severity)
	}
	if !res.OK {
		return exitCritical
	}
	return exitOK
}
