// Command lc3 is the LC-3 instruction-execution engine's CLI entry
// point: flag parsing, logging setup, and handoff to the interactive
// debugger REPL, built the way the teacher's main.go wires up S370 —
// minus the channel-coordinated CPU goroutine, which that engine needs
// for asynchronous device interrupts and this one, having none (spec
// Non-goals), does not.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/fultonm/PR6/console"
	"github.com/fultonm/PR6/debugger"
	"github.com/fultonm/PR6/engine"
	"github.com/fultonm/PR6/loader"
	"github.com/fultonm/PR6/simconfig"
	"github.com/fultonm/PR6/simlog"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Session configuration file")
	optObject := getopt.StringLong("object", 'o', "", "Object file to load at startup")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var cfg simconfig.Config
	if *optConfig != "" {
		var err error
		cfg, err = simconfig.Load(*optConfig)
		if err != nil {
			slog.Error("lc3: failed to read session configuration", "error", err)
			os.Exit(1)
		}
	}

	logPath := cfg.LogFile
	if *optLogFile != "" {
		logPath = *optLogFile
	}
	var logFile *os.File
	if logPath != "" {
		var err error
		logFile, err = os.Create(logPath)
		if err != nil {
			slog.Error("lc3: failed to create log file", "path", logPath, "error", err)
			os.Exit(1)
		}
		defer logFile.Close()
	}
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := slog.New(simlog.NewHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	th := console.New(os.Stdin, os.Stdout, logger)
	eng := engine.New(engine.Config{Trap: th})
	dbg := debugger.New(eng, th, logger)

	for _, addr := range cfg.Breakpoints {
		dbg.AddBreakpoint(addr)
	}
	if cfg.TraceLimit > 0 {
		dbg.SetTraceInterval(cfg.TraceLimit)
	}

	objectPath := cfg.Object
	if *optObject != "" {
		objectPath = *optObject
	}
	if objectPath != "" {
		if err := loader.Load(eng, objectPath); err != nil {
			logger.Error("lc3: failed to load object file", "path", objectPath, "error", err)
			os.Exit(1)
		}
		logger.Info("lc3: loaded object file", "path", objectPath, "start", eng.StartingAddress())
	}

	// Wait for a SIGINT or SIGTERM to shut down gracefully even when the
	// REPL isn't at a prompt to catch it itself (liner's SetCtrlCAborts
	// only covers an interactive Ctrl-C at the prompt).
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		dbg.Run()
		close(done)
	}()

	logger.Info("lc3: starting debugger")
	select {
	case <-done:
	case <-sigChan:
		logger.Info("lc3: received shutdown signal")
	}
	logger.Info("lc3: shutting down")
}
