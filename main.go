// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/gui"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	printBanner(opts)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
	)

	emu, err := emulator.New(logger, emulator.Config{
		Trace: opts.Debug,
		Seed:  opts.Seed,
	})
	if err != nil {
		return fmt.Errorf("initializing emulator: %w", err)
	}
	emu.LoadROM(rom)

	window, err := gui.New("chip8emu", opts.Scale)
	if err != nil {
		return fmt.Errorf("initializing window: %w", err)
	}
	defer window.Close()

	return emu.Run(ctx, window)
}

func printBanner(opts options.Program) {
	if !opts.Quiet {
		fmt.Println("[-----------------------------------]")
		fmt.Println("[ chip8emu - CHIP-8 virtual machine ]")
		fmt.Printf("[-----------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}
