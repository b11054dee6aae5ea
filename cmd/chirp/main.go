// Package main implements a CHIP-8 emulator with an SDL2 frontend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/chirpvm/chirp/internal/vm"
	"github.com/chirpvm/chirp/pkg/sdl"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	scale int
	trace bool
	debug bool
	quiet bool
}

func main() {
	options, romFile := readArguments()
	logger := createLogger(options)

	if err := run(app.Context(), logger, options, romFile); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func readArguments() (optionFlags, string) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.IntVar(&options.scale, "scale", 10, "window size of one CHIP-8 pixel in host pixels")
	flags.BoolVar(&options.trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) != 1 {
		printBanner(options)
		fmt.Printf("usage: chirp [options] <CHIP-8 ROM file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return options, args[0]
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[--------------------------]")
		fmt.Println("[ chirp - CHIP-8 emulator  ]")
		fmt.Printf("[--------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func createLogger(options optionFlags) *log.Logger {
	cfg := log.DefaultConfig()
	if options.debug || options.trace {
		cfg.Level = log.DebugLevel
	} else if options.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func run(ctx context.Context, logger *log.Logger, options optionFlags, romFile string) error {
	rom, err := os.ReadFile(romFile)
	if err != nil {
		return fmt.Errorf("reading ROM file: %w", err)
	}

	video, err := sdl.NewVideo("chirp | CHIP-8 emulator", options.scale)
	if err != nil {
		return err
	}
	defer video.Destroy()

	keys := sdl.NewKeyboard()
	machine, err := vm.New(logger, rom, keys, video)
	if err != nil {
		return err
	}
	machine.SetTrace(options.trace)

	logger.Info("Starting emulation",
		log.String("rom", romFile),
		log.Int("bytes", len(rom)))
	return machine.Run(ctx)
}
