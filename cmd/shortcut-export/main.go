// Command shortcut-export adds the applications listed in a configuration
// file to a Steam account's non-Steam game shortcuts.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/lobinuxsoft/shortcut-export/internal/exporter"
	"github.com/lobinuxsoft/shortcut-export/internal/logging"
	"github.com/lobinuxsoft/shortcut-export/internal/pathutil"
	"github.com/lobinuxsoft/shortcut-export/pkg/version"
)

type Options struct {
	Config   string `short:"c" long:"config" description:"Path to the JSON or YAML application list" required:"true"`
	Account  string `short:"a" long:"account" description:"Steam account (login) name" required:"true"`
	Launcher string `short:"l" long:"launcher" description:"Path to the launcher executable" required:"true"`
	SteamDir string `long:"steam-dir" description:"Steam installation directory (detected when omitted)"`
	DryRun   bool   `long:"dry-run" description:"Resolve everything but do not write shortcuts.vdf"`
	Verbose  bool   `short:"v" long:"verbose" description:"Enable debug logging"`
	LogFile  string `long:"log-file" description:"Also append log output to this file"`
	Version  bool   `long:"version" description:"Print version information and exit"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		switch {
		case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrRequired && opts.Version:
			// --version needs none of the required flags.
		default:
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if opts.Version {
		fmt.Fprintf(stdout, "shortcut-export %s\n", version.Full())
		return 0
	}

	if len(rest) > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", rest)
		return 1
	}

	logger, closer, err := logging.New(stderr, logging.Options{
		Verbose: opts.Verbose,
		File:    pathutil.ExpandHome(opts.LogFile),
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to set up logging: %v\n", err)
		return 1
	}
	defer closer.Close()

	launcher, err := pathutil.Abs(opts.Launcher)
	if err != nil {
		logger.Error("invalid launcher path", "path", opts.Launcher, "error", err)
		return 1
	}
	configPath, err := pathutil.Abs(opts.Config)
	if err != nil {
		logger.Error("invalid config path", "path", opts.Config, "error", err)
		return 1
	}
	steamDir, err := pathutil.Abs(opts.SteamDir)
	if err != nil {
		logger.Error("invalid steam directory", "path", opts.SteamDir, "error", err)
		return 1
	}

	logger.Debug("starting", "version", version.Version, "config", configPath, "account", opts.Account, "launcher", launcher)

	exp := exporter.New(exporter.Options{
		ConfigPath:   configPath,
		AccountName:  opts.Account,
		LauncherPath: launcher,
		SteamDir:     steamDir,
		DryRun:       opts.DryRun,
	}, logger)

	result, err := exp.Run()
	if err != nil {
		// Already logged by the exporter.
		return 1
	}
	if !result.OK() {
		logger.Warn("some shortcuts could not be added", "failed", result.Failed)
		return 1
	}
	return 0
}
