package main

import (
	"flag"
	"fmt"
	"os"

	"masm100/assemble"
	"masm100/config"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
		configPath  = flag.String("config", "", "Path to config file (default: platform config directory)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("masm100 %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	baseNames := flag.Args()
	if len(baseNames) == 0 {
		fmt.Fprintln(os.Stderr, "masm100: not enough parameters: at least one source base name is required")
		printHelp()
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "masm100: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, baseName := range baseNames {
		if *verboseMode {
			fmt.Fprintf(os.Stderr, "masm100: assembling %s.as\n", baseName)
		}

		result := assemble.AssembleFile(baseName, cfg)
		if result.Errors != nil {
			for _, e := range result.Errors.Errors {
				fmt.Fprintf(os.Stderr, "%s: %s\n", baseName, e.Error())
			}
		}
		// Per-file assembly errors (pass-1/pass-2) are reported but do not by
		// themselves set a nonzero exit code; only driver errors (missing
		// arguments, I/O, allocation failures) do (spec.md §6/§7).
		switch {
		case result.Errors != nil && result.Errors.HasDriverErrors():
			exitCode = 1
		case result.Success() && *verboseMode:
			fmt.Fprintf(os.Stderr, "masm100: %s assembled successfully\n", baseName)
		}
	}

	os.Exit(exitCode)
}

func printHelp() {
	fmt.Printf(`masm100 %s

Usage: masm100 [options] <base-name> [<base-name> ...]

Each base name names a source file "<base-name>.as" (without extension);
artifact "<base-name>.ob" is written alongside it, plus "<base-name>.ent"
and "<base-name>.ext" when the source has entries or externals. Every file is processed independently; a failure on
one file does not stop the others.

Options:
  -help            Show this help message
  -version         Show version information
  -verbose         Enable verbose output
  -config PATH     Load configuration from PATH (default: platform config directory)

Examples:
  masm100 program
  masm100 -verbose prog1 prog2
  masm100 -config ./masm100.toml program
`, Version)
}
