package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/toyz/valuegen/internal/cli"
	"github.com/toyz/valuegen/internal/server"
	"github.com/toyz/valuegen/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defaults := cli.DefaultConfig()
	flags := flag.NewFlagSet("valuegen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		outFlag     = flags.String("out", defaults.OutputDir, "Directory receiving the generated builder descriptors")
		formatFlag  = flags.String("format", defaults.Format, "Output format: json or yaml")
		jobsFlag    = flags.Int("j", defaults.Concurrency, "Number of value types generated in parallel")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flags.Bool("clean", false, "Delete generated builder files from the specified directories")
		serveFlag   = flags.String("serve", "", "Serve builder generation over HTTP on the given address instead")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: valuegen [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Value Type Builder Generator\n")
		fmt.Fprintf(stderr, "Scans directories for value type descriptors that include RMBuilder and writes builder class descriptions.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more directories holding *.value.yaml or *.value.json files\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  valuegen ./...                      # Scan everything recursively\n")
		fmt.Fprintf(stderr, "  valuegen -out Builders ./Models/... # Write builders into Builders/\n")
		fmt.Fprintf(stderr, "  valuegen -format yaml ./Models      # Write YAML instead of JSON\n")
		fmt.Fprintf(stderr, "  valuegen -clean ./...               # Delete generated builder files\n")
		fmt.Fprintf(stderr, "  valuegen -serve :8080               # Serve the HTTP API\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	config := cli.Config{
		Directories: flags.Args(),
		OutputDir:   *outFlag,
		Format:      *formatFlag,
		Concurrency: *jobsFlag,
		Verbose:     *verboseFlag,
		Quiet:       *quietFlag,
	}

	diagnostics := utils.NewDiagnosticSystem(config.DiagnosticLevel())
	diagnostics.SetOutput(stdout, stderr)

	if *serveFlag != "" {
		return serve(ctx, *serveFlag, diagnostics)
	}

	if len(config.Directories) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		flags.Usage()
		return 1
	}

	diagnostics.Section("Builder Generator")

	if *cleanFlag {
		diagnostics.StartProgress("Cleaning generated files")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(config.Directories)
		if err != nil {
			diagnostics.EndProgress(false, "Clean failed")
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		diagnostics.EndProgress(true, "Removed %d generated files", len(removed))
		for _, file := range removed {
			diagnostics.Verbose("Removed %s", file)
		}
		return 0
	}

	if config.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(config.Directories, ", "))
		diagnostics.List("Output directory: %s", config.OutputDir)
		diagnostics.List("Format: %s", config.Format)
	}

	generator := cli.NewGeneratorWithDiagnostics(config.Verbose, diagnostics)
	generator.Reporter().SetOutput(stdout, stderr)

	if err := generator.Run(ctx, config); err != nil {
		generator.Reporter().ReportError(err)
		return 1
	}

	summary := generator.GetSummary()
	if summary.BuildersGenerated > 0 && !config.Quiet {
		generator.Reporter().ReportSuccess(summary)
	}
	return 0
}

// serve runs the HTTP API until ctx is canceled
func serve(ctx context.Context, address string, diagnostics *utils.DiagnosticSystem) int {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		diagnostics.Error("Invalid serve address %q: %v", address, err)
		return 1
	}

	config := server.DefaultConfig()
	config.Host = host
	config.Port = port
	config.EnableLogger = diagnostics.Level() >= utils.DiagnosticVerbose

	if err := server.New(config, diagnostics).Start(ctx); err != nil {
		diagnostics.Error("Server failed: %v", err)
		return 1
	}
	return 0
}
