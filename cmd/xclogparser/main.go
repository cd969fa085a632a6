// xclogparser parses Xcode .xcactivitylog files into build step trees
// and renders them as reports.
//
// Usage:
//
//	xclogparser parse --file Build.xcactivitylog --reporter json
//	xclogparser parse --derived_data ~/Library/Developer/Xcode/DerivedData --reporter console
//	xclogparser dump --file Build.xcactivitylog
//	xclogparser browse --file Build.xcactivitylog
//	xclogparser version
//
// Reporters:
//
//	json          full step tree (default)
//	flatJson      flat step sequence
//	summaryJson   root step only
//	issues        errors and warnings
//	chromeTracer  chrome://tracing timeline
//	html          standalone HTML page
//	console       styled terminal summary
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/sairamkotha/XCLogParser/internal/config"
	"github.com/sairamkotha/XCLogParser/internal/version"
	"github.com/sairamkotha/XCLogParser/pkg/browser"
	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
	"github.com/sairamkotha/XCLogParser/pkg/logfinder"
	"github.com/sairamkotha/XCLogParser/pkg/parser"
	"github.com/sairamkotha/XCLogParser/pkg/reporter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "parse":
		return runParse(args[1:], stdout, stderr)
	case "dump":
		return runDump(args[1:], stdout, stderr)
	case "browse":
		return runBrowse(args[1:], stderr)
	case "version":
		fmt.Fprintf(stdout, "xclogparser %s (%s, built %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return 0
	default:
		fmt.Fprintf(stderr, "xclogparser: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xclogparser <parse|dump|browse|version> [flags]")
}

// multiFlag collects repeated --file values.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func runParse(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xclogparser parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var files multiFlag
	fs.Var(&files, "file", "Activity log to parse (repeatable)")
	derivedData := fs.String("derived_data", "", "DerivedData directory to search for the newest log")
	reporterName := fs.String("reporter", "", "Reporter: json, flatJson, summaryJson, issues, chromeTracer, html, console")
	output := fs.String("output", "", "Write the report to a file instead of stdout")
	machineName := fs.String("machine_name", "", "Override the machine name used in step identifiers")
	redacted := fs.Bool("redacted", false, "Redact user home paths in signatures and document URLs")
	theme := fs.String("theme", "", "Console theme: default, mono")
	noColor := fs.Bool("no_color", false, "Disable colored console output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cliFlags := config.CliFlags{
		Reporter:    *reporterName,
		Output:      *output,
		Theme:       *theme,
		MachineName: *machineName,
		DerivedData: *derivedData,
		Redacted:    *redacted,
		NoColor:     *noColor,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "redacted":
			cliFlags.RedactedSet = true
		case "no_color":
			cliFlags.NoColorSet = true
		}
	})
	cfg := config.MergeWithFlags(config.LoadConfig(), cliFlags)

	if len(files) == 0 {
		root, err := resolveSearchRoot(cfg.DerivedData)
		if err != nil {
			fmt.Fprintf(stderr, "xclogparser: %v\n", err)
			return 2
		}
		latest, err := logfinder.LatestBuildLog(root)
		if err != nil {
			fmt.Fprintf(stderr, "xclogparser: %v\n", err)
			return 1
		}
		files = multiFlag{latest}
	}

	rep, err := reporter.ByName(cfg.Reporter, reporter.Options{Theme: cfg.Theme, Width: termWidth(stdout)})
	if err != nil {
		fmt.Fprintf(stderr, "xclogparser: %v\n", err)
		return 2
	}

	opts := parser.BuildOptions{MachineName: cfg.MachineName, Redacted: cfg.Redacted}
	reports, err := parseAll(files, opts, rep)
	if err != nil {
		fmt.Fprintf(stderr, "xclogparser: %v\n", err)
		return 1
	}

	combined := strings.Join(reports, "")
	if *output != "" {
		if err := os.WriteFile(*output, []byte(combined), 0o644); err != nil {
			fmt.Fprintf(stderr, "xclogparser: writing report: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprint(stdout, combined)
	return 0
}

// parseAll parses the given logs concurrently and reports them in
// input order.
func parseAll(files []string, opts parser.BuildOptions, rep reporter.Reporter) ([]string, error) {
	reports := make([]string, len(files))
	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			root, err := parseLog(path, opts)
			if err != nil {
				return err
			}
			out, err := rep.Report(root)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func parseLog(path string, opts parser.BuildOptions) (buildstep.BuildStep, error) {
	log, err := parser.ParseActivityLogFile(path)
	if err != nil {
		return buildstep.BuildStep{}, fmt.Errorf("%s: %w", path, err)
	}
	root, err := parser.NewStepBuilder(opts).Build(log)
	if err != nil {
		return buildstep.BuildStep{}, fmt.Errorf("%s: %w", path, err)
	}
	return *root, nil
}

// resolveSearchRoot defaults to Xcode's DerivedData directory when no
// explicit location is configured.
func resolveSearchRoot(derivedData string) (string, error) {
	if derivedData != "" {
		return derivedData, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no --file or --derived_data given and home dir unknown: %w", err)
	}
	return filepath.Join(home, "Library", "Developer", "Xcode", "DerivedData"), nil
}

func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}

// runDump prints the raw token stream of an activity log, one token
// per line. Useful when a log fails to parse.
func runDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xclogparser dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "Activity log to dump (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintf(stderr, "xclogparser dump: --file is required\n")
		return 2
	}

	data, err := parser.ReadActivityLog(*file)
	if err != nil {
		fmt.Fprintf(stderr, "xclogparser: %v\n", err)
		return 1
	}
	lexer, err := parser.NewLexer(data)
	if err != nil {
		fmt.Fprintf(stderr, "xclogparser: %v\n", err)
		return 1
	}

	for {
		tok, err := lexer.Next()
		if err == io.EOF {
			return 0
		}
		if err != nil {
			fmt.Fprintf(stderr, "xclogparser: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, formatToken(tok))
	}
}

func formatToken(tok parser.Token) string {
	switch tok.Kind {
	case parser.TokenInt, parser.TokenClassInstance, parser.TokenList:
		return fmt.Sprintf("%s %d", tok.Kind, tok.IntValue)
	case parser.TokenDouble:
		return fmt.Sprintf("%s %v", tok.Kind, tok.DoubleValue)
	case parser.TokenString, parser.TokenClassName:
		return fmt.Sprintf("%s %q", tok.Kind, tok.StringValue)
	default:
		return tok.Kind.String()
	}
}

func runBrowse(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("xclogparser browse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "Activity log to browse (required)")
	machineName := fs.String("machine_name", "", "Override the machine name used in step identifiers")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintf(stderr, "xclogparser browse: --file is required\n")
		return 2
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(stderr, "xclogparser browse: stdout is not a terminal\n")
		return 2
	}

	root, err := parseLog(*file, parser.BuildOptions{MachineName: *machineName})
	if err != nil {
		fmt.Fprintf(stderr, "xclogparser: %v\n", err)
		return 1
	}
	if err := browser.Run(context.Background(), root); err != nil {
		fmt.Fprintf(stderr, "xclogparser: %v\n", err)
		return 1
	}
	return 0
}
