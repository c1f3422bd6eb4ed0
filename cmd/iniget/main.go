package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/iniget/iniget/internal/app"
	"github.com/iniget/iniget/internal/config"
	"github.com/iniget/iniget/internal/inifile"
	"github.com/iniget/iniget/internal/logging"
)

// Exit codes. Absence of the requested section or key is not a failure:
// the fallback value is printed and the process exits with exitOK.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("iniget", "Prints the value of a single key from an INI-style config file.")
	kingpinApp.Version(version)
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)

	configFile := kingpinApp.Flag("config", "Path to YAML settings file").String()
	topSection := kingpinApp.Flag("top-section", "Name of the synthetic section holding keys that appear before any [section] header").String()
	fallback := kingpinApp.Flag("fallback", "Value printed when the section or key is absent").String()
	verbose := kingpinApp.Flag("verbose", "Enable debug logging on stderr").Bool()

	filePath := kingpinApp.Arg("file", "Path to the INI config file").Required().String()
	section := kingpinApp.Arg("section", "Section to search, "+inifile.DefaultTopSection+" for keys before any header").Required().String()
	key := kingpinApp.Arg("key", "Key whose value is printed").Required().String()

	if _, err := kingpinApp.Parse(args); err != nil {
		if isMissingArgs(err) {
			fmt.Fprintln(stderr, "Missing arguments")
		} else {
			kingpinApp.Errorf("%s, try --help", err)
		}
		return exitUsage
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		FilePath:   *filePath,
		Section:    *section,
		Key:        *key,
	}

	if *topSection != "" {
		overrides.TopSection = topSection
	}

	if *fallback != "" {
		overrides.Fallback = fallback
	}

	if *verbose {
		overrides.Verbose = verbose
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		kingpinApp.Errorf("%s, try --help", err)
		return exitUsage
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", kingpinApp.Name, err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := app.New(cfg, logger, stdout).Run(); err != nil {
		logger.Error("lookup failed", zap.Error(err))
		return exitFailure
	}

	return exitOK
}

// isMissingArgs reports whether err is the parser's complaint about absent
// required positional arguments.
func isMissingArgs(err error) bool {
	return err != nil && strings.Contains(err.Error(), "required argument")
}
