package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
	"github.com/petstore-qa/petstore-contract-tests/servicedef"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL  string
	configPath  string
	filters     ldtest.RegexFilters
	reportDir   string
	summaryPath string
	debug       bool
	debugAll    bool
	noWait      bool
}

// Read parses the command line, and then the config file if one was specified. Usage errors
// are written to errOut.
func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.serviceURL, "url", "", "Pet Store API base URL (default "+servicedef.DefaultServiceURL+")")
	fs.StringVar(&c.configPath, "config", "", "YAML file with default values for these options")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.reportDir, "report-dir", "", "directory to write Allure result files to")
	fs.StringVar(&c.summaryPath, "summary", "", "file to write a JSON summary of results to")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.noWait, "no-wait", false, "do not wait for the service to be reachable before starting")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.configPath != "" {
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		cfg, err := loadConfigFile(c.configPath)
		if err == nil {
			err = c.applyConfig(cfg, explicit)
		}
		if err != nil {
			fmt.Fprintln(errOut, err)
			return false
		}
	}
	if c.serviceURL == "" {
		c.serviceURL = servicedef.DefaultServiceURL
	}
	if err := validateServiceURL(c.serviceURL); err != nil {
		fmt.Fprintln(errOut, err)
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) applyConfig(cfg fileConfig, explicit map[string]bool) error {
	if !explicit["url"] && cfg.URL != "" {
		c.serviceURL = cfg.URL
	}
	if !explicit["run"] {
		for _, p := range cfg.Run {
			if err := c.filters.MustMatch.Set(p); err != nil {
				return fmt.Errorf("config run pattern %q: %w", p, err)
			}
		}
	}
	if !explicit["skip"] {
		for _, p := range cfg.Skip {
			if err := c.filters.MustNotMatch.Set(p); err != nil {
				return fmt.Errorf("config skip pattern %q: %w", p, err)
			}
		}
	}
	if !explicit["report-dir"] && cfg.ReportDir != "" {
		c.reportDir = cfg.ReportDir
	}
	if !explicit["summary"] && cfg.Summary != "" {
		c.summaryPath = cfg.Summary
	}
	if !explicit["debug"] {
		c.debug = cfg.Debug
	}
	if !explicit["debug-all"] {
		c.debugAll = cfg.DebugAll
	}
	if !explicit["no-wait"] {
		c.noWait = cfg.NoWait
	}
	return nil
}

func validateServiceURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid service URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("service URL must be an absolute http or https URL")
	}
	return nil
}

// rerunCommand returns a shell command line that runs only the specified test against the same
// service.
func (c *commandParams) rerunCommand(program string, id ldtest.TestID) string {
	var b commandBuilder
	b.add(program, "-url", c.serviceURL, "-run", "^"+regexpQuotePath(id)+"$")
	if c.debug || c.debugAll {
		b.add("-debug")
	}
	return b.String()
}

func regexpQuotePath(id ldtest.TestID) string {
	var parts []string
	for _, p := range id.Path {
		parts = append(parts, regexp.QuoteMeta(p))
	}
	return strings.Join(parts, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
