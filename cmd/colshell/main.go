package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	konghcl "github.com/alecthomas/kong-hcl/v2"
	log "github.com/sirupsen/logrus"
	"github.com/squareup/colstore/command"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/conf"
	"github.com/squareup/colstore/errors"
	plog "github.com/squareup/colstore/log"
	"github.com/squareup/colstore/metrics"
	"github.com/squareup/colstore/metrics/prometheus"
)

type arguments struct {
	Config kong.ConfigFlag `help:"Path to an HCL config file" type:"existingfile"`
	Log    plog.Config     `help:"Configuration for the logger" embed:"" prefix:"log-"`
	Store  conf.Config     `help:"Table configuration" embed:"" prefix:""`
	VI     bool            `help:"Enable VI mode."`
	Script string          `help:"Execute the statements in this file and exit instead of starting the shell." type:"existingfile"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	cfg := arguments{}
	parser, err := kong.New(&cfg, kong.Configuration(konghcl.Loader), kong.Name("colshell"))
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err = parser.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	if err := cfg.Log.Configure(); err != nil {
		return err
	}
	if err := cfg.Store.Validate(); err != nil {
		return err
	}
	metricsFactory := metrics.NewNoopFactory()
	if cfg.Store.MetricsEnabled {
		metricsFactory = prometheus.NewFactory(cfg.Store)
	}
	if err := metricsFactory.Start(); err != nil {
		return err
	}
	defer func() {
		if err := metricsFactory.Stop(); err != nil {
			log.Warnf("failed to stop metrics %v", err)
		}
	}()

	session := command.NewSession(cfg.Store, metricsFactory)
	if cfg.Script != "" {
		return runScript(session, cfg.Script, out)
	}
	return runShell(session, cfg.VI, out)
}

// runScript executes the statements in a file. Statements may span lines and end with a ;
// Execution stops at the first statement that fails.
func runScript(session *command.Session, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer common.InvokeCloser(f)
	scanner := bufio.NewScanner(f)
	var cmd []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cmd = append(cmd, line)
		if strings.HasSuffix(line, ";") {
			if err := executeStatement(session, strings.Join(cmd, " "), out); err != nil {
				return err
			}
			cmd = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.WithStack(err)
	}
	if len(cmd) > 0 {
		return executeStatement(session, strings.Join(cmd, " "), out)
	}
	return nil
}

func executeStatement(session *command.Session, statement string, out io.Writer) error {
	lines, err := session.Execute(statement)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
