// Package main provides the qnfop CLI entrypoint.
//
// Usage:
//
//	qnfop [--config FILE] [--verbose] <command> [options] [args]
//
// Every command prints its result record as JSON on stdout.
//
// Exit codes:
//   - 0: the service accepted the request
//   - 1: the request failed (see ref_text)
//   - 2: bad arguments or the client could not be configured
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// version is set via ldflags at build time.
var version = "dev"

func main() {
	app := newApp(os.Stdout)
	app.ExitErrHandler = exitErrHandler

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "qnfop",
		Usage:   "Submit and inspect Qiniu data processing operations",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML settings file",
				EnvVars: []string{"QNFOP_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log requests to stderr in development format",
			},
		},
		Commands: []*cli.Command{
			pfopCommand(),
			prefopCommand(),
			dfopCommand(),
			dfopTextCommand(),
			listCommand(),
			bandwidthCommand(),
		},
	}
}

// exitErrHandler keeps exit codes set by cli.Exit.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
