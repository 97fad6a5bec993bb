package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	qiniu "github.com/forksen/forksen-qiniu"
	"github.com/forksen/forksen-qiniu/config"
	"github.com/forksen/forksen-qiniu/errors"
	"github.com/forksen/forksen-qiniu/fs"
	"github.com/forksen/forksen-qiniu/fs/billy"
	"github.com/forksen/forksen-qiniu/qntypes"
)

const (
	exitFailed = 1
	exitUsage  = 2
)

func pfopCommand() *cli.Command {
	return &cli.Command{
		Name:      "pfop",
		Usage:     "Submit a persistent operation on a stored object",
		ArgsUsage: "<bucket> <key>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "fop",
				Usage:    "Processing command, repeat for several",
				Required: true,
			},
			&cli.StringFlag{Name: "pipeline", Usage: "Private processing queue"},
			&cli.StringFlag{Name: "notify-url", Usage: "URL notified when the job finishes"},
			&cli.BoolFlag{Name: "force", Usage: "Overwrite existing results"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError(c, "pfop requires <bucket> <key>")
			}
			client, done, err := openClient(c)
			if err != nil {
				return err
			}
			defer done()

			result := client.PfopMulti(c.Context, c.Args().Get(0), c.Args().Get(1), c.StringSlice("fop"),
				qiniu.WithPipeline(c.String("pipeline")),
				qiniu.WithNotifyURL(c.String("notify-url")),
				qiniu.WithForce(c.Bool("force")),
			)
			return printResult(c, result, result.OK())
		},
	}
}

func prefopCommand() *cli.Command {
	return &cli.Command{
		Name:      "prefop",
		Usage:     "Query the status of a persistent operation",
		ArgsUsage: "<persistent-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "wait", Usage: "Poll until the job finishes"},
			&cli.DurationFlag{Name: "interval", Usage: "Polling interval", Value: 2 * time.Second},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c, "prefop requires <persistent-id>")
			}
			client, done, err := openClient(c)
			if err != nil {
				return err
			}
			defer done()

			id := c.Args().First()
			for {
				result := client.Prefop(c.Context, id)
				if !result.OK() || !c.Bool("wait") {
					return printResult(c, result, result.OK())
				}
				info, err := result.Info()
				if err != nil || info.Done() {
					return printResult(c, result, err == nil)
				}

				select {
				case <-c.Context.Done():
					return cli.Exit(c.Context.Err().Error(), exitFailed)
				case <-time.After(c.Duration("interval")):
				}
			}
		},
	}
}

func dfopCommand() *cli.Command {
	return &cli.Command{
		Name:      "dfop",
		Usage:     "Process a remote URL or a local file synchronously",
		ArgsUsage: "<fop> <url-or-path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "detect-content-type",
				Usage: "Sniff the content type of local files",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Also write the processed body to this file on success",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError(c, "dfop requires <fop> <url-or-path>")
			}
			client, done, err := openClient(c)
			if err != nil {
				return err
			}
			defer done()

			result := client.Dfop(c.Context, c.Args().Get(0), c.Args().Get(1),
				qiniu.WithDetectContentType(c.Bool("detect-content-type")))
			if output := c.String("output"); output != "" && result.OK() {
				if err := writeOutput(billy.NewOSFS("/"), output, []byte(result.Text)); err != nil {
					return cli.Exit(err.Error(), exitFailed)
				}
			}
			return printResult(c, result, result.OK())
		},
	}
}

func dfopTextCommand() *cli.Command {
	return &cli.Command{
		Name:      "dfop-text",
		Usage:     "Process a text snippet synchronously",
		ArgsUsage: "<fop>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Usage: "Text to process"},
			&cli.StringFlag{Name: "file", Usage: "Local file whose content is processed as text"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c, "dfop-text requires <fop>")
			}
			if c.IsSet("text") == c.IsSet("file") {
				return usageError(c, "dfop-text requires exactly one of --text or --file")
			}
			client, done, err := openClient(c)
			if err != nil {
				return err
			}
			defer done()

			var result *qntypes.HTTPResult
			if c.IsSet("file") {
				result = client.DfopTextFile(c.Context, c.Args().First(), c.String("file"))
			} else {
				result = client.DfopText(c.Context, c.Args().First(), c.String("text"))
			}
			return printResult(c, result, result.OK())
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List keys in a bucket",
		ArgsUsage: "<bucket>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prefix", Usage: "Only keys with this prefix"},
			&cli.StringFlag{Name: "marker", Usage: "Resume from a previous page"},
			&cli.StringFlag{Name: "delimiter", Usage: "Group keys into common prefixes"},
			&cli.IntFlag{Name: "limit", Usage: "Page size (max 1000)"},
			&cli.BoolFlag{Name: "all", Usage: "Stream every key, one JSON object per line"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c, "list requires <bucket>")
			}
			client, done, err := openClient(c)
			if err != nil {
				return err
			}
			defer done()

			bucket := c.Args().First()
			opts := []qntypes.ListOption{
				qiniu.WithPrefix(c.String("prefix")),
				qiniu.WithMarker(c.String("marker")),
				qiniu.WithDelimiter(c.String("delimiter")),
				qiniu.WithLimit(c.Int("limit")),
			}

			if !c.Bool("all") {
				result := client.ListFiles(c.Context, bucket, opts...)
				return printResult(c, result, result.OK())
			}

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			enc := json.NewEncoder(c.App.Writer)
			for item := range client.ListAll(ctx, bucket, opts...) {
				if item.Err != nil {
					return cli.Exit(fmt.Sprintf("list %s: %v", bucket, item.Err), exitFailed)
				}
				if err := enc.Encode(item.Item); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func bandwidthCommand() *cli.Command {
	return &cli.Command{
		Name:  "bandwidth",
		Usage: "Query CDN bandwidth for a date range",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "First day, YYYY-MM-DD", Required: true},
			&cli.StringFlag{Name: "end", Usage: "Last day, YYYY-MM-DD", Required: true},
			&cli.StringFlag{Name: "granularity", Usage: "5min, hour or day", Value: string(qntypes.GranularityDay)},
			&cli.StringSliceFlag{Name: "domain", Usage: "CDN domain, repeat for several", Required: true},
		},
		Action: func(c *cli.Context) error {
			client, done, err := openClient(c)
			if err != nil {
				return err
			}
			defer done()

			result := client.GetBandwidthData(c.Context, qntypes.BandwidthRequest{
				StartDate:   c.String("start"),
				EndDate:     c.String("end"),
				Granularity: qntypes.Granularity(c.String("granularity")),
				Domains:     c.StringSlice("domain"),
			})
			return printResult(c, result, result.OK())
		},
	}
}

// openClient builds a client from --config, the environment and --verbose.
// The returned func flushes the logger and releases idle connections.
func openClient(c *cli.Context) (*qiniu.Client, func(), error) {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return nil, nil, cli.Exit(fmt.Sprintf("create logger: %v", err), exitUsage)
	}

	path := c.String("config")
	if path != "" {
		if path, err = fs.GetAbs(path); err != nil {
			return nil, nil, cli.Exit(fmt.Sprintf("resolve config path: %v", err), exitUsage)
		}
	}

	settings, err := config.Load(billy.NewOSFS("/"), path)
	if err != nil {
		return nil, nil, cli.Exit(err.Error(), exitUsage)
	}

	client, err := qiniu.New(append(settings.Options(), qiniu.WithLogger(logger))...)
	if err != nil {
		return nil, nil, cli.Exit(fmt.Sprintf("%s: %v", errors.Classify(err), err), exitUsage)
	}

	return client, func() {
		_ = client.Close()
		_ = logger.Sync()
	}, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// writeOutput stores data at path, creating missing parent directories.
func writeOutput(fsys fs.Filesystem, path string, data []byte) error {
	abs, err := fs.GetAbs(path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := fsys.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printResult writes v as indented JSON and turns a failed result into exit code 1.
func printResult(c *cli.Context, v any, ok bool) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if !ok {
		return cli.Exit("", exitFailed)
	}
	return nil
}

func usageError(c *cli.Context, msg string) error {
	return cli.Exit(fmt.Sprintf("%s\nusage: %s %s %s", msg, c.App.Name, c.Command.Name, c.Command.ArgsUsage), exitUsage)
}
