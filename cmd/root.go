// Package cmd implements the xmlhl command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/heathj/xmlhighlight/highlight"
	"github.com/heathj/xmlhighlight/view"
)

var version = "dev"

// errIncomplete is returned with --strict-exit when a document could not be
// fully highlighted.
var errIncomplete = errors.New("some documents could not be fully highlighted")

// Execute runs xmlhl with the process arguments and exits on failure.
func Execute() {
	if err := NewCmdRoot(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// NewCmdRoot creates the root command for xmlhl.
func NewCmdRoot(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile    string
		strictExit bool
		v          = viper.New()
	)

	cmd := &cobra.Command{
		Use:   "xmlhl [flags] <file>...",
		Short: "Print syntax highlighting spans for XML documents",
		Long: `xmlhl scans XML documents and reports the highlighting spans of their
markup: tag names and brackets, attribute names, attribute values, comments,
doctype declarations and CDATA delimiters.

Documents that cannot be fully scanned are reported and rendered with the
spans found before the failure.`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			return runHighlight(cfg, args, strictExit, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/xmlhl/config.yaml)")
	cmd.PersistentFlags().String("charset", "", "character encoding of the input files (default UTF-8)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warning, error")
	cmd.Flags().StringP("output", "o", "", "output format: table, json, yaml, ansi")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&strictExit, "strict-exit", false,
		"exit with an error when a document could not be fully highlighted")

	_ = v.BindPFlag("charset", cmd.PersistentFlags().Lookup("charset"))
	_ = v.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = v.BindPFlag("no_color", cmd.Flags().Lookup("no-color"))

	cmd.AddCommand(newCmdEvents(v, &cfgFile, stdout))

	return cmd
}

func newLogger(cfg Config, stderr io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(level)
	return log, nil
}

func runHighlight(cfg Config, paths []string, strictExit bool, stdout, stderr io.Writer) error {
	format, err := view.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	h := highlight.New(highlight.WithReporter(highlight.LogReporter(log)))

	results := make([]*highlight.Highlighting, len(paths))
	readErrs := make([]error, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			log.WithField("source", path).Debug("highlighting")
			results[i], readErrs[i] = h.HighlightFile(path, cfg.Charset)
			return nil
		})
	}
	_ = g.Wait()

	var (
		rendered   []*highlight.Highlighting
		failed     int
		incomplete bool
	)
	for i, res := range results {
		if readErrs[i] != nil {
			fmt.Fprintln(stderr, "error:", readErrs[i])
			failed++
			continue
		}
		if res.Err() != nil {
			incomplete = true
		}
		rendered = append(rendered, res)
	}

	renderer := view.NewRenderer(format, cfg.NoColor)
	renderer.SetWriter(stdout)
	if err := renderer.Render(rendered); err != nil {
		return err
	}

	if failed > 0 {
		return errors.Errorf("%d of %d files could not be read", failed, len(paths))
	}
	if strictExit && incomplete {
		return errIncomplete
	}
	return nil
}
