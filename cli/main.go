package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ankit-chaubey/image-analyzer/core"
	"github.com/ankit-chaubey/image-analyzer/core/analyzer"
	"github.com/ankit-chaubey/image-analyzer/core/logging"
)

// CLI flags
var (
	jsonFlag       bool
	csvFlag        bool
	reportFlag     bool
	verboseFlag    bool
	logLevelFlag   string
	optionsFlag    string
	noMetadataFlag bool
)

var logger zerolog.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		core.PrintError(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "image-analyzer",
		Short: "Extract camera, capture and GPS metadata from images",
		Long: `image-analyzer reads the EXIF container of JPEG, TIFF, PNG, WebP and
HEIC images and prints the camera identity, capture settings, GPS position
and dimensions, followed by every tag found.

Examples:
  image-analyzer view photo.jpg
  image-analyzer view --json a.jpg b.heic
  image-analyzer view --csv photo.jpg > photo.csv
  image-analyzer analyze --options '{"extract_metadata":true,"reverse_image_search":false,"plot_coordinates":false}' photo.jpg
  image-analyzer reverse-search photo.jpg`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(cmd.ErrOrStderr(), logLevelFlag)
		},
	}
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")
	root.PersistentFlags().BoolVar(&csvFlag, "csv", false, "Print results as Field,Value CSV")
	root.PersistentFlags().BoolVar(&reportFlag, "report", false, "Print results as a sectioned text report")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show unset summary fields")
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default from "+logging.EnvLevel+")")

	view := &cobra.Command{
		Use:   "view <image>...",
		Short: "Show the metadata of one or more images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := core.AnalysisOptions{ExtractMetadata: !noMetadataFlag}
			return runAnalyze(cmd, args, func(a *analyzer.Analyzer, data []byte) (*core.MetadataRecord, error) {
				return a.AnalyzeWith(data, opts), nil
			})
		},
	}
	view.Flags().BoolVar(&noMetadataFlag, "no-metadata", false, "Skip metadata extraction")

	analyze := &cobra.Command{
		Use:   "analyze <image>...",
		Short: "Analyze images with a JSON options payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := []byte(optionsFlag)
			// Validate once up front so a bad payload fails before any file is read.
			if _, err := core.DecodeOptions(payload); err != nil {
				return err
			}
			return runAnalyze(cmd, args, func(a *analyzer.Analyzer, data []byte) (*core.MetadataRecord, error) {
				return a.Analyze(data, payload)
			})
		},
	}
	analyze.Flags().StringVar(&optionsFlag, "options",
		`{"extract_metadata":true,"reverse_image_search":false,"plot_coordinates":false}`,
		"Analysis options as JSON")

	reverse := &cobra.Command{
		Use:   "reverse-search <image>",
		Short: "Reverse image search (not implemented)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a := analyzer.New(analyzer.WithLogger(logger))
			p := core.NewPrinter(cmd.OutOrStdout(), core.ModeJSON, false)
			return p.PrintReverseSearch(a.ReverseSearch(data))
		},
	}

	root.AddCommand(view, analyze, reverse)
	return root
}

type analyzeFunc func(a *analyzer.Analyzer, data []byte) (*core.MetadataRecord, error)

// runAnalyze reads and analyzes every path concurrently, one Analyzer per
// file, then prints the records in argument order.
func runAnalyze(cmd *cobra.Command, paths []string, run analyzeFunc) error {
	mode, err := outputMode()
	if err != nil {
		return err
	}
	records, err := analyzeFiles(cmd.Context(), paths, run)
	if err != nil {
		return err
	}

	p := core.NewPrinter(cmd.OutOrStdout(), mode, verboseFlag)
	for i, path := range paths {
		if err := p.PrintMetadata(path, records[i]); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// outputMode resolves the output flags; at most one may be set.
func outputMode() (core.OutputMode, error) {
	mode, set := core.ModeText, 0
	for _, f := range []struct {
		on   bool
		mode core.OutputMode
	}{
		{jsonFlag, core.ModeJSON},
		{csvFlag, core.ModeCSV},
		{reportFlag, core.ModeReport},
	} {
		if f.on {
			mode = f.mode
			set++
		}
	}
	if set > 1 {
		return mode, errors.New("--json, --csv and --report are mutually exclusive")
	}
	return mode, nil
}

func analyzeFiles(ctx context.Context, paths []string, run analyzeFunc) ([]*core.MetadataRecord, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	records := make([]*core.MetadataRecord, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			a := analyzer.New(analyzer.WithLogger(logger.With().Str("path", path).Logger()))
			m, err := run(a, data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			records[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
