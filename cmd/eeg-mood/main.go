// Command eeg-mood classifies a signal recording into a mood and renders a
// chart of the signal and an animated brain network GIF.
//
// Usage:
//
//	eeg-mood [-config f.yaml] [-file data.csv | -values "1,2,3"] [-out anim.gif]
//	         [-chart chart.png] [-frames n] [-seed n] [-policy cell|row|column] [-trace]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/justestif/eeg-mood-visualizer/internal/chart"
	"github.com/justestif/eeg-mood-visualizer/internal/config"
	"github.com/justestif/eeg-mood-visualizer/internal/logging"
	"github.com/justestif/eeg-mood-visualizer/internal/metrics"
	"github.com/justestif/eeg-mood-visualizer/internal/network"
	"github.com/justestif/eeg-mood-visualizer/internal/pipeline"
	"github.com/justestif/eeg-mood-visualizer/internal/signal"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds parsed command-line flags.
type options struct {
	configPath string
	file       string
	values     string
	out        string
	chart      string
	frames     int
	seed       int64
	policy     string
	trace      bool
	set        map[string]bool // Flags given explicitly
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("eeg-mood", flag.ContinueOnError)

	o := &options{set: make(map[string]bool)}
	fs.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&o.file, "file", "", "delimited file of signal samples")
	fs.StringVar(&o.values, "values", "", "comma-separated signal samples")
	fs.StringVar(&o.out, "out", "", "animation output path")
	fs.StringVar(&o.chart, "chart", "", "write the signal chart as PNG to this path")
	fs.IntVar(&o.frames, "frames", 0, "animation frame count")
	fs.Int64Var(&o.seed, "seed", 0, "random seed for edge highlighting (0 uses the clock)")
	fs.StringVar(&o.policy, "policy", "", "non-numeric cell policy: cell, row or column")
	fs.BoolVar(&o.trace, "trace", false, "draw the signal under the network in each frame")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.set["file"] == o.set["values"] {
		return nil, errors.New("exactly one of -file or -values is required")
	}

	return o, nil
}

// apply overlays explicit flags onto cfg.
func (o *options) apply(cfg *config.Config) {
	if o.set["out"] {
		cfg.Animation.OutputPath = o.out
	}
	if o.set["chart"] {
		cfg.Chart.OutputPath = o.chart
	}
	if o.set["frames"] {
		cfg.Animation.Frames = o.frames
	}
	if o.set["seed"] {
		cfg.Animation.Seed = o.seed
	}
	if o.set["policy"] {
		cfg.Input.Policy = o.policy
	}
	if o.set["trace"] {
		cfg.Animation.Trace = o.trace
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	policy, err := signal.ParsePolicy(cfg.Input.Policy)
	if err != nil {
		return err
	}

	animOpts := []network.Option{
		network.WithFrames(cfg.Animation.Frames),
		network.WithDelay(cfg.Animation.Delay),
		network.WithSize(cfg.Animation.Width, cfg.Animation.Height),
	}
	if cfg.Animation.Seed != 0 {
		animOpts = append(animOpts, network.WithSeed(cfg.Animation.Seed))
	}

	chartOpts := []chart.Option{chart.WithSize(cfg.Chart.Width, cfg.Chart.Height)}
	if col, ok := cfg.Chart.SeriesRGBA(); ok {
		chartOpts = append(chartOpts, chart.WithSeriesColor(col))
	}

	collector := metrics.NewCollector(metrics.DefaultNamespace)
	svc := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(collector),
		pipeline.WithAnimator(network.NewAnimator(animOpts...)),
		pipeline.WithOutputPath(cfg.Animation.OutputPath),
		pipeline.WithChartPath(cfg.Chart.OutputPath),
		pipeline.WithChartOptions(chartOpts...),
		pipeline.WithTrace(cfg.Animation.Trace),
		pipeline.WithPolicy(policy),
		pipeline.WithDelimiter(cfg.Input.DelimiterRune()),
		pipeline.WithSampleLimit(cfg.Input.MaxSamples),
	)

	var res *pipeline.Result
	if opts.set["file"] {
		res, err = svc.PredictFile(opts.file)
	} else {
		res, err = svc.PredictText(opts.values)
	}

	if path := cfg.Metrics.TextfilePath; path != "" {
		if werr := collector.WriteTextfile(path); werr != nil {
			logger.Warn("writing metrics textfile failed", zap.String("path", path), zap.Error(werr))
		}
	}

	if err != nil {
		return err
	}

	fmt.Fprint(stdout, pipeline.FormatResult(res))
	return nil
}
