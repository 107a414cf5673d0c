// Package pipeline runs a complete mood prediction: ingest, classify, and
// render the chart and network animation.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justestif/eeg-mood-visualizer/internal/canvas"
	"github.com/justestif/eeg-mood-visualizer/internal/chart"
	"github.com/justestif/eeg-mood-visualizer/internal/metrics"
	"github.com/justestif/eeg-mood-visualizer/internal/mood"
	"github.com/justestif/eeg-mood-visualizer/internal/network"
	"github.com/justestif/eeg-mood-visualizer/internal/signal"
)

// DefaultOutputPath is where the animation is written unless configured.
// Each prediction replaces the previous file.
const DefaultOutputPath = "eeg_network_animation.gif"

// Source names recorded on results.
const (
	SourceManual   = "manual"
	SourceSequence = "sequence"
)

// Service runs predictions. Calls are synchronous and must not overlap.
type Service struct {
	logger      *zap.Logger
	metrics     *metrics.Collector
	animator    *network.Animator
	outputPath  string
	chartPath   string
	chartOpts   []chart.Option
	policy      signal.Policy
	delimiter   rune
	sampleLimit int
	trace       bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) {
		s.metrics = c
	}
}

// WithAnimator sets the network animator.
func WithAnimator(a *network.Animator) Option {
	return func(s *Service) {
		s.animator = a
	}
}

// WithOutputPath sets the animation file path.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		s.outputPath = path
	}
}

// WithChartPath writes each chart as a PNG to path. Empty keeps charts in memory.
func WithChartPath(path string) Option {
	return func(s *Service) {
		s.chartPath = path
	}
}

// WithChartOptions sets options passed to chart.Render.
func WithChartOptions(opts ...chart.Option) Option {
	return func(s *Service) {
		s.chartOpts = opts
	}
}

// WithPolicy sets how non-numeric cells are dropped from tables.
func WithPolicy(p signal.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithDelimiter sets the table delimiter; 0 auto-detects.
func WithDelimiter(d rune) Option {
	return func(s *Service) {
		s.delimiter = d
	}
}

// WithSampleLimit keeps only the first n samples of a table; 0 keeps all.
func WithSampleLimit(n int) Option {
	return func(s *Service) {
		s.sampleLimit = n
	}
}

// WithTrace draws the classified samples under the network in each
// animation frame.
func WithTrace(enabled bool) Option {
	return func(s *Service) {
		s.trace = enabled
	}
}

// New creates a prediction service.
func New(opts ...Option) *Service {
	s := &Service{
		outputPath: DefaultOutputPath,
		policy:     signal.DropCell,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewCollector(metrics.DefaultNamespace)
	}
	if s.animator == nil {
		s.animator = network.NewAnimator()
	}
	for _, l := range mood.Labels {
		s.metrics.InitMoods(string(l))
	}
	return s
}

// Result contains the outcome of one prediction.
// ChartErr and AnimationErr report rendering failures; Mood is valid even
// when they are set.
type Result struct {
	ID            uuid.UUID
	Source        string          // "file:<path>", "manual" or "sequence"
	Header        []string        // Column names when the input table had a header
	Sequence      signal.Sequence // Samples that were classified
	Mood          mood.Result
	Chart         *chart.Chart
	ChartPath     string // Set when the chart was written to disk
	AnimationPath string // Set when the animation was written to disk
	Frames        int    // Number of animation frames rendered
	ChartErr      error
	AnimationErr  error
	Duration      time.Duration
}

// RenderErr joins any rendering failures, or returns nil.
func (r *Result) RenderErr() error {
	return errors.Join(r.ChartErr, r.AnimationErr)
}

// PredictFile reads a delimited table from path and runs a prediction on it.
// Input errors are returned before anything is rendered.
func (s *Service) PredictFile(path string) (*Result, error) {
	source := "file:" + path

	f, err := os.Open(path)
	if err != nil {
		s.metrics.ObserveFailure(metrics.StageInput)
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	table, err := signal.ReadTable(f, s.delimiter)
	if err != nil {
		return nil, s.inputFailure(source, err)
	}

	m, err := signal.Sanitize(table, s.policy)
	if err != nil {
		return nil, s.inputFailure(source, err)
	}
	s.logger.Debug("table sanitized",
		zap.String("source", source),
		zap.Int("rows", len(m.Rows)),
		zap.Strings("header", m.Header),
		zap.Stringer("policy", s.policy),
	)

	seq, err := signal.Flatten(m, s.sampleLimit)
	if err != nil {
		return nil, s.inputFailure(source, err)
	}

	return s.run(source, seq, m.Header)
}

// PredictText parses a comma-separated line of numbers and runs a prediction.
func (s *Service) PredictText(text string) (*Result, error) {
	seq, err := signal.ParseManual(text)
	if err != nil {
		return nil, s.inputFailure(SourceManual, err)
	}
	return s.run(SourceManual, seq, nil)
}

// PredictSequence runs a prediction on samples that are already parsed.
func (s *Service) PredictSequence(seq signal.Sequence) (*Result, error) {
	if len(seq) == 0 {
		return nil, s.inputFailure(SourceSequence, signal.ErrEmptyInput)
	}
	return s.run(SourceSequence, seq, nil)
}

// run classifies seq and renders both artifacts.
func (s *Service) run(source string, seq signal.Sequence, header []string) (*Result, error) {
	start := time.Now()
	id := uuid.New()
	log := s.logger.With(zap.String("prediction_id", id.String()), zap.String("source", source))

	res, err := mood.Classify(seq)
	if err != nil {
		s.metrics.ObserveFailure(metrics.StageClassify)
		return nil, fmt.Errorf("classifying mood: %w", err)
	}
	s.metrics.ObservePrediction(string(res.Label))
	log.Info("mood classified",
		zap.String("mood", string(res.Label)),
		zap.Float64("mean", res.Mean),
		zap.Int("samples", len(seq)),
	)

	result := &Result{
		ID:       id,
		Source:   source,
		Header:   header,
		Sequence: seq,
		Mood:     res,
	}

	s.renderChart(log, result)
	s.renderAnimation(log, result)

	result.Duration = time.Since(start)
	log.Debug("prediction finished", zap.Duration("duration", result.Duration))

	return result, nil
}

// renderChart renders the signal chart and optionally writes it to disk.
func (s *Service) renderChart(log *zap.Logger, result *Result) {
	start := time.Now()
	defer func() { s.metrics.ObserveRender(canvas.ArtifactChart, time.Since(start)) }()

	ch, err := chart.Render(result.Sequence, s.chartOpts...)
	if err == nil && s.chartPath != "" {
		if err = ch.WritePNG(s.chartPath); err == nil {
			result.ChartPath = s.chartPath
		}
	}
	result.Chart = ch

	if err != nil {
		result.ChartErr = asRenderError(canvas.ArtifactChart, err)
		s.metrics.ObserveFailure(metrics.StageChart)
		log.Warn("chart rendering failed", zap.Error(err))
	}
}

// renderAnimation renders the network animation and writes it to the
// configured output path.
func (s *Service) renderAnimation(log *zap.Logger, result *Result) {
	start := time.Now()
	defer func() { s.metrics.ObserveRender(canvas.ArtifactAnimation, time.Since(start)) }()

	var anim *network.Animation
	var err error
	if s.trace {
		anim, err = s.animator.RenderTrace(result.Mood, result.Sequence)
	} else {
		anim, err = s.animator.Render(result.Mood)
	}
	if err == nil {
		result.Frames = len(anim.Frames)
		if err = anim.WriteFile(s.outputPath); err == nil {
			result.AnimationPath = s.outputPath
			log.Info("animation saved", zap.String("path", s.outputPath), zap.Int("frames", result.Frames))
		}
	}

	if err != nil {
		result.AnimationErr = asRenderError(canvas.ArtifactAnimation, err)
		s.metrics.ObserveFailure(metrics.StageAnimation)
		log.Warn("animation rendering failed", zap.Error(err))
	}
}

// inputFailure records an ingestion failure and wraps err with its source.
func (s *Service) inputFailure(source string, err error) error {
	s.metrics.ObserveFailure(metrics.StageInput)
	s.logger.Debug("input rejected", zap.String("source", source), zap.Error(err))
	return fmt.Errorf("reading %s input: %w", source, err)
}

// asRenderError ensures err is a *canvas.RenderError for artifact.
func asRenderError(artifact string, err error) error {
	var re *canvas.RenderError
	if errors.As(err, &re) {
		return err
	}
	return &canvas.RenderError{Artifact: artifact, Err: err}
}
