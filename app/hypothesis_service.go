package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"pricehypo/adapters/stats/inference"
	"pricehypo/adapters/tabular"
	"pricehypo/domain/core"
	"pricehypo/domain/dataset"
	"pricehypo/domain/hypothesis"
	"pricehypo/domain/run"
	"pricehypo/domain/stage"
	"pricehypo/internal"
	"pricehypo/internal/errors"
	"pricehypo/ports"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"
)

// HypothesisService runs the fuel-type t-test and the price regression on one dataset
type HypothesisService struct {
	loader ports.DatasetLoader
	logger *internal.Logger
	clock  core.Clock
}

// NewHypothesisService creates a hypothesis service
func NewHypothesisService(loader ports.DatasetLoader, logger *internal.Logger) *HypothesisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &HypothesisService{
		loader: loader,
		logger: logger.With("HypothesisService"),
		clock:  core.SystemClock,
	}
}

// WithClock pins the time printed in the regression summary header
func (s *HypothesisService) WithClock(clock core.Clock) *HypothesisService {
	s.clock = clock
	return s
}

// PerformHypothesisTests runs the whole pipeline on the file at path.
// Every failure, including panics from the numeric code, is reported through
// Outcome.Error and never alongside partial results.
func (s *HypothesisService) PerformHypothesisTests(ctx context.Context, path string) hypothesis.Outcome {
	return s.evaluate(path, func() (dataframe.DataFrame, error) {
		return s.loader.Load(ctx, path)
	})
}

// PerformHypothesisTestsReader runs the pipeline on an already opened stream
func (s *HypothesisService) PerformHypothesisTestsReader(ctx context.Context, name string, r io.Reader, format dataset.Format) hypothesis.Outcome {
	return s.evaluate(name, func() (dataframe.DataFrame, error) {
		return s.loader.LoadReader(ctx, r, format)
	})
}

// Record runs the pipeline on path and stamps the outcome with run metadata
func (s *HypothesisService) Record(ctx context.Context, path string) run.Record {
	start := time.Now()
	outcome := s.PerformHypothesisTests(ctx, path)
	return run.NewRecord(core.NewRunID(), path, start, time.Since(start), outcome)
}

// RecordReader is Record for an already opened stream
func (s *HypothesisService) RecordReader(ctx context.Context, name string, r io.Reader, format dataset.Format) run.Record {
	start := time.Now()
	outcome := s.PerformHypothesisTestsReader(ctx, name, r, format)
	return run.NewRecord(core.NewRunID(), name, start, time.Since(start), outcome)
}

// RunBatch analyses independent files with at most workers runs in flight.
// Records come back in input order.
func (s *HypothesisService) RunBatch(ctx context.Context, paths []string, workers int) []run.Record {
	if workers < 1 {
		workers = 1
	}
	records := make([]run.Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			records[i] = s.Record(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	return records
}

func (s *HypothesisService) evaluate(source string, load func() (dataframe.DataFrame, error)) (out hypothesis.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.InternalError(fmt.Sprintf("analysis aborted: %v", r))
			s.logger.Error("%s: %v", source, err)
			out = hypothesis.Failed(err)
		}
	}()

	outcome, err := s.run(load)
	if err != nil {
		s.logger.Error("%s: [%s] %v", source, errors.GetCode(err), err)
		return hypothesis.Failed(err)
	}
	return outcome
}

func (s *HypothesisService) run(load func() (dataframe.DataFrame, error)) (hypothesis.Outcome, error) {
	runner := NewStageRunner(s.logger)

	var (
		df      dataframe.DataFrame
		cleaned *tabular.CleanedSubset
		table   *tabular.EncodedTable
		outcome hypothesis.Outcome
	)

	if err := runner.Run(stage.StageLoad, func() error {
		var err error
		df, err = load()
		return err
	}); err != nil {
		return outcome, errors.DataLoad(err)
	}

	if err := runner.Run(stage.StageClean, func() error {
		var err error
		cleaned, err = tabular.Clean(df)
		return err
	}); err != nil {
		return outcome, classifyCleanError(err)
	}

	if err := runner.Run(stage.StageEncode, func() error {
		var err error
		table, err = tabular.Encode(cleaned)
		return err
	}); err != nil {
		return outcome, errors.Wrap(err, "encoding failed")
	}
	s.logger.Debug("encoded %d rows, categories %v, baseline %q", table.Len(), table.Categories, table.Baseline)

	if err := runner.Run(stage.StageTTest, func() error {
		var err error
		outcome.TTest, err = s.compareFuelPrices(table)
		return err
	}); err != nil {
		return outcome, errors.Wrap(err, "t-test failed")
	}

	if err := runner.Run(stage.StageRegression, func() error {
		var err error
		outcome.Regression, err = s.regressPrice(table)
		return err
	}); err != nil {
		return hypothesis.Outcome{}, errors.ModelFit(err)
	}

	s.logger.Debug("completed stages %v", runner.Completed())
	return outcome, nil
}

// compareFuelPrices runs the diesel vs petrol t-test, or returns nil when either indicator is absent
func (s *HypothesisService) compareFuelPrices(table *tabular.EncodedTable) (*hypothesis.TTestResult, error) {
	diesel := dataset.IndicatorName(dataset.FuelDiesel)
	petrol := dataset.IndicatorName(dataset.FuelPetrol)
	if !table.Has(diesel) || !table.Has(petrol) {
		s.logger.Info("t-test skipped: needs both %s and %s (baseline %q)", diesel, petrol, table.Baseline)
		return nil, nil
	}

	dieselPrices, err := table.Where(dataset.ColumnPrice, diesel)
	if err != nil {
		return nil, err
	}
	petrolPrices, err := table.Where(dataset.ColumnPrice, petrol)
	if err != nil {
		return nil, err
	}

	result := inference.StudentTTest(dieselPrices, petrolPrices)
	welch := inference.WelchTTest(dieselPrices, petrolPrices)
	s.logger.Debug("t-test: n_diesel=%d n_petrol=%d t=%.4f p=%.4f d=%.3f (welch t=%.4f df=%.2f p=%.4f)",
		result.NA, result.NB, result.Statistic, result.PValue, result.CohensD, welch.Statistic, welch.DF, welch.PValue)
	return hypothesis.NewTTestResult(result.Statistic, result.PValue), nil
}

// regressPrice fits Price ~ const + Age_08_04 + HP [+ Fuel_Type_Petrol] [+ Fuel_Type_CNG]
func (s *HypothesisService) regressPrice(table *tabular.EncodedTable) (*hypothesis.RegressionResult, error) {
	predictors := []string{dataset.ColumnAge, dataset.ColumnHP}
	for _, category := range []string{dataset.FuelPetrol, dataset.FuelCNG} {
		if name := dataset.IndicatorName(category); table.Has(name) {
			predictors = append(predictors, name)
		}
	}

	var design inference.Design
	for _, name := range predictors {
		values, _ := table.Column(name)
		design.Names = append(design.Names, name)
		design.Columns = append(design.Columns, values)
	}
	price, _ := table.Column(dataset.ColumnPrice)

	model, err := inference.FitOLS(dataset.ColumnPrice, price, inference.AddConstant(design))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("regression on %v: n=%d rank=%d r2=%.4f", predictors, model.NObs, model.Rank, model.RSquared)

	return &hypothesis.RegressionResult{
		Summary:     model.Summary(s.clock()),
		RSquared:    hypothesis.Round(model.RSquared),
		AdjRSquared: hypothesis.Round(model.AdjRSquared),
		FStatistic:  hypothesis.Round(model.FValue),
		FPValue:     hypothesis.Round(model.FPValue),
	}, nil
}

func classifyCleanError(err error) error {
	switch {
	case stderrors.Is(err, core.ErrMissingColumn):
		return errors.WithCode(errors.CodeMissingColumn, "cleaning failed", err)
	case stderrors.Is(err, core.ErrNotNumeric):
		return errors.WithCode(errors.CodeTypeMismatch, "cleaning failed", err)
	default:
		return errors.Wrap(err, "cleaning failed")
	}
}
