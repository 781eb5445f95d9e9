// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert runs a model through one manufacturing process and exports
// the process report: import, process, export.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bartekus/dfmreport/internal/config"
	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/model"
	"github.com/bartekus/dfmreport/internal/process"
	"github.com/bartekus/dfmreport/internal/report"
)

// Result describes a finished conversion.
type Result struct {
	Model        string
	Process      process.Type
	ReportPath   string
	SummaryPath  string
	UnfoldedPath string
	Summaries    []report.Summary
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the logger used for stage progress.
func WithLogger(l *zap.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// WithComparator sets the comparator used to merge features.
func WithComparator(cmp feature.Comparator) Option {
	return func(a *Application) { a.cmp = cmp }
}

// WithSummary enables the Markdown summary export.
func WithSummary(enabled bool) Option {
	return func(a *Application) { a.summary = enabled }
}

// Application converts models into process reports.
type Application struct {
	cfg     *config.Config
	logger  *zap.Logger
	cmp     feature.Comparator
	summary bool
}

// New returns an application using cfg, or the default configuration when
// cfg is nil.
func New(cfg *config.Config, opts ...Option) *Application {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &Application{cfg: cfg, cmp: feature.DefaultCompare, summary: cfg.Report.Summary}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Run imports source, applies the named process and exports the results
// into the target folder. The returned error wraps one of the stage errors.
func (a *Application) Run(ctx context.Context, source, processName, target string) (*Result, error) {
	typ, err := process.ParseType(processName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if target == "" {
		return nil, fmt.Errorf("%w: empty export folder", ErrInvalidArgument)
	}

	m, err := a.importModel(source)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep, unfolded, err := a.process(ctx, typ, m)
	if err != nil {
		return nil, err
	}

	res := &Result{Model: m.Name, Process: typ}
	if err := a.export(target, m, rep, unfolded, res); err != nil {
		return nil, err
	}
	res.Summaries = rep.Summaries()
	return res, nil
}

func (a *Application) importModel(source string) (*model.Model, error) {
	a.logger.Info("Importing", zap.String("path", source))
	start := time.Now()

	m, err := LoadModel(source)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Done.", zap.Int("parts", len(m.Parts)), zap.Duration("elapsed", time.Since(start)))
	return m, nil
}

// LoadModel reads the model at source. Failures wrap ErrUnexpectedFormat
// or ErrImport.
func LoadModel(source string) (*model.Model, error) {
	m, err := model.Load(source)
	if err != nil {
		if errors.Is(err, model.ErrUnexpectedFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedFormat, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrImport, err)
	}
	return m, nil
}

func (a *Application) process(ctx context.Context, typ process.Type, m *model.Model) (rep *report.Report, unfolded *model.Model, err error) {
	a.logger.Info("Processing", zap.Stringer("process", typ))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProcess, r)
		}
	}()

	m.AssignUUIDs()
	unfolded = &model.Model{}

	var proc process.Processor
	switch typ {
	case process.TypeWallThickness:
		proc = process.NewWallThicknessProcessor()
	case process.TypeMachiningMilling, process.TypeMachiningTurning:
		proc = process.NewMachiningProcessor(typ.Operation())
	case process.TypeSheetMetal:
		unfolded.Name = m.Name + a.cfg.Report.UnfoldedSuffix
		proc = process.NewSheetMetalProcessor(unfolded)
	default:
		return nil, nil, fmt.Errorf("%w: unsupported process %s", ErrInvalidArgument, typ)
	}

	data := process.Apply(m, proc)
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrProcess, err)
	}

	rep = report.New(report.WithComparator(a.cmp), report.WithLogger(a.logger))
	rep.AddData(data...)

	a.logger.Debug("Done.", zap.Int("records", rep.Len()), zap.Duration("elapsed", time.Since(start)))
	return rep, unfolded, nil
}

func (a *Application) export(target string, m *model.Model, rep *report.Report, unfolded *model.Model, res *Result) error {
	a.logger.Info("Exporting", zap.String("folder", target))
	start := time.Now()

	if !unfolded.IsEmpty() {
		path := filepath.Join(target, unfolded.Name+".yaml")
		if err := model.Save(path, unfolded); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
		res.UnfoldedPath = path
	}

	res.ReportPath = filepath.Join(target, a.cfg.Report.FileName)
	if err := rep.WriteFile(res.ReportPath); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	if a.summary {
		res.SummaryPath = filepath.Join(target, a.cfg.Report.SummaryFileName)
		if err := rep.WriteSummary(res.SummaryPath, m.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
	}

	a.logger.Debug("Done.", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// TargetFor returns the export folder of source under root, named after the
// source path without its extension. Sources outside the working tree use
// their base name followed by a short digest of their absolute path, so two
// models with the same file name never share a folder.
func TargetFor(root, source string) string {
	rel := filepath.Clean(source)
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		abs, err := filepath.Abs(rel)
		if err != nil {
			abs = rel
		}
		base := filepath.Base(rel)
		digest := uuid.NewSHA1(uuid.NameSpaceURL, []byte(filepath.ToSlash(abs))).String()[:8]
		rel = strings.TrimSuffix(base, filepath.Ext(base)) + "-" + digest + filepath.Ext(base)
	}
	return filepath.Join(root, strings.TrimSuffix(rel, filepath.Ext(rel)))
}
