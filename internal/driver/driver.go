// Package driver runs batches of translation-unit jobs. Each unit is
// independent: the dialect configuration, command catalog, and model
// tables are published read-only before the batch, diagnostics go through
// the shared engine, and a fatal error unwinds exactly one unit.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AndroidModLoader/gta3sc/internal/commands"
	"github.com/AndroidModLoader/gta3sc/internal/config"
	"github.com/AndroidModLoader/gta3sc/internal/diag"
	"github.com/AndroidModLoader/gta3sc/internal/models"
	"github.com/AndroidModLoader/gta3sc/internal/observ"
	"github.com/AndroidModLoader/gta3sc/internal/source"
	"github.com/AndroidModLoader/gta3sc/internal/token"
)

// Request describes one job batch.
type Request struct {
	Options *config.Options
	Catalog *commands.Catalog
	Models  *models.Store
	Engine  *diag.Engine

	// Paths lists the translation units to compile, in input order.
	Paths []string

	// Jobs caps parallel workers; 0 means GOMAXPROCS.
	Jobs int

	Progress ProgressSink
}

// UnitStatus is the outcome of one translation unit.
type UnitStatus uint8

const (
	// UnitCompleted means the unit ran all resolution passes.
	UnitCompleted UnitStatus = iota
	// UnitAborted means a fatal diagnostic unwound the unit.
	UnitAborted
	// UnitUnreadable means the unit's file could not be loaded.
	UnitUnreadable
)

// UnitResult records the outcome of one translation unit.
type UnitResult struct {
	Path    string
	FileID  source.FileID
	Status  UnitStatus
	Elapsed time.Duration
}

// BatchResult aggregates the outcome of a Run call.
type BatchResult struct {
	Units   []UnitResult
	Summary string
	Timings string
}

// Run compiles all requested units, up to req.Jobs at a time. The returned
// error covers infrastructure failures only; user-facing problems are
// reported through the engine and inspected via Engine.HasError.
func Run(ctx context.Context, req *Request) (*BatchResult, error) {
	if req.Options == nil || req.Catalog == nil || req.Models == nil || req.Engine == nil {
		return nil, fmt.Errorf("driver: incomplete request")
	}
	sink := req.Progress
	if sink == nil {
		sink = nopSink{}
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(req.Paths) && len(req.Paths) > 0 {
		jobs = len(req.Paths)
	}

	timer := observ.NewTimer()

	// Load every unit up front; the FileSet is read-only once jobs start.
	scanPhase := timer.Begin("scan")
	fileSet := source.NewFileSet()
	fileIDs := make([]source.FileID, len(req.Paths))
	loadErr := make([]error, len(req.Paths))
	for i, path := range req.Paths {
		sink.OnEvent(Event{File: path, Stage: StageScan, Status: StatusQueued})
		fileIDs[i], loadErr[i] = fileSet.Load(path)
	}
	timer.End(scanPhase, fmt.Sprintf("%d units", len(req.Paths)))

	streams := token.NewRegistry()
	metrics := &batchMetrics{}
	results := make([]UnitResult, len(req.Paths))

	resolvePhase := timer.Begin("resolve")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range req.Paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			res := UnitResult{Path: path}

			if loadErr[i] != nil {
				req.Engine.Error(diag.UnitContext{Name: path}, "could not read script: %v", loadErr[i])
				metrics.unitsFailedLoad.Add(1)
				res.Status = UnitUnreadable
				results[i] = res
				sink.OnEvent(Event{File: path, Stage: StageScan, Status: StatusError, Elapsed: time.Since(started)})
				return nil
			}
			res.FileID = fileIDs[i]

			sink.OnEvent(Event{File: path, Stage: StageResolve, Status: StatusWorking})
			job := &unitJob{
				req:     req,
				file:    fileSet.Get(fileIDs[i]),
				streams: streams,
				metrics: metrics,
			}
			if diag.RunJob(job.run) {
				metrics.unitsCompleted.Add(1)
				res.Status = UnitCompleted
				sink.OnEvent(Event{File: path, Stage: StageResolve, Status: StatusDone, Elapsed: time.Since(started)})
			} else {
				metrics.unitsAborted.Add(1)
				res.Status = UnitAborted
				sink.OnEvent(Event{File: path, Stage: StageResolve, Status: StatusError, Elapsed: time.Since(started)})
			}
			res.Elapsed = time.Since(started)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	timer.End(resolvePhase, fmt.Sprintf("%d workers", jobs))
	return &BatchResult{Units: results, Summary: metrics.Summary(), Timings: timer.Summary()}, nil
}
