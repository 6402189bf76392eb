package fea

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/gofea/stopwatch"
	"github.com/notargets/gofea/utils"
)

// Term is one element contribution: Matrix scaled by Scale and Factor
type Term struct {
	Matrix *ElementMatrix
	Scale  Scale
	Factor float64
}

// Assembler accumulates many element terms into one global target, fanning
// the terms out over workers that each own a partial vector
type Assembler struct {
	workers int
	log     *zap.Logger
	watches *stopwatch.Registry
}

// TermError reports the term that stopped an assembly
type TermError struct {
	Term int
	Err  error
}

func (e *TermError) Error() string { return fmt.Sprintf("term %d: %v", e.Term, e.Err) }
func (e *TermError) Unwrap() error { return e.Err }

// Option configures an Assembler
type Option func(*Assembler)

func WithWorkers(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.workers = n
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(a *Assembler) {
		if log != nil {
			a.log = log
		}
	}
}

// WithStopwatches records assembly timings under the registry's current trace
func WithStopwatches(reg *stopwatch.Registry) Option {
	return func(a *Assembler) { a.watches = reg }
}

func NewAssembler(opts ...Option) (a *Assembler) {
	a = &Assembler{
		workers: runtime.NumCPU(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return
}

func (a *Assembler) Workers() int { return a.workers }

/*
Assemble adds every term into target. Terms are split into contiguous
partitions, one per worker; each worker accumulates into its own Contribution.
Only when every term succeeded are the partials merged into target, in
partition order. On error target is left untouched and the first error is
returned, as a *TermError when a term failed.
*/
func (a *Assembler) Assemble(ctx context.Context, target Target, terms []Term) (err error) {
	var (
		workerKey = "worker"
	)
	if a.watches != nil {
		toc := a.watches.Tic("assemble", false)
		defer toc()
		workerKey = a.watches.Trace() + "/worker"
	}
	if len(terms) == 0 {
		return
	}
	var (
		nw       = min(a.workers, len(terms))
		pm       = utils.NewPartitionMap(nw, len(terms))
		partials = make([]*Contribution, pm.ParallelDegree)
	)
	g, gctx := errgroup.WithContext(ctx)
	for n := 0; n < pm.ParallelDegree; n++ {
		partials[n] = NewContribution(target.Len())
		g.Go(func() error {
			return a.work(gctx, n, pm, terms, partials[n], workerKey)
		})
	}
	if err = g.Wait(); err != nil {
		var te *TermError
		if errors.As(err, &te) {
			bn, kMin, kMax := pm.GetBucket(te.Term)
			a.log.Debug("assembly failed",
				zap.Int("term", te.Term),
				zap.Int("worker", bn),
				zap.Int("first", kMin),
				zap.Int("last", kMax-1),
				zap.Error(te.Err))
		}
		return
	}
	for _, partial := range partials {
		partial.MergeInto(target)
	}
	a.log.Debug("assembled",
		zap.Int("terms", len(terms)),
		zap.Int("workers", pm.ParallelDegree))
	return
}

func (a *Assembler) work(ctx context.Context, n int, pm *utils.PartitionMap,
	terms []Term, partial *Contribution, workerKey string) (err error) {
	var (
		kMin, kMax = pm.GetBucketRange(n)
		start      = time.Now()
	)
	for k := kMin; k < kMax; k++ {
		if err = ctx.Err(); err != nil {
			return
		}
		term := terms[k]
		if term.Matrix == nil {
			return &TermError{Term: k, Err: fmt.Errorf("%w: nil element matrix", ErrNotIntegrated)}
		}
		if err = Accumulate(partial, term.Matrix, term.Scale, term.Factor); err != nil {
			return &TermError{Term: k, Err: err}
		}
		if _, known := StrideFor(term.Matrix.NCoeff(), term.Matrix.Cols()); !known && term.Matrix.NCoeff() > 1 {
			a.log.Debug("unrecognized component layout, walking every column",
				zap.Int("term", k),
				zap.Int("nCoeff", term.Matrix.NCoeff()),
				zap.Int("cols", term.Matrix.Cols()))
		}
	}
	elapsed := time.Since(start)
	if a.watches != nil {
		a.watches.Record(workerKey, elapsed)
	}
	a.log.Debug("worker done",
		zap.Int("worker", n),
		zap.Int("terms", pm.GetBucketDimension(n)),
		zap.Int("nnz", partial.NNZ()),
		zap.Duration("elapsed", elapsed))
	return
}
