package fea

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/gofea/stopwatch"
	"github.com/notargets/gofea/utils"
)

func makeTerms(t *testing.T, n, size int) (terms []Term) {
	t.Helper()
	for k := 0; k < n; k++ {
		var (
			a  = float64(k + 1)
			i0 = k % size
			i1 = (3*k + 1) % size
		)
		switch k % 4 {
		case 0:
			terms = append(terms, Term{
				Matrix: newEM(t, Layout{NCoeff: 1}, utils.Index{i0, i1}, nil, [][]float64{{a}, {-a / 2}}),
				Scale:  Scalar(0.5),
				Factor: 1,
			})
		case 1:
			terms = append(terms, Term{
				Matrix: newEM(t, Layout{NCoeff: 2}, utils.Index{i0, i1}, nil, [][]float64{
					{a, 7, 7, 2 * a},
					{1, 7, 7, a},
				}),
				Scale:  Vec3{1, -1, 0},
				Factor: 0.25,
			})
		case 2:
			terms = append(terms, Term{
				Matrix: newEM(t, Layout{NCoeff: 1, DofPerCoeff: size}, utils.Index{i1}, nil, [][]float64{{a}}),
				Scale:  PerDOF{utils.NewVecConst(size, 0.1)},
				Factor: 3,
			})
		case 3:
			terms = append(terms, Term{
				Matrix: newEM(t, Layout{NCoeff: 2, Elastic: true}, utils.Index{i0}, Cell{2}, [][]float64{{a, 1, 0}}),
				Scale: Tensor{utils.NewMatrix(3, 3, []float64{
					1, 1, 0,
					0, 2, 0,
					0, 0, 1,
				})},
				Factor: -1,
			})
		}
	}
	return
}

func TestAssemble(t *testing.T) {
	defer goleak.VerifyNone(t)
	var (
		size  = 17
		terms = makeTerms(t, 50, size)
		ctx   = context.Background()
	)
	serial := utils.NewVector(size)
	for _, term := range terms {
		require.NoError(t, Accumulate(serial, term.Matrix, term.Scale, term.Factor))
	}
	assert.NotZero(t, serial.Sum())
	// Parallel assembly matches the serial sum for any worker count
	{
		for _, nw := range []int{1, 3, 8, 64} {
			a := NewAssembler(WithWorkers(nw))
			assert.Equal(t, nw, a.Workers())
			v := utils.NewVector(size)
			require.NoError(t, a.Assemble(ctx, v, terms))
			assert.InDeltaSlice(t, serial.Data(), v.Data(), 1.e-12, "workers = %d", nw)
		}
	}
	// Assembly adds into the existing target
	{
		v := utils.NewVecConst(size, 1)
		require.NoError(t, NewAssembler(WithWorkers(4)).Assemble(ctx, v, terms))
		for i := 0; i < size; i++ {
			assert.InDelta(t, serial.AtVec(i)+1, v.AtVec(i), 1.e-12)
		}
	}
	// No terms, no change
	{
		v := utils.NewVector(size)
		require.NoError(t, NewAssembler().Assemble(ctx, v, nil))
		assert.Zero(t, v.Sum())
	}
	// Vector field target
	{
		v := utils.NewVec3s(size)
		require.NoError(t, NewAssembler(WithWorkers(3)).Assemble(ctx, v, terms))
		for i := 0; i < size; i++ {
			assert.InDelta(t, serial.AtVec(i), v[i][0], 1.e-12)
		}
	}
}

func TestAssembleErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	var (
		size  = 9
		terms = makeTerms(t, 12, size)
	)
	// One bad term fails the assembly and leaves the target untouched
	{
		bad := append([]Term{}, terms...)
		bad[7] = Term{
			Matrix: newEM(t, Layout{NCoeff: 1}, utils.Index{0, size}, nil, [][]float64{{1}, {1}}),
			Scale:  Scalar(1),
			Factor: 1,
		}
		var (
			v          = utils.NewVector(size)
			core, logs = observer.New(zap.DebugLevel)
		)
		err := NewAssembler(WithWorkers(4), WithLogger(zap.New(core))).Assemble(context.Background(), v, bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		assert.Contains(t, err.Error(), "term 7")
		var te *TermError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 7, te.Term)
		assert.Zero(t, v.Sum())
		// 12 terms over 4 workers, term 7 belongs to the third bucket [6, 9)
		entries := logs.FilterMessage("assembly failed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, int64(2), fields["worker"])
		assert.Equal(t, int64(6), fields["first"])
		assert.Equal(t, int64(8), fields["last"])

		bad[7] = Term{Scale: Scalar(1)}
		err = NewAssembler(WithWorkers(2)).Assemble(context.Background(), v, bad)
		assert.True(t, errors.Is(err, ErrNotIntegrated))
		assert.Zero(t, v.Sum())
	}
	// Cancelled context
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		v := utils.NewVector(size)
		err := NewAssembler(WithWorkers(3)).Assemble(ctx, v, terms)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Zero(t, v.Sum())
	}
}

func TestAssembleInstrumentation(t *testing.T) {
	defer goleak.VerifyNone(t)
	// Timings are recorded under the assembly trace
	{
		reg := stopwatch.NewRegistry()
		a := NewAssembler(WithWorkers(3), WithStopwatches(reg))
		v := utils.NewVector(10)
		require.NoError(t, a.Assemble(context.Background(), v, makeTerms(t, 9, 10)))
		assert.Equal(t, []string{"assemble", "assemble/worker"}, reg.Keys())
		assert.Len(t, reg.Stored("assemble"), 1)
		assert.Len(t, reg.Stored("assemble/worker"), 3)
		assert.Equal(t, "", reg.Trace())

		toc := reg.Tic("solve", false)
		require.NoError(t, a.Assemble(context.Background(), v, makeTerms(t, 2, 10)))
		toc()
		assert.Equal(t, []string{"assemble", "assemble/worker", "solve", "solve/assemble", "solve/assemble/worker"}, reg.Keys())
		assert.Len(t, reg.Stored("solve/assemble/worker"), 2)
	}
	// Unrecognized layouts are logged at debug level
	{
		core, logs := observer.New(zap.DebugLevel)
		a := NewAssembler(WithWorkers(1), WithLogger(zap.New(core)))
		terms := []Term{{
			Matrix: newEM(t, Layout{NCoeff: 2}, utils.Index{1}, nil, [][]float64{{1, 2, 3, 4, 5}}),
			Scale:  Scalar(1),
			Factor: 1,
		}}
		v := utils.NewVector(2)
		require.NoError(t, a.Assemble(context.Background(), v, terms))
		assert.Equal(t, []float64{0, 15}, v.Data())
		entries := logs.FilterMessage("unrecognized component layout, walking every column").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(5), entries[0].ContextMap()["cols"])
		assert.Equal(t, 1, logs.FilterMessage("assembled").Len())
	}
}
