// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slide implements the SLIDE sparse deep learning engine: an
// ordered stack of hash-retrieval Layers, exposed as a dense-in/dense-out
// Network. A persistent worker pool fans the forward and backward passes
// out across the examples of a batch; the update phase runs layer by
// layer on the calling goroutine, and rebuild runs one goroutine per
// layer. Each phase joins before the next begins.
package slide

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/chewxy/math32"

	"github.com/ymd-h/HashDL/hact"
	"github.com/ymd-h/HashDL/harray"
	"github.com/ymd-h/HashDL/herr"
	"github.com/ymd-h/HashDL/hhash"
	"github.com/ymd-h/HashDL/hinit"
	"github.com/ymd-h/HashDL/hopt"
	"github.com/ymd-h/HashDL/hrand"
	"github.com/ymd-h/HashDL/hsched"
	"github.com/ymd-h/HashDL/timer"
)

// Config holds Network's construction parameters. A zero value for
// Activation/Optimizer/Scheduler/Initializer/Hash selects the documented
// default; a zero value for L/Sparsity/L2 selects the documented default
// for those too (negative values are always invalid).
type Config struct {
	InputSize int
	Units     []int
	L         int

	Activation  hact.Func
	Optimizer   hopt.Optimizer
	Scheduler   hsched.Scheduler
	Initializer hinit.Initializer
	Hash        hhash.Factory

	Sparsity float32
	L2       float32

	Seed     int64
	NThreads int

	// CheckNumeric enables the optional NumericFault diagnostic: Forward
	// scans its output for NaN/Inf before returning.
	CheckNumeric bool
}

// Network is an ordered stack of sparse Layers sharing one worker pool,
// one rebuild scheduler, and one batch-step counter.
type Network struct {
	DIn    int
	Layers []*Layer

	sched hsched.Scheduler
	pool  *WorkerPool
	step  int

	checkNumeric bool

	lastCtx *batchContext

	Times PhaseTimes
}

// PhaseTimes accumulates wall-clock time per processing phase. Hash
// retrieval is folded into Forward since each layer's active-set
// selection runs inline with its matmul rather than as a separate phase.
type PhaseTimes struct {
	Forward  timer.Time
	Backward timer.Time
	Update   timer.Time
	Rebuild  timer.Time
}

type batchContext struct {
	b        int
	perLayer [][]*ExampleState
}

// NewNetwork validates cfg and constructs a Network: input_size > 0, a
// non-empty units tuple of all-positive sizes, and L > 0.
func NewNetwork(cfg Config) (*Network, error) {
	if cfg.InputSize <= 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewNetwork: input_size must be > 0, got %d", cfg.InputSize)
	}
	if len(cfg.Units) == 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewNetwork: units must be non-empty")
	}
	for i, u := range cfg.Units {
		if u <= 0 {
			return nil, herr.Wrap(herr.InvalidArgument, "slide.NewNetwork: units[%d] must be > 0, got %d", i, u)
		}
	}
	l := cfg.L
	if l == 0 {
		l = 50
	} else if l < 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewNetwork: L must be > 0, got %d", l)
	}
	if cfg.Sparsity < 0 || cfg.Sparsity > 1 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewNetwork: sparsity must be in [0,1], got %v", cfg.Sparsity)
	}
	if cfg.L2 < 0 {
		return nil, herr.Wrap(herr.InvalidArgument, "slide.NewNetwork: L2 must be >= 0, got %v", cfg.L2)
	}
	if math32.IsNaN(cfg.Sparsity) || math32.IsNaN(cfg.L2) {
		return nil, herr.Wrap(herr.TypeMismatch, "slide.NewNetwork: sparsity and L2 must be numeric")
	}

	act := cfg.Activation
	if act == nil {
		act = hact.ReLU{}
	}
	opt := cfg.Optimizer
	if opt == nil {
		var err error
		opt, err = hopt.NewAdam(1e-3, 0, 0, 0)
		if err != nil {
			return nil, err
		}
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched, _ = hsched.NewConstantFrequency(50)
	}
	init := cfg.Initializer
	if init == nil {
		init = hinit.Gauss{Mu: 0, Sigma: 0.05}
	}
	hashFactory := cfg.Hash
	if hashFactory == nil {
		hashFactory = hhash.DWTA(8, l)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	rng := hrand.New(seed)

	nThreads := cfg.NThreads
	if nThreads <= 0 {
		nThreads = runtime.NumCPU()
	}

	layers := make([]*Layer, len(cfg.Units))
	prevF := cfg.InputSize
	for i, u := range cfg.Units {
		hasher, err := hashFactory(prevF, rng)
		if err != nil {
			return nil, err
		}
		ly, err := NewLayer(prevF, u, l, act, hasher, init, opt, cfg.Sparsity, cfg.L2, rng)
		if err != nil {
			return nil, err
		}
		layers[i] = ly
		prevF = u
	}

	return &Network{
		DIn:          cfg.InputSize,
		Layers:       layers,
		sched:        sched,
		pool:         NewWorkerPool(nThreads),
		checkNumeric: cfg.CheckNumeric,
	}, nil
}

// DOut returns the output width (last layer's unit count).
func (nt *Network) DOut() int {
	return nt.Layers[len(nt.Layers)-1].U
}

// Forward runs the batch through every layer with hash-only retrieval
// and caches the batch context for the next Backward call.
func (nt *Network) Forward(x *harray.Matrix) (*harray.Matrix, error) {
	return nt.forward(x, nil)
}

// ForwardWithLabels is Forward, but additionally forces every neuron with
// a nonzero labels entry into the output layer's active set. This is the
// only way label-aware retrieval is ever triggered: plain Forward never
// supplies labels to the output layer.
func (nt *Network) ForwardWithLabels(x, labels *harray.Matrix) (*harray.Matrix, error) {
	return nt.forward(x, labels)
}

func (nt *Network) forward(x, labels *harray.Matrix) (*harray.Matrix, error) {
	if err := x.CheckCols("X", nt.DIn); err != nil {
		return nil, err
	}
	b := x.Rows
	if labels != nil {
		if err := labels.CheckShape("labels", b, nt.DOut()); err != nil {
			return nil, err
		}
	}

	nt.Times.Forward.Start()
	defer nt.Times.Forward.Stop()

	ctx := &batchContext{b: b, perLayer: make([][]*ExampleState, len(nt.Layers))}
	cur := make([][]float32, b)
	for i := 0; i < b; i++ {
		cur[i] = x.Row(i)
	}

	for k, ly := range nt.Layers {
		isLast := k == len(nt.Layers)-1
		els := make([]*ExampleState, b)
		var errs errCollector
		nt.pool.RunOverExamples(b, func(i, _ int) {
			var y []float32
			if isLast && labels != nil {
				y = labels.Row(i)
			}
			es, err := ly.Forward(cur[i], y)
			if err != nil {
				errs.set(err)
				return
			}
			els[i] = es
		})
		if err := errs.get(); err != nil {
			return nil, err
		}
		ctx.perLayer[k] = els
		next := make([][]float32, b)
		for i, es := range els {
			next[i] = es.A
		}
		cur = next
	}

	nt.lastCtx = ctx

	last := nt.Layers[len(nt.Layers)-1]
	y := harray.NewMatrix(b, last.U)
	for i := 0; i < b; i++ {
		copy(y.Row(i), ctx.perLayer[len(nt.Layers)-1][i].A)
	}

	if nt.checkNumeric {
		for _, v := range y.Data {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				return nil, herr.Wrap(herr.NumericFault, "slide.Network.Forward: non-finite value in output")
			}
		}
	}
	return y, nil
}

// Backward applies one optimizer step given the gradient of the loss
// w.r.t. the last Forward's output. Must be preceded by exactly one
// Forward call.
func (nt *Network) Backward(g *harray.Matrix) error {
	ctx := nt.lastCtx
	if ctx == nil {
		return herr.Wrap(herr.InvalidState, "slide.Network.Backward: called without a matching Forward")
	}
	last := nt.Layers[len(nt.Layers)-1]
	if err := g.CheckShape("gradient", ctx.b, last.U); err != nil {
		nt.lastCtx = nil
		return err
	}

	nt.Times.Backward.Start()
	deltaOut := make([][]float32, ctx.b)
	for i := 0; i < ctx.b; i++ {
		deltaOut[i] = g.Row(i)
	}

	for k := len(nt.Layers) - 1; k >= 0; k-- {
		ly := nt.Layers[k]
		shadows := make([]map[int]*neuronGrad, nt.pool.N())
		for t := range shadows {
			shadows[t] = make(map[int]*neuronGrad)
		}
		gIn := make([][]float32, ctx.b)
		layerDeltaOut := deltaOut
		nt.pool.RunOverExamples(ctx.b, func(i, thr int) {
			es := ctx.perLayer[k][i]
			gIn[i] = ly.Backward(es, layerDeltaOut[i], shadows[thr])
		})
		ly.Accumulate(shadows)
		deltaOut = gIn
	}
	nt.Times.Backward.Stop()

	nt.Times.Update.Start()
	for _, ly := range nt.Layers {
		ly.Update(ctx.b)
	}
	nt.Times.Update.Stop()

	nt.step++
	if nt.sched != nil && nt.sched.Due(nt.step) {
		nt.Times.Rebuild.Start()
		nt.rebuildAll()
		nt.Times.Rebuild.Stop()
	}

	nt.lastCtx = nil
	return nil
}

// rebuildAll rebuilds every layer's hash tables concurrently: layers are
// independent, so rebuild runs one goroutine per layer.
func (nt *Network) rebuildAll() {
	done := make(chan struct{}, len(nt.Layers))
	for _, ly := range nt.Layers {
		go func(l *Layer) {
			l.Rebuild()
			done <- struct{}{}
		}(ly)
	}
	for range nt.Layers {
		<-done
	}
}

// Summary renders one line per layer describing its shape (fan-in, unit
// count, table count). Two networks built from identical Config values
// render identical Summary text, which makes Summary a convenient target
// for a text-diff-based equality check (see andreyvit/diff in the
// package's tests) when a plain struct comparison would be noisier to
// read.
func (nt *Network) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Network: %d layer(s), input=%d\n", len(nt.Layers), nt.DIn)
	for i, ly := range nt.Layers {
		fmt.Fprintf(&b, "  layer[%d]: F=%d U=%d L=%d act=%s\n", i, ly.F, ly.U, ly.Tables.L(), ly.Act.Name())
	}
	return b.String()
}

// Close stops the network's worker pool. The pool's goroutines sit idle
// between batches, blocked on their channels; without Close they stay
// blocked, and are not freed, for the life of the process.
func (nt *Network) Close() {
	nt.pool.Stop()
}
