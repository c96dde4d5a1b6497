// Package neural provides the animals' feed-forward brains and vision sensors.
package neural

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/foragers/config"
)

// Topology lists layer widths from input to output, e.g. [9, 9, 2].
// It is shared by the whole population for the duration of a run.
type Topology []int

// Validate reports whether the topology describes at least one layer of
// positive width.
func (t Topology) Validate() error {
	if len(t) < 2 {
		return config.NewConfigError("topology", "need at least input and output widths, got %v", []int(t))
	}
	for i, w := range t {
		if w < 1 {
			return config.NewConfigError("topology", "layer %d has width %d", i, w)
		}
	}
	return nil
}

// Inputs returns the input width.
func (t Topology) Inputs() int { return t[0] }

// Outputs returns the output width.
func (t Topology) Outputs() int { return t[len(t)-1] }

// ChromosomeLen returns the number of genes needed to encode a brain.
func (t Topology) ChromosomeLen() int {
	n := 0
	for i := 1; i < len(t); i++ {
		n += t[i]*t[i-1] + t[i]
	}
	return n
}

// Layer is one fully connected layer: out = act(W·in + b).
// Weights has Rows = outputs and Cols = inputs, stored row-major.
type Layer struct {
	Weights blas32.General
	Biases  []float32
}

func newLayer(inputs, outputs int) Layer {
	return Layer{
		Weights: blas32.General{
			Rows:   outputs,
			Cols:   inputs,
			Stride: inputs,
			Data:   make([]float32, inputs*outputs),
		},
		Biases: make([]float32, outputs),
	}
}

// forward writes W·in + b into out.
func (l *Layer) forward(in, out []float32) {
	copy(out, l.Biases)
	blas32.Gemv(blas.NoTrans, 1, l.Weights,
		blas32.Vector{N: len(in), Inc: 1, Data: in},
		1,
		blas32.Vector{N: len(out), Inc: 1, Data: out},
	)
}

// Brain is a feed-forward network mapping a vision vector to a movement
// command. Hidden layers use ReLU; the output layer is linear so an
// all-zero network outputs exactly zero.
type Brain struct {
	topology Topology
	layers   []Layer

	// ping-pong buffers reused between layers
	bufA, bufB []float32
}

func newBrain(topology Topology) *Brain {
	b := &Brain{
		topology: append(Topology(nil), topology...),
		layers:   make([]Layer, len(topology)-1),
	}
	widest := 0
	for i := 1; i < len(topology); i++ {
		b.layers[i-1] = newLayer(topology[i-1], topology[i])
		if topology[i] > widest {
			widest = topology[i]
		}
	}
	b.bufA = make([]float32, widest)
	b.bufB = make([]float32, widest)
	return b
}

// Zero creates a brain whose weights and biases are all zero.
func Zero(topology Topology) (*Brain, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}
	return newBrain(topology), nil
}

// Random creates a brain with Xavier-scaled Gaussian weights and zero biases.
func Random(topology Topology, rng *rand.Rand) (*Brain, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}
	b := newBrain(topology)
	for i := range b.layers {
		scale := float32(math.Sqrt(2.0 / float64(topology[i])))
		w := b.layers[i].Weights.Data
		for j := range w {
			w[j] = float32(rng.NormFloat64()) * scale
		}
	}
	return b, nil
}

// FromChromosome rebuilds a brain from its flat gene sequence. The layout is,
// per layer in order: the weight matrix row by row, then the biases.
func FromChromosome(topology Topology, genes []float32) (*Brain, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}
	if want := topology.ChromosomeLen(); len(genes) != want {
		return nil, config.NewConfigError("chromosome",
			"length %d does not match topology %v (want %d)", len(genes), []int(topology), want)
	}

	b := newBrain(topology)
	off := 0
	for i := range b.layers {
		l := &b.layers[i]
		off += copy(l.Weights.Data, genes[off:])
		off += copy(l.Biases, genes[off:])
	}
	return b, nil
}

// Chromosome flattens the brain into a new gene slice, the inverse of FromChromosome.
func (b *Brain) Chromosome() []float32 {
	genes := make([]float32, 0, b.topology.ChromosomeLen())
	for i := range b.layers {
		genes = append(genes, b.layers[i].Weights.Data...)
		genes = append(genes, b.layers[i].Biases...)
	}
	return genes
}

// Topology returns the brain's layer widths.
func (b *Brain) Topology() Topology {
	return b.topology
}

// Propagate evaluates the network on a vision vector and returns the raw
// speed and rotation deltas. len(vision) must equal the input width.
func (b *Brain) Propagate(vision []float32) (speedDelta, rotationDelta float32) {
	out := b.Forward(vision)
	return out[0], out[1]
}

// Forward evaluates the network and returns the output activations. The
// returned slice is owned by the brain and valid until the next call.
func (b *Brain) Forward(inputs []float32) []float32 {
	if len(inputs) != b.topology.Inputs() {
		panic(fmt.Sprintf("neural: got %d inputs, brain expects %d", len(inputs), b.topology.Inputs()))
	}

	in := inputs
	bufs := [2][]float32{b.bufA, b.bufB}
	for i := range b.layers {
		out := bufs[i%2][:b.topology[i+1]]
		b.layers[i].forward(in, out)
		if i < len(b.layers)-1 {
			relu(out)
		}
		in = out
	}
	return in
}

// Layers returns the brain's layers. Weights are shared, not copied.
func (b *Brain) Layers() []Layer {
	return b.layers
}

// Trace evaluates the network like Forward but returns freshly allocated
// activations for every layer, inputs first and outputs last.
func (b *Brain) Trace(inputs []float32) [][]float32 {
	if len(inputs) != b.topology.Inputs() {
		panic(fmt.Sprintf("neural: got %d inputs, brain expects %d", len(inputs), b.topology.Inputs()))
	}

	acts := make([][]float32, len(b.topology))
	acts[0] = append([]float32(nil), inputs...)
	for i := range b.layers {
		out := make([]float32, b.topology[i+1])
		b.layers[i].forward(acts[i], out)
		if i < len(b.layers)-1 {
			relu(out)
		}
		acts[i+1] = out
	}
	return acts
}

// Clone creates a deep copy of the brain.
func (b *Brain) Clone() *Brain {
	clone, _ := FromChromosome(b.topology, b.Chromosome())
	return clone
}

// relu applies max(0, x) in place.
func relu(xs []float32) {
	for i, x := range xs {
		if x < 0 {
			xs[i] = 0
		}
	}
}
