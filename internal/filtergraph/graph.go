// Package filtergraph builds ffmpeg filter graphs as structured node
// sequences and serializes them to the engine's -filter_complex syntax.
// Keeping the graph as data isolates pad naming and escaping in one place
// and makes composition testable without string inspection.
package filtergraph

import (
	"errors"
	"fmt"
	"strings"
)

// Static errors reported at build time. A graph that fails validation is a
// construction bug, never something to hand to the engine.
var (
	// ErrDanglingInput is returned when a node consumes a pad no earlier
	// node produced and that is not a primary input stream.
	ErrDanglingInput = errors.New("filtergraph: input pad has no producer")
	// ErrDuplicateOutput is returned when two nodes claim the same output label.
	ErrDuplicateOutput = errors.New("filtergraph: duplicate output pad label")
	// ErrEmptyGraph is returned when a graph with no nodes is serialized.
	ErrEmptyGraph = errors.New("filtergraph: graph has no nodes")
	// ErrUnlabeledFinal is returned when a final pad was never set or was
	// never produced by any node.
	ErrUnlabeledFinal = errors.New("filtergraph: final pad is not produced by the graph")
)

// Param is one filter parameter. A Param with an empty Key renders as a
// bare positional value (e.g. setpts=PTS-STARTPTS).
type Param struct {
	Key   string
	Value string
}

// Node is one named processing step: a filter with ordered parameters,
// the input pads it consumes and the single output pad it produces.
type Node struct {
	Filter string
	Params []Param
	Inputs []string
	Output string
}

// Graph is an ordered sequence of nodes with explicitly labeled final
// video and audio pads. Order matters: a node may only consume pads
// produced earlier or primary input streams.
type Graph struct {
	nodes      []Node
	finalVideo string
	finalAudio string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Add appends a node to the graph.
func (g *Graph) Add(n Node) {
	g.nodes = append(g.nodes, n)
}

// SetFinalVideo declares which pad carries the finished video stream. The
// assembler maps this pad to the output file.
func (g *Graph) SetFinalVideo(label string) { g.finalVideo = label }

// SetFinalAudio declares which pad carries the finished audio stream.
func (g *Graph) SetFinalAudio(label string) { g.finalAudio = label }

// FinalVideo returns the declared final video pad label, or "".
func (g *Graph) FinalVideo() string { return g.finalVideo }

// FinalAudio returns the declared final audio pad label, or "".
func (g *Graph) FinalAudio() string { return g.finalAudio }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Validate checks the graph invariants: every input pad must be produced
// by an earlier node or be a primary input stream, every output label must
// be unique, and any declared final pad must actually be produced.
func (g *Graph) Validate() error {
	if len(g.nodes) == 0 {
		return ErrEmptyGraph
	}

	produced := make(map[string]bool, len(g.nodes))
	for _, n := range g.nodes {
		for _, in := range n.Inputs {
			if !produced[in] && !isPrimaryStream(in) {
				return fmt.Errorf("%w: %q consumed by %s", ErrDanglingInput, in, n.Filter)
			}
		}
		if n.Output != "" {
			if produced[n.Output] {
				return fmt.Errorf("%w: %q", ErrDuplicateOutput, n.Output)
			}
			produced[n.Output] = true
		}
	}

	for _, final := range []string{g.finalVideo, g.finalAudio} {
		if final != "" && !produced[final] && !isPrimaryStream(final) {
			return fmt.Errorf("%w: %q", ErrUnlabeledFinal, final)
		}
	}
	return nil
}

// String serializes the graph to -filter_complex syntax. Callers must run
// Validate first; String renders whatever it is given.
func (g *Graph) String() string {
	var b strings.Builder
	for i, n := range g.nodes {
		if i > 0 {
			b.WriteByte(';')
		}
		for _, in := range n.Inputs {
			fmt.Fprintf(&b, "[%s]", in)
		}
		b.WriteString(n.Filter)
		for j, p := range n.Params {
			if j == 0 {
				b.WriteByte('=')
			} else {
				b.WriteByte(':')
			}
			if p.Key != "" {
				b.WriteString(p.Key)
				b.WriteByte('=')
			}
			b.WriteString(p.Value)
		}
		if n.Output != "" {
			fmt.Fprintf(&b, "[%s]", n.Output)
		}
	}
	return b.String()
}

// isPrimaryStream reports whether a pad label addresses an input file
// stream directly, e.g. "0:v" or "1:a".
func isPrimaryStream(label string) bool {
	idx, kind, ok := strings.Cut(label, ":")
	if !ok || idx == "" || (kind != "v" && kind != "a") {
		return false
	}
	for _, r := range idx {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
