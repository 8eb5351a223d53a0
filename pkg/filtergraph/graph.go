package filtergraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFilters ComposeChain was given an empty filter list
	ErrNoFilters = errors.New("compose chain requires at least one filter")
	// ErrBranchCount ComposeBranch was asked for less than 2 branches
	ErrBranchCount = errors.New("compose branch requires count >= 2")
	// ErrMergeInputs ComposeMerge was given less than 2 inputs
	ErrMergeInputs = errors.New("compose merge requires at least 2 inputs")
)

// Graph An ordered set of chains, rendered into a single -filter_complex value.
// Chains are only ever appended, never removed nor reordered. The zero value is an empty graph
type Graph struct {
	chains []Chain
	// Where generated labels get their prefix from. nil means DefaultPrefixes
	prefixes PrefixSource
}

// Option Configure a Graph at construction
type Option func(*Graph)

// WithPrefixSource Draw generated label prefixes from src instead of the process-wide counter
func WithPrefixSource(src PrefixSource) Option {
	return func(g *Graph) {
		g.prefixes = src
	}
}

func NewGraph(opts ...Option) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Append Add a chain at the end of the graph
func (g *Graph) Append(c Chain) *Graph {
	g.chains = append(g.chains, c)
	return g
}

// Chains Copy of the chains, in insertion order
func (g *Graph) Chains() []Chain {
	return append([]Chain(nil), g.chains...)
}

// Len Number of chains
func (g *Graph) Len() int {
	return len(g.chains)
}

// ComposeChain Wire input through filters into a freshly generated label, and return that label
func (g *Graph) ComposeChain(input string, filters ...Filter) (string, error) {
	if len(filters) == 0 {
		return "", fmt.Errorf("from [%s]: %w", input, ErrNoFilters)
	}
	gen := NewLabelGenerator(g.prefixes)
	output := gen.Next()

	chain := NewChain().Input(input)
	for _, f := range filters {
		chain = chain.Filter(f)
	}
	g.Append(chain.Output(output))
	log.Debugf("[Filter graph] :: composed chain [%s] -> [%s]", input, output)
	return output, nil
}

// ComposeBranch Duplicate input into count freshly generated labels using split (or asplit when audio is set)
func (g *Graph) ComposeBranch(input string, count int, audio bool) ([]string, error) {
	if count < 2 {
		return nil, fmt.Errorf("from [%s], got %d: %w", input, count, ErrBranchCount)
	}
	gen := NewLabelGenerator(g.prefixes)

	chain := NewChain().Input(input).Filter(Split(count, audio))
	outputs := make([]string, count)
	for i := range outputs {
		outputs[i] = gen.Next()
		chain = chain.Output(outputs[i])
	}
	g.Append(chain)
	log.Debugf("[Filter graph] :: composed branch [%s] -> %s", input, strings.Join(outputs, ", "))
	return outputs, nil
}

// ComposeMerge Feed two or more labels into filter, writing a freshly generated label which is returned
func (g *Graph) ComposeMerge(inputs []string, filter Filter) (string, error) {
	if len(inputs) < 2 {
		return "", fmt.Errorf("got %d: %w", len(inputs), ErrMergeInputs)
	}
	gen := NewLabelGenerator(g.prefixes)
	output := gen.Next()

	chain := NewChain()
	for _, in := range inputs {
		chain = chain.Input(in)
	}
	g.Append(chain.Filter(filter).Output(output))
	log.Debugf("[Filter graph] :: composed merge %s -> [%s]", strings.Join(inputs, ", "), output)
	return output, nil
}

// String Chains joined by ";" in insertion order. No validation is performed, see ValidatedString
func (g *Graph) String() string {
	chains := make([]string, len(g.chains))
	for i, c := range g.chains {
		chains[i] = c.String()
	}
	return strings.Join(chains, ";")
}

// ValidatedString Render the graph only if Validate reports nothing
func (g *Graph) ValidatedString() (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	return g.String(), nil
}
