// Package description :: Declarative description of a filter graph. A description lists manual chains, appended
// first, then compose steps whose generated labels can be referred to by later steps using "$id" or "$id.N"
package description

import (
	"errors"
	"filtergraph-box/pkg/filtergraph"
	"filtergraph-box/pkg/logger"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var log = logger.Build()

// Compose operations a step may perform
const (
	OpChain  = "chain"
	OpBranch = "branch"
	OpMerge  = "merge"
)

// Description A whole graph. JSON is accepted as well, being a subset of YAML
type Description struct {
	Chains []ChainSpec `yaml:"chains"`
	Steps  []StepSpec  `yaml:"steps"`
}

// ChainSpec A manual chain, labels are written as is
type ChainSpec struct {
	Inputs  []string     `yaml:"inputs"`
	Filters []FilterSpec `yaml:"filters"`
	Outputs []string     `yaml:"outputs"`
}

// FilterSpec A filter and its options. Params is kept as a node so that option order survives decoding
type FilterSpec struct {
	Name   string    `yaml:"name"`
	Params yaml.Node `yaml:"params"`
}

// StepSpec A call to one of the graph compose helpers
type StepSpec struct {
	// Optional, required to refer to the step outputs
	ID string `yaml:"id"`
	// One of OpChain, OpBranch, OpMerge
	Op string `yaml:"op"`
	// chain, branch
	Input string `yaml:"input"`
	// merge
	Inputs []string `yaml:"inputs"`
	// chain
	Filters []FilterSpec `yaml:"filters"`
	// merge
	Filter *FilterSpec `yaml:"filter"`
	// branch
	Count int  `yaml:"count"`
	Audio bool `yaml:"audio"`
}

// PathError An error located somewhere in a description, such as "steps[1].filters[0]"
type PathError struct {
	Path string
	Err  error
}

func (pe *PathError) Error() string {
	return fmt.Sprintf("%s: %s", pe.Path, pe.Err.Error())
}

func (pe *PathError) Unwrap() error {
	return pe.Err
}

func pathErrorf(path string, format string, args ...interface{}) error {
	return &PathError{Path: path, Err: fmt.Errorf(format, args...)}
}

// Decode Read a single description document from r. Unknown fields are rejected
func Decode(r io.Reader) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var d Description
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty description")
		}
		return nil, fmt.Errorf("cannot decode description : %w", err)
	}
	return &d, nil
}

// Build Turn the description into a graph. opts are given to filtergraph.NewGraph.
// Alongside the graph, return the labels generated by every step having an id.
// The graph isn't validated, this is up to the caller
func (d *Description) Build(opts ...filtergraph.Option) (*filtergraph.Graph, map[string][]string, error) {
	g := filtergraph.NewGraph(opts...)

	for i, spec := range d.Chains {
		chain, err := spec.toChain(fmt.Sprintf("chains[%d]", i))
		if err != nil {
			return nil, nil, err
		}
		g.Append(chain)
	}

	outputs := make(map[string][]string)
	for i, step := range d.Steps {
		path := fmt.Sprintf("steps[%d]", i)
		if step.ID != "" {
			if _, exists := outputs[step.ID]; exists {
				return nil, nil, pathErrorf(path, "step id %q is already used", step.ID)
			}
		}
		labels, err := step.apply(g, path, outputs)
		if err != nil {
			return nil, nil, err
		}
		if step.ID != "" {
			outputs[step.ID] = labels
		}
	}
	log.Debugf("[Description] :: built %d chain(s) and %d step(s) into %d chain(s)", len(d.Chains), len(d.Steps), g.Len())
	return g, outputs, nil
}

func (cs ChainSpec) toChain(path string) (filtergraph.Chain, error) {
	chain := filtergraph.NewChain()
	for _, in := range cs.Inputs {
		chain = chain.Input(in)
	}
	filters, err := toFilters(path, cs.Filters)
	if err != nil {
		return chain, err
	}
	for _, f := range filters {
		chain = chain.Filter(f)
	}
	for _, out := range cs.Outputs {
		chain = chain.Output(out)
	}
	return chain, nil
}

func (s StepSpec) apply(g *filtergraph.Graph, path string, outputs map[string][]string) ([]string, error) {
	switch s.Op {
	case OpChain:
		input, err := resolve(path+".input", s.Input, outputs)
		if err != nil {
			return nil, err
		}
		filters, err := toFilters(path, s.Filters)
		if err != nil {
			return nil, err
		}
		out, err := g.ComposeChain(input, filters...)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}
		return []string{out}, nil

	case OpBranch:
		input, err := resolve(path+".input", s.Input, outputs)
		if err != nil {
			return nil, err
		}
		out, err := g.ComposeBranch(input, s.Count, s.Audio)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}
		return out, nil

	case OpMerge:
		inputs := make([]string, len(s.Inputs))
		for i, ref := range s.Inputs {
			in, err := resolve(fmt.Sprintf("%s.inputs[%d]", path, i), ref, outputs)
			if err != nil {
				return nil, err
			}
			inputs[i] = in
		}
		if s.Filter == nil {
			return nil, pathErrorf(path+".filter", "merge requires a filter")
		}
		f, err := s.Filter.toFilter(path + ".filter")
		if err != nil {
			return nil, err
		}
		out, err := g.ComposeMerge(inputs, f)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}
		return []string{out}, nil

	default:
		return nil, pathErrorf(path+".op", "unknown op %q, expected one of %s, %s, %s", s.Op, OpChain, OpBranch, OpMerge)
	}
}

func toFilters(path string, specs []FilterSpec) ([]filtergraph.Filter, error) {
	filters := make([]filtergraph.Filter, len(specs))
	for i, spec := range specs {
		f, err := spec.toFilter(fmt.Sprintf("%s.filters[%d]", path, i))
		if err != nil {
			return nil, err
		}
		filters[i] = f
	}
	return filters, nil
}

func (fs FilterSpec) toFilter(path string) (filtergraph.Filter, error) {
	if fs.Name == "" {
		return filtergraph.Filter{}, pathErrorf(path+".name", "missing filter name")
	}
	f := filtergraph.NewFilter(fs.Name)
	switch fs.Params.Kind {
	case 0:
		// No params at all
		return f, nil
	case yaml.ScalarNode:
		// "params: ~" or "params: null"
		if fs.Params.Tag == "!!null" {
			return f, nil
		}
	case yaml.MappingNode:
		content := fs.Params.Content
		for i := 0; i+1 < len(content); i += 2 {
			key, value := content[i], content[i+1]
			if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
				return filtergraph.Filter{}, pathErrorf(path+".params."+key.Value, "param value must be a scalar")
			}
			f = f.Param(key.Value, value.Value)
		}
		return f, nil
	}
	return filtergraph.Filter{}, pathErrorf(path+".params", "params must be a mapping")
}
