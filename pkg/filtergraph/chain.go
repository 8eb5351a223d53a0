package filtergraph

import "strings"

// Chain A linear sequence of filters with its input and output pads.
// Renders as [in1][in2]filter1,filter2[out1][out2]
type Chain struct {
	// Input labels, already bracketed
	inputs []string
	// Filters, applied in order
	filters []Filter
	// Output labels, already bracketed
	outputs []string
}

func NewChain() Chain {
	return Chain{}
}

// Input Return a copy of the chain reading one more pad
func (c Chain) Input(label string) Chain {
	c.inputs = appendCopy(c.inputs, bracket(label))
	return c
}

// Filter Return a copy of the chain with f applied after the existing filters
func (c Chain) Filter(f Filter) Chain {
	c.filters = appendCopy(c.filters, f)
	return c
}

// Output Return a copy of the chain writing one more pad
func (c Chain) Output(label string) Chain {
	c.outputs = appendCopy(c.outputs, bracket(label))
	return c
}

// Inputs Bracketed input labels
func (c Chain) Inputs() []string {
	return append([]string(nil), c.inputs...)
}

func (c Chain) Filters() []Filter {
	return append([]Filter(nil), c.filters...)
}

// Outputs Bracketed output labels
func (c Chain) Outputs() []string {
	return append([]string(nil), c.outputs...)
}

func (c Chain) String() string {
	filters := make([]string, len(c.filters))
	for i, f := range c.filters {
		filters[i] = f.String()
	}
	return strings.Join(c.inputs, "") + strings.Join(filters, ",") + strings.Join(c.outputs, "")
}

