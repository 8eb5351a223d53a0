package filtergraph

import (
	"fmt"
	"strings"
)

// Finding A structural defect of a graph, reported by Validate
type Finding interface {
	error
	// Kind Short machine-friendly name of the defect
	Kind() string
}

// UnconnectedPadError An input label that no chain outputs
type UnconnectedPadError struct {
	Label string
}

func (e *UnconnectedPadError) Error() string {
	return fmt.Sprintf("Unconnected pad [%s]: no matching output found. "+
		"Add an output label [%s] to another chain, or remove this input.", e.Label, e.Label)
}

func (e *UnconnectedPadError) Kind() string { return "unconnected_pad" }

// DuplicateLabelError An output label written by more than one chain
type DuplicateLabelError struct {
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("Duplicate output label [%s]: each output label must be unique. "+
		"Rename one of the outputs to a different label.", e.Label)
}

func (e *DuplicateLabelError) Kind() string { return "duplicate_label" }

// CycleDetectedError Chains feeding each other. Labels holds the outputs of every chain left in a cycle,
// disjoint cycles are reported together
type CycleDetectedError struct {
	Labels []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("Cycle detected involving labels: [%s]. "+
		"Break the cycle by removing or redirecting one of these connections.", strings.Join(e.Labels, ", "))
}

func (e *CycleDetectedError) Kind() string { return "cycle_detected" }

// ValidationErrors Every finding of a single Validate call
type ValidationErrors []Finding

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, f := range ve {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap Allow errors.As / errors.Is to reach individual findings
func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, len(ve))
	for i, f := range ve {
		errs[i] = f
	}
	return errs
}

// Validate Check the wiring of the whole graph. All findings are returned at once as ValidationErrors,
// nil means the graph is consistent. The graph is left untouched and composition may go on afterwards
func (g *Graph) Validate() error {
	var findings ValidationErrors

	// Output label -> index of the chain producing it.
	// On duplicates, the last producer wins and is the one edges are built from
	producers := make(map[string]int)
	for i, c := range g.chains {
		for _, out := range c.outputs {
			label := stripBrackets(out)
			if _, seen := producers[label]; seen {
				findings = append(findings, &DuplicateLabelError{Label: label})
			}
			producers[label] = i
		}
	}

	// Every input must come from an -i stream or from some chain
	for _, c := range g.chains {
		for _, in := range c.inputs {
			label := stripBrackets(in)
			if streamReference.MatchString(label) {
				continue
			}
			if _, ok := producers[label]; !ok {
				findings = append(findings, &UnconnectedPadError{Label: label})
			}
		}
	}

	if cycle := g.findCycle(producers); cycle != nil {
		findings = append(findings, cycle)
	}

	if len(findings) == 0 {
		return nil
	}
	for _, f := range findings {
		log.Debugf("[Filter graph] :: validation finding : %s", f.Error())
	}
	return findings
}

// Kahn's algorithm over chains, with an edge from each producer to each of its consumers.
// Chains never reaching a zero in-degree are part of (or downstream of) a cycle
func (g *Graph) findCycle(producers map[string]int) *CycleDetectedError {
	inDegree := make([]int, len(g.chains))
	consumers := make([][]int, len(g.chains))
	for i, c := range g.chains {
		for _, in := range c.inputs {
			label := stripBrackets(in)
			if streamReference.MatchString(label) {
				continue
			}
			if src, ok := producers[label]; ok {
				consumers[src] = append(consumers[src], i)
				inDegree[i]++
			}
		}
	}

	queue := make([]int, 0, len(g.chains))
	for i, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, i)
		}
	}
	visited := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range consumers[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if visited == len(g.chains) {
		return nil
	}

	labels := []string{}
	for i, c := range g.chains {
		if inDegree[i] == 0 {
			continue
		}
		for _, out := range c.outputs {
			labels = append(labels, stripBrackets(out))
		}
	}
	return &CycleDetectedError{Labels: labels}
}
