package filtergraph

import (
	"fmt"
	"sync/atomic"
)

//go:generate mockgen -destination=../../internal/mock/mock-labels/mock_labels.go -package=mock_labels filtergraph-box/pkg/filtergraph PrefixSource

// PrefixSource Hands out label prefixes. A source must never return the same prefix twice
type PrefixSource interface {
	NextPrefix() uint64
}

// PrefixCounter A lock-free, monotonic PrefixSource. The zero value starts at 0 and is ready to use
type PrefixCounter struct {
	next atomic.Uint64
}

func (pc *PrefixCounter) NextPrefix() uint64 {
	return pc.next.Add(1) - 1
}

// DefaultPrefixes Process-wide prefix counter shared by every graph that wasn't given its own source.
// It is never reset, so two generators drawing from it can't produce the same label during the process lifetime
var DefaultPrefixes PrefixSource = &PrefixCounter{}

// LabelGenerator Allocates synthetic pad labels "_auto_<prefix>_<n>".
// The prefix is drawn once from a PrefixSource at construction, n counts up per generator.
// A generator is not safe for concurrent use, the PrefixSource is
type LabelGenerator struct {
	prefix uint64
	next   uint64
}

// NewLabelGenerator Draw a new prefix from src, DefaultPrefixes if src is nil
func NewLabelGenerator(src PrefixSource) *LabelGenerator {
	if src == nil {
		src = DefaultPrefixes
	}
	return &LabelGenerator{prefix: src.NextPrefix()}
}

// Next Return a label never returned before by any generator sharing this generator's source
func (lg *LabelGenerator) Next() string {
	label := fmt.Sprintf("_auto_%d_%d", lg.prefix, lg.next)
	lg.next++
	return label
}
