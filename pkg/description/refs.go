package description

import (
	"strconv"
	"strings"
)

// Prefix of a reference to a previous step output
const refPrefix = "$"

// resolve Turn ref into a label. "$id" is the single output of step id, "$id.N" the Nth output of a branch.
// Anything else is a plain label
func resolve(path string, ref string, outputs map[string][]string) (string, error) {
	if ref == "" {
		return "", pathErrorf(path, "missing input")
	}
	if !strings.HasPrefix(ref, refPrefix) {
		return ref, nil
	}
	id, index, indexed := strings.Cut(strings.TrimPrefix(ref, refPrefix), ".")
	labels, ok := outputs[id]
	if !ok {
		return "", pathErrorf(path, "%q refers to no previous step", ref)
	}
	if !indexed {
		if len(labels) != 1 {
			return "", pathErrorf(path, "%q has %d outputs, pick one with %s.N", ref, len(labels), ref)
		}
		return labels[0], nil
	}
	n, err := strconv.Atoi(index)
	if err != nil {
		return "", pathErrorf(path, "%q : invalid output index %q", ref, index)
	}
	if n < 0 || n >= len(labels) {
		return "", pathErrorf(path, "%q : output index out of range, step has %d outputs", ref, len(labels))
	}
	return labels[n], nil
}
