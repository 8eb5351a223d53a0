// Package filtergraph :: Define ffmpeg filters, chains and graphs as an object model to be later rendered into
// the ffmpeg -filter_complex option. A graph can be checked for wiring mistakes (duplicated or dangling labels,
// cycles) before it is handed to ffmpeg, which would only fail with an obscure message
package filtergraph

import (
	"filtergraph-box/pkg/logger"
	"regexp"
	"strings"
)

var log = logger.Build()

// A bracket-stripped label denoting a raw ffmpeg input stream ("0:v", "1:a", "2:s:0")
var streamReference = regexp.MustCompile(`^[0-9]+:.+`)

// IsStreamReference Whether label (with or without brackets) refers to an -i input rather than to a chain output
func IsStreamReference(label string) bool {
	return streamReference.MatchString(stripBrackets(label))
}

func bracket(label string) string {
	return "[" + label + "]"
}

// "[label]" -> "label"
func stripBrackets(label string) string {
	return strings.TrimRight(strings.TrimLeft(label, "["), "]")
}

// Append to a copy of s, never to its backing array, so that values sharing it stay untouched
func appendCopy[T any](s []T, items ...T) []T {
	return append(s[:len(s):len(s)], items...)
}
