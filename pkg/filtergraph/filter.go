package filtergraph

import (
	"filtergraph-box/pkg/filtergraph/expr"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Param A single key=value option of a filter
type Param struct {
	Key   string
	Value string
}

// Filter A single ffmpeg filter with its options. Option order is kept as inserted
// Documentation : https://ffmpeg.org/ffmpeg-filters.html
type Filter struct {
	// Filter name, as known by ffmpeg ("scale", "amix"...)
	name string
	// Options, in insertion order
	params []Param
}

// NewFilter Build a filter without any option
func NewFilter(name string) Filter {
	return Filter{name: name}
}

// Param Return a copy of the filter with one more option. Values are rendered with formatValue
func (f Filter) Param(key string, value interface{}) Filter {
	f.params = appendCopy(f.params, Param{Key: key, Value: formatValue(value)})
	return f
}

func (f Filter) Name() string {
	return f.name
}

// Params Options of the filter, in insertion order
func (f Filter) Params() []Param {
	return append([]Param(nil), f.params...)
}

// String Expected format : name or name=k1=v1:k2=v2
func (f Filter) String() string {
	if len(f.params) == 0 {
		return f.name
	}
	ss := strings.Builder{}
	ss.WriteString(f.name)
	ss.WriteByte('=')
	for i, p := range f.params {
		if i > 0 {
			ss.WriteByte(':')
		}
		ss.WriteString(fmt.Sprintf("%s=%s", p.Key, p.Value))
	}
	return ss.String()
}

// Floats follow the same rule as expression constants : NaN, ±Inf and -0 are rendered as 0
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return expr.Constant(v).String()
	case float32:
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
			return "0"
		}
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
