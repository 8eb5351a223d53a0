package expr

import "fmt"

// Variable A built-in variable of the ffmpeg expression evaluator
type Variable uint8

const (
	// Timestamp in seconds
	T Variable = iota
	// Frame number, starting at 0
	N
	// Position of the frame in the input stream
	Pos
	// Input width
	W
	// Input height
	H
	// Width of the rendered text (drawtext)
	TextW
	// Height of the rendered text (drawtext)
	TextH
	// Height of a text line (drawtext)
	LineH
	// Width of the main input (overlay)
	MainW
	// Height of the main input (overlay)
	MainH
)

var variableNames = [...]string{
	T:     "t",
	N:     "n",
	Pos:   "pos",
	W:     "w",
	H:     "h",
	TextW: "text_w",
	TextH: "text_h",
	LineH: "line_h",
	MainW: "main_w",
	MainH: "main_h",
}

func (v Variable) String() string {
	if int(v) < len(variableNames) {
		return variableNames[v]
	}
	return fmt.Sprintf("Variable(%d)", uint8(v))
}

// ParseVariable Return the variable displayed as name
func ParseVariable(name string) (Variable, error) {
	for i, n := range variableNames {
		if n == name {
			return Variable(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variable: '%s'", name)
}
