package filtergraph

// The option order of these factories is relied upon by tests and by the compose helpers, don't reorder them

// Concat Put n segments one after another, each having v video and a audio streams
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#concat
func Concat(n, v, a int) Filter {
	return NewFilter("concat").Param("n", n).Param("v", v).Param("a", a)
}

// Scale Resize to width x height. -1 keeps the aspect ratio for that dimension
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#scale
func Scale(width, height int) Filter {
	return NewFilter("scale").Param("w", width).Param("h", height)
}

// ScaleFit Resize to fit inside width x height, keeping the aspect ratio
func ScaleFit(width, height int) Filter {
	return Scale(width, height).Param("force_original_aspect_ratio", "decrease")
}

// Pad Center the input on a width x height canvas filled with color
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#pad
func Pad(width, height int, color string) Filter {
	return NewFilter("pad").
		Param("w", width).
		Param("h", height).
		Param("x", "(ow-iw)/2").
		Param("y", "(oh-ih)/2").
		Param("color", color)
}

// Format Convert to the pixel format pixFmt
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#format
func Format(pixFmt string) Filter {
	return NewFilter("format").Param("pix_fmts", pixFmt)
}

// Split Duplicate the input count times, asplit for audio
// Documentation : https://ffmpeg.org/ffmpeg-filters.html#split_002c-asplit
func Split(count int, audio bool) Filter {
	name := "split"
	if audio {
		name = "asplit"
	}
	return NewFilter(name).Param("outputs", count)
}
