package patterns

import (
	"filtergraph-box/pkg/filtergraph"
	"fmt"
)

// MixdownOptions Shape of a voice-over mixdown
type MixdownOptions struct {
	// Number of main audio tracks, read from inputs 1:a to AudioTracks:a (input 0 being the picture)
	AudioTracks int
	// Whether an extra background track is read from input AudioTracks+1
	SideTrack bool
	// Volume of the side track before it is mixed in
	SideVolume float64
	// How the main tracks are ducked under the side track
	Ducking DuckingOptions
	// Optional, see filtergraph.WithPrefixSource
	Prefixes filtergraph.PrefixSource
}

// DefaultMixdownOptions A single main track, without side track
func DefaultMixdownOptions() MixdownOptions {
	return MixdownOptions{
		AudioTracks: 1,
		SideVolume:  0.22,
		Ducking:     DefaultDuckingOptions(),
	}
}

// Mixdown Build a whole graph turning the main audio tracks into one normalized track.
// If multiple tracks are specified, they will be concatenated. If a side track is specified, it gets mixed under
// the main track. Return the validated graph and the label of its final audio
func Mixdown(opts MixdownOptions) (*filtergraph.Graph, string, error) {
	if opts.AudioTracks < 1 {
		return nil, "", fmt.Errorf("no audio track specified")
	}
	if opts.SideTrack {
		if err := opts.Ducking.Validate(); err != nil {
			return nil, "", fmt.Errorf("invalid ducking options : %w", err)
		}
	}
	g := filtergraph.NewGraph(filtergraph.WithPrefixSource(opts.Prefixes))

	// audio tracks
	root := "1:a"
	if opts.AudioTracks > 1 {
		// If multiple tracks are specified, concat them
		tracks := make([]string, opts.AudioTracks)
		for i := range tracks {
			tracks[i] = fmt.Sprintf("%d:a", i+1)
		}
		var err error
		if root, err = ConcatAudio(g, tracks); err != nil {
			return nil, "", err
		}
	}

	// In any way, normalize...
	root, err := Normalize(g, root, Speechnorm)
	if err != nil {
		return nil, "", err
	}
	// ... and resample the resulting audio
	if root, err = Resample(g, root, K44); err != nil {
		return nil, "", err
	}

	// If a side audio track is specified, add it to the mix
	if opts.SideTrack {
		side := fmt.Sprintf("%d:a", opts.AudioTracks+1)
		// Normalize it...
		if side, err = Normalize(g, side, Dynaudnorm); err != nil {
			return nil, "", err
		}
		// And reduce its volume to properly stay in the background
		if side, err = Volume(g, side, opts.SideVolume); err != nil {
			return nil, "", err
		}
		// ... and mix it with the main audio track
		if root, err = Duck(g, root, side, opts.Ducking); err != nil {
			return nil, "", err
		}
	}

	if err = g.Validate(); err != nil {
		return nil, "", fmt.Errorf("mixdown graph is inconsistent : %w", err)
	}
	log.Debugf("[Patterns] :: mixdown of %d track(s) ready in [%s]", opts.AudioTracks, root)
	return g, root, nil
}
