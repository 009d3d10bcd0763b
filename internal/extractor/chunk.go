package extractor

import "math"

// Segment is one bounded slice of audio to transcribe independently.
type Segment struct {
	Start    float64
	Duration float64
}

// PlanSegments splits a duration into segments of roughly segmentSeconds
// each. Nominal boundaries snap to the midpoint of the nearest silence gap
// within window seconds; boundaries with no qualifying gap stay fixed and
// minor word-boundary artifacts at those seams are accepted.
func PlanSegments(duration, segmentSeconds, window float64, silences []Silence) []Segment {
	if duration <= segmentSeconds {
		return []Segment{{Start: 0, Duration: duration}}
	}

	count := int(math.Ceil(duration / segmentSeconds))
	boundaries := make([]float64, 0, count+1)
	boundaries = append(boundaries, 0)

	for i := 1; i < count; i++ {
		nominal := float64(i) * segmentSeconds
		cut := snapToSilence(nominal, window, silences)
		// Boundaries must stay strictly increasing.
		if cut <= boundaries[len(boundaries)-1] {
			cut = nominal
		}
		if cut < duration {
			boundaries = append(boundaries, cut)
		}
	}
	boundaries = append(boundaries, duration)

	segments := make([]Segment, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		segments = append(segments, Segment{
			Start:    boundaries[i],
			Duration: boundaries[i+1] - boundaries[i],
		})
	}
	return segments
}

// snapToSilence returns the midpoint of the silence gap closest to the
// nominal boundary, if one lies within the window. Otherwise nominal.
func snapToSilence(nominal, window float64, silences []Silence) float64 {
	best := nominal
	bestDist := window
	for _, s := range silences {
		mid := s.Mid()
		dist := math.Abs(mid - nominal)
		if dist <= bestDist {
			best = mid
			bestDist = dist
		}
	}
	return best
}
