// Package radar builds the segment-relative equipment benchmark: peer
// averages and best-in-class per pillar across the own vehicle and its
// competitor set.
package radar

import (
	"math"

	"dealer-benchmark/internal/benchmark/pillar"
	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/benchmark/segment"
)

// Sample is the benchmark for one pillar.
//
// OwnValue uses a display floor of 0 when the pillar is unresolved; the
// average and best-in-class computations instead drop unresolved peers
// entirely. The asymmetry is deliberate: 0 is a chart floor, not a score.
type Sample struct {
	Pillar           pillar.Pillar `json:"pillar"`
	Label            string        `json:"label"`
	OwnValue         float64       `json:"ownValue"`
	PeerAverage      float64       `json:"peerAverage"`
	BestValue        float64       `json:"bestValue"`
	BestVehicleLabel string        `json:"bestVehicleLabel"`
	SampleSize       int           `json:"sampleSize"`
	ResolvedCount    int           `json:"resolvedCount"`
	Unresolved       bool          `json:"unresolved"`
}

// Build returns one Sample per pillar.
//
// The peer sample is the own vehicle plus every competitor sharing its
// segment. When the own segment is unclassified, or no competitor shares it,
// the sample degrades to own plus all competitors rather than failing.
func Build(own record.Vehicle, competitors []record.Vehicle) []Sample {
	peers := peerSample(own, competitors)

	samples := make([]Sample, 0, len(pillar.All()))
	for _, p := range pillar.All() {
		samples = append(samples, buildPillar(own, peers, p))
	}
	return samples
}

func peerSample(own record.Vehicle, competitors []record.Vehicle) []record.Vehicle {
	peers := make([]record.Vehicle, 0, len(competitors)+1)
	peers = append(peers, own)

	ownSegment := segment.Classify(own)
	if !ownSegment.IsUnclassified() {
		for _, c := range competitors {
			if ownSegment.Matches(segment.Classify(c)) {
				peers = append(peers, c)
			}
		}
		if len(peers) > 1 {
			return peers
		}
	}

	// Degenerate sample: fall back to the unfiltered set.
	peers = peers[:1]
	return append(peers, competitors...)
}

func buildPillar(own record.Vehicle, peers []record.Vehicle, p pillar.Pillar) Sample {
	sample := Sample{
		Pillar:     p,
		Label:      p.Label(),
		SampleSize: len(peers),
	}

	var sum float64
	for _, peer := range peers {
		value, ok := pillar.Resolve(peer, p)
		if !ok {
			continue
		}
		sum += value
		sample.ResolvedCount++
		if value > sample.BestValue {
			// Ties keep the first encountered in peer-sample order.
			sample.BestValue = value
			sample.BestVehicleLabel = peer.Label()
		}
	}

	if sample.ResolvedCount == 0 {
		sample.Unresolved = true
	} else {
		sample.PeerAverage = round1(sum / float64(sample.ResolvedCount))
	}

	// Display floor: unresolved own renders at 0 on the chart.
	if ownValue, ok := pillar.Resolve(own, p); ok {
		sample.OwnValue = ownValue
	}

	return sample
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
