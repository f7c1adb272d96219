package tracking

import (
	"math"

	"hardsub/internal/detect"
	"hardsub/internal/sampling"
)

// Track is an ordered, append-only sequence of detections believed to
// represent the same on-screen text area over time. Detections are strictly
// increasing in frame index and a track always holds at least one. After the
// tracker closes a track it is read-only input to the classifier.
type Track struct {
	Region     sampling.Region
	Detections []detect.Detection
	Metrics    Metrics

	lastFrame int
}

// Metrics are the aggregate statistics of a closed track. All values are pure
// functions of the track's detections.
type Metrics struct {
	PresenceRatio  float64
	TextChangeRate float64
	YMean          float64
	YStd           float64
	AvgConfidence  float64
	MeanBoxArea    float64
}

// ComputeMetrics derives track statistics from an ordered detection sequence.
// It holds no state: identical inputs always produce identical metrics.
func ComputeMetrics(detections []detect.Detection, totalSampledFrames int) Metrics {
	if len(detections) == 0 {
		return Metrics{}
	}
	if totalSampledFrames < len(detections) {
		totalSampledFrames = len(detections)
	}

	var metrics Metrics
	metrics.PresenceRatio = float64(len(detections)) / float64(totalSampledFrames)

	transitions := 0
	for i := 1; i < len(detections); i++ {
		if detect.NormalizeText(detections[i].Text) != detect.NormalizeText(detections[i-1].Text) {
			transitions++
		}
	}
	metrics.TextChangeRate = float64(transitions) / math.Max(1, float64(len(detections)-1))

	var ySum, confSum, areaSum float64
	for _, d := range detections {
		ySum += d.CenterY()
		confSum += d.Confidence
		areaSum += float64(d.Box.Area())
	}
	n := float64(len(detections))
	metrics.YMean = ySum / n
	metrics.AvgConfidence = confSum / n
	metrics.MeanBoxArea = areaSum / n

	var varianceSum float64
	for _, d := range detections {
		diff := d.CenterY() - metrics.YMean
		varianceSum += diff * diff
	}
	metrics.YStd = math.Sqrt(varianceSum / n)

	return metrics
}

// First returns the track's earliest detection.
func (t *Track) First() detect.Detection {
	return t.Detections[0]
}

// Last returns the track's most recent detection.
func (t *Track) Last() detect.Detection {
	return t.Detections[len(t.Detections)-1]
}
