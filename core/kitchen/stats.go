package kitchen

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// WaitStats aggregates the recorded wait-time samples.
type WaitStats struct {
	AvgFoodWaitSeconds    float64
	AvgCourierWaitSeconds float64
	Samples               int
}

// Stats returns the arithmetic mean of each sample sequence. Both means are 0
// when no pair has been dispatched yet.
func (m *Mediator) Stats() WaitStats {
	m.mu.Lock()
	food := seconds(m.foodWait)
	courier := seconds(m.courierWait)
	m.mu.Unlock()

	s := WaitStats{Samples: len(food)}
	if len(food) > 0 {
		s.AvgFoodWaitSeconds = stat.Mean(food, nil)
	}
	if len(courier) > 0 {
		s.AvgCourierWaitSeconds = stat.Mean(courier, nil)
	}
	return s
}

// LogAverages renders the aggregate means through the logger.
func (m *Mediator) LogAverages() {
	s := m.Stats()
	if s.Samples == 0 {
		m.log.Infof("no dispatches recorded")
		return
	}
	m.log.Infof("average food wait %.2fs, average courier wait %.2fs over %d dispatches",
		s.AvgFoodWaitSeconds, s.AvgCourierWaitSeconds, s.Samples)
}

func seconds(ds []time.Duration) []float64 {
	if len(ds) == 0 {
		return nil
	}
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Seconds()
	}
	return out
}
