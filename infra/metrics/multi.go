package metrics

import coremetrics "github.com/cloudkitchen/dispatch/core/metrics"

// MultiSink fans dispatch records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDispatch forwards the records to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordDispatch(recs []coremetrics.DispatchRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordDispatch(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordQueueSizes forwards queue depths to sinks that support them.
func (m *MultiSink) RecordQueueSizes(ready, waiting int) error {
	for _, s := range m.Sinks {
		if qr, ok := s.(coremetrics.QueueSizeRecorder); ok {
			if err := qr.RecordQueueSizes(ready, waiting); err != nil {
				return err
			}
		}
	}
	return nil
}
