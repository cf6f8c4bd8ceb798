package metrics

import "time"

// DispatchRecord captures one completed order/courier pairing.
type DispatchRecord struct {
	OrderID      string
	CourierID    string
	FoodWait     time.Duration
	CourierWait  time.Duration
	DispatchedAt time.Time
}

// MetricsSink records dispatch results for observability purposes.
type MetricsSink interface {
	RecordDispatch(recs []DispatchRecord) error
}

// QueueSizeRecorder is implemented by sinks that track the depth of the
// ready and waiting sets after each dispatch round.
type QueueSizeRecorder interface {
	RecordQueueSizes(ready, waiting int) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordDispatch implements MetricsSink.
func (NopSink) RecordDispatch([]DispatchRecord) error { return nil }
