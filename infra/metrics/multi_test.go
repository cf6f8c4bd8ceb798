package metrics

import (
	"errors"
	"testing"
	"time"

	coremetrics "github.com/cloudkitchen/dispatch/core/metrics"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	recs    []coremetrics.DispatchRecord
	ready   int
	waiting int
	err     error
}

func (s *recordingSink) RecordDispatch(recs []coremetrics.DispatchRecord) error {
	if s.err != nil {
		return s.err
	}
	s.recs = append(s.recs, recs...)
	return nil
}

func (s *recordingSink) RecordQueueSizes(ready, waiting int) error {
	s.ready, s.waiting = ready, waiting
	return nil
}

func TestMultiSinkFanout(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b, coremetrics.NopSink{})
	recs := []coremetrics.DispatchRecord{{
		OrderID:     "o1",
		CourierID:   "c1",
		FoodWait:    time.Second,
		CourierWait: 2 * time.Second,
	}}
	assert.NoError(t, m.RecordDispatch(recs))
	assert.Len(t, a.recs, 1)
	assert.Len(t, b.recs, 1)

	assert.NoError(t, m.RecordQueueSizes(3, 2))
	assert.Equal(t, 3, a.ready)
	assert.Equal(t, 2, b.waiting)
}

func TestMultiSinkFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{err: boom}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	err := m.RecordDispatch([]coremetrics.DispatchRecord{{OrderID: "o1"}})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, b.recs)
}
