package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	errs    []error
	tags    []map[string]string
	flushed int
}

func (r *recorder) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func (r *recorder) Flush(time.Duration) { r.flushed++ }

func TestGlobalMonitor(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	t.Cleanup(func() { Init(NopMonitor{}) })
	Init(nil)

	CaptureException(nil, nil)
	CaptureException(errors.New("boom"), map[string]string{"command": "sweep"})
	Flush(time.Second)

	assert.Len(t, rec.errs, 1)
	assert.Equal(t, "sweep", rec.tags[0]["command"])
	assert.Equal(t, 1, rec.flushed)
}

func TestRecoverReportsAndRepanics(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	t.Cleanup(func() { Init(NopMonitor{}) })

	assert.PanicsWithValue(t, "bad", func() {
		defer Recover()
		panic("bad")
	})
	assert.EqualError(t, rec.errs[0], "panic: bad")
	assert.Equal(t, 1, rec.flushed)
}
