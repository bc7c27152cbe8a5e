package jobs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshAnnouncement(ctx context.Context) (string, error) {
	r.calls.Add(1)
	return "", r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&countingRefresher{}, testLogger())
	assert.Error(t, s.Start("every now and then"))
}

func TestRefreshAnnouncement(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler(r, testLogger())

	s.RefreshAnnouncement()
	r.err = fmt.Errorf("db down")
	s.RefreshAnnouncement()

	assert.Equal(t, int32(2), r.calls.Load())
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(&countingRefresher{}, testLogger())
	assert.NoError(t, s.Start("0 0 * * * *"))
	s.Stop()
}
