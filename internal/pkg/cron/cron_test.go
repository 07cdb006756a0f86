package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunNowRecordsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(zap.New(core))

	fail := true
	s.Register(Job{Name: "b", Interval: time.Hour, Fn: func(context.Context) error {
		if fail {
			return errors.New("boom")
		}
		return nil
	}})
	s.Register(Job{Name: "a", Interval: time.Hour, Fn: func(context.Context) error { return nil }})

	res, err := s.RunNow(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, StatusReject, res.Status)
	assert.Equal(t, "boom", res.Message)
	assert.Equal(t, 1, logs.FilterMessage("job failed").Len())

	fail = false
	res, err = s.RunNow(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, StatusFulfill, res.Status)

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, StatusIdle, items[0].Status)
	assert.NotNil(t, items[1].LastRunAt)
}

func TestUnknownJob(t *testing.T) {
	s := New(nil)
	_, err := s.GetTask("missing")
	assert.Error(t, err)
	assert.Error(t, s.Run(context.Background(), "missing"))
}

func TestStartRunsOnInterval(t *testing.T) {
	s := New(nil)
	var runs int32
	s.Register(Job{Name: "tick", Interval: 10 * time.Millisecond, Fn: func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, time.Second, 5*time.Millisecond)
}
