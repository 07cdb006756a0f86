package session

import (
	"context"
	"testing"
	"time"

	"github.com/readshelf/core/internal/database/dbtest"
	"github.com/readshelf/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newService(t *testing.T) (*Service, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC)}
	svc := NewService(dbtest.New(t), 30*time.Minute)
	svc.now = clk.now
	return svc, clk
}

func TestRecordExtendsActivity(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	first, err := svc.Record(ctx, 1, Event{ChapterID: 10, SeriesID: 2, Page: 5, DeviceID: 3})
	require.NoError(t, err)
	clk.advance(2 * time.Minute)
	_, err = svc.Record(ctx, 1, Event{ChapterID: 10, SeriesID: 2, Page: 9, DeviceID: 4})
	require.NoError(t, err)
	clk.advance(time.Minute)
	second, err := svc.Record(ctx, 1, Event{ChapterID: 10, SeriesID: 2, Page: 2, DeviceID: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	active, err := svc.Active(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Len(t, active.Activities, 1)
	act := active.Activities[0]
	assert.Equal(t, 2, act.StartPage)
	assert.Equal(t, 9, act.EndPage)
	assert.Equal(t, 7, act.PagesRead)
	assert.Equal(t, models.IntArray{3, 4}, act.DeviceIDs)
	assert.True(t, clk.t.Equal(active.LastActivityUtc))
}

func TestRecordStartsNewSessionAfterIdle(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	first, err := svc.Record(ctx, 1, Event{ChapterID: 10, Page: 1})
	require.NoError(t, err)
	lastTurn := clk.t
	clk.advance(31 * time.Minute)
	second, err := svc.Record(ctx, 1, Event{ChapterID: 11, Page: 1})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	closed, err := svc.ClosedBetween(ctx, lastTurn.Add(-time.Hour), clk.t.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, first.ID, closed[0].ID)
	require.NotNil(t, closed[0].EndTimeUtc)
	assert.True(t, lastTurn.Equal(*closed[0].EndTimeUtc))
	assert.Len(t, closed[0].Activities, 1)
}

func TestEndIdleSessions(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, 1, Event{ChapterID: 10, Page: 1})
	require.NoError(t, err)
	clk.advance(10 * time.Minute)
	_, err = svc.Record(ctx, 2, Event{ChapterID: 10, Page: 1})
	require.NoError(t, err)

	clk.advance(25 * time.Minute)
	n, err := svc.EndIdleSessions(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	active, err := svc.Active(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, active)
	active, err = svc.Active(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, active)
}

func TestDeviceIDsForUser(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	ids, err := svc.DeviceIDsForUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = svc.Record(ctx, 1, Event{ChapterID: 10, Page: 1, DeviceID: 1})
	require.NoError(t, err)
	_, err = svc.Record(ctx, 1, Event{ChapterID: 11, Page: 1, DeviceID: 1})
	require.NoError(t, err)
	clk.advance(time.Hour)
	_, err = svc.Record(ctx, 1, Event{ChapterID: 10, Page: 1, DeviceID: 2})
	require.NoError(t, err)
	_, err = svc.Record(ctx, 2, Event{ChapterID: 10, Page: 1, DeviceID: 9})
	require.NoError(t, err)

	ids, err = svc.DeviceIDsForUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2}, ids)
}
