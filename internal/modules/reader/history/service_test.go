package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/database/dbtest"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/models"
	"github.com/readshelf/core/internal/modules/reader/session"
	"github.com/readshelf/core/internal/pkg/jwt"
	"github.com/readshelf/core/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var day = time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC)

func seedSession(t *testing.T, db *gorm.DB, userID int, start time.Time, d time.Duration, acts ...models.ReadingActivityModel) {
	t.Helper()
	end := start.Add(d)
	sess := models.ReadingSessionModel{
		UserID:          userID,
		StartTimeUtc:    start,
		EndTimeUtc:      &end,
		LastActivityUtc: end,
		Activities:      acts,
	}
	require.NoError(t, db.Create(&sess).Error)
}

func activity(chapterID, seriesID, pages int, devices ...int) models.ReadingActivityModel {
	return models.ReadingActivityModel{ChapterID: chapterID, SeriesID: seriesID, PagesRead: pages, DeviceIDs: models.IntArray(devices)}
}

func TestAggregate(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	kobo := models.DeviceModel{UserID: 1, Name: "Kobo"}
	firefox := models.DeviceModel{UserID: 1, Name: "Firefox on Linux"}
	require.NoError(t, db.Create(&kobo).Error)
	require.NoError(t, db.Create(&firefox).Error)

	seedSession(t, db, 1, day.Add(8*time.Hour), 20*time.Minute,
		activity(10, 1, 12, kobo.ID),
		activity(11, 1, 5, kobo.ID, firefox.ID),
	)
	seedSession(t, db, 1, day.Add(21*time.Hour), 15*time.Minute+40*time.Second,
		activity(10, 1, 3, firefox.ID),
		activity(30, 2, 7),
	)
	seedSession(t, db, 2, day.Add(9*time.Hour), 5*time.Minute, activity(10, 1, 1))
	seedSession(t, db, 1, day.AddDate(0, 0, 1).Add(time.Hour), time.Hour, activity(99, 9, 40))
	// still open, not counted
	require.NoError(t, db.Create(&models.ReadingSessionModel{UserID: 1, StartTimeUtc: day.Add(22 * time.Hour), IsActive: true}).Error)

	svc := NewService(db, session.NewService(db, 0), nil)
	n, err := svc.Aggregate(ctx, day.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var row models.ReadingHistoryModel
	require.NoError(t, db.Where("user_id = ?", 1).First(&row).Error)
	assert.True(t, day.Equal(row.DateUtc))
	assert.Equal(t, 35, row.TotalMinutes)
	assert.Equal(t, 27, row.TotalPages)
	assert.Equal(t, 3, row.ChaptersTouched)
	assert.Equal(t, 2, row.SeriesTouched)
	assert.Equal(t, models.IntArray{kobo.ID, firefox.ID}, row.DeviceIDs)
	assert.Equal(t, "Kobo, Firefox on Linux", row.ClientInfoSummary)

	// re-running the same day overwrites instead of duplicating
	seedSession(t, db, 1, day.Add(23*time.Hour), 10*time.Minute, activity(12, 1, 4))
	_, err = svc.Aggregate(ctx, day)
	require.NoError(t, err)
	var rows []models.ReadingHistoryModel
	require.NoError(t, db.Where("user_id = ?", 1).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 31, rows[0].TotalPages)
	assert.Equal(t, 4, rows[0].ChaptersTouched)
}

func TestAggregateRecentAndList(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	seedSession(t, db, 1, day.Add(time.Hour), time.Minute, activity(1, 1, 2))
	seedSession(t, db, 1, day.AddDate(0, 0, 1).Add(time.Hour), time.Minute, activity(1, 1, 3))
	seedSession(t, db, 1, day.AddDate(0, 0, -5), time.Minute, activity(1, 1, 4))

	svc := NewService(db, session.NewService(db, 0), nil)
	svc.now = func() time.Time { return day.AddDate(0, 0, 1).Add(6 * time.Hour) }
	n, err := svc.AggregateRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, pag, err := svc.List(ctx, 1, day.AddDate(0, 0, -30), day.AddDate(0, 0, 1), pagination.Query{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 2, pag.Total)
	assert.Equal(t, 3, items[0].TotalPages)
	assert.Equal(t, 2, items[1].TotalPages)

	items, _, err = svc.List(ctx, 1, day, day, pagination.Query{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].TotalPages)
}

func TestHandlerValidatesDates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)
	svc := NewService(db, session.NewService(db, 0), nil)
	signer := jwt.NewSigner("secret")
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"), middleware.Auth(signer))
	tok, err := signer.Sign(1, time.Hour)
	require.NoError(t, err)

	get := func(query string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reader/history"+query, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get(""))
	assert.Equal(t, http.StatusOK, get("?from=2026-01-01&to=2026-01-31&page=2"))
	assert.Equal(t, http.StatusBadRequest, get("?from=01/01/2026"))
	assert.Equal(t, http.StatusBadRequest, get("?from=2026-02-01&to=2026-01-01"))
}
