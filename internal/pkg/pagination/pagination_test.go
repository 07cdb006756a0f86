package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/database/dbtest"
	"github.com/readshelf/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]Query{
		"/":                  {Page: 1, Size: 10},
		"/?page=3&size=20":   {Page: 3, Size: 20},
		"/?page=0&size=-1":   {Page: 1, Size: 10},
		"/?page=x&size=1000": {Page: 1, Size: MaxSize},
	}
	for target, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		assert.Equal(t, want, FromContext(c), target)
	}
}

func TestPaginate(t *testing.T) {
	db := dbtest.New(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.DeviceModel{UserID: 1, Browser: "Chrome"}).Error)
	}
	require.NoError(t, db.Create(&models.DeviceModel{UserID: 2}).Error)

	tx := db.Model(&models.DeviceModel{}).Where("user_id = ?", 1).Order("id ASC")
	var rows []models.DeviceModel
	pag, err := Paginate(tx, Query{Page: 2, Size: 2}, &rows)
	require.NoError(t, err)

	assert.EqualValues(t, 5, pag.Total)
	assert.Equal(t, 3, pag.TotalPage)
	assert.True(t, pag.HasNextPage)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].ID)
}
