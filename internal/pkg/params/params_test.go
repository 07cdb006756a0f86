package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string, id string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c
}

func TestID(t *testing.T) {
	v, err := ID(newContext("/", "12"), "id")
	assert.NoError(t, err)
	assert.Equal(t, 12, v)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := ID(newContext("/", bad), "id")
		assert.Error(t, err, bad)
	}
}

func TestQueryInt(t *testing.T) {
	v, err := QueryInt(newContext("/?libraryId=4", "1"), "libraryId")
	assert.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = QueryInt(newContext("/", "1"), "libraryId")
	assert.NoError(t, err)
	assert.Zero(t, v)

	_, err = QueryInt(newContext("/?libraryId=x", "1"), "libraryId")
	assert.Error(t, err)
}
