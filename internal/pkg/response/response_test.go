package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestOKWrapsSlices(t *testing.T) {
	c, w := newContext()
	OK(c, []int{1, 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[1,2]}`, w.Body.String())

	c, w = newContext()
	OK(c, gin.H{"a": 1})
	assert.JSONEq(t, `{"a":1}`, w.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	c, w := newContext()
	InternalError(c, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":0,"code":500,"message":"db down"}`, w.Body.String())
	assert.True(t, c.IsAborted())

	c, w = newContext()
	BadRequest(c, "invalid id")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"ok":0,"code":400,"message":"invalid id"}`, w.Body.String())
}
