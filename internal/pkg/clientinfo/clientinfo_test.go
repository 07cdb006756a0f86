package clientinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name     string
		ua       string
		browser  string
		platform string
		device   string
	}{
		{
			name:     "chrome on windows",
			ua:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
			browser:  "Chrome",
			platform: "Windows",
			device:   "desktop",
		},
		{
			name:     "edge",
			ua:       "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/126.0 Safari/537.36 Edg/126.0",
			browser:  "Edge",
			platform: "Windows",
			device:   "desktop",
		},
		{
			name:     "safari on iphone",
			ua:       "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 Version/17.5 Mobile/15E148 Safari/604.1",
			browser:  "Safari",
			platform: "iOS",
			device:   "mobile",
		},
		{
			name:     "firefox on linux",
			ua:       "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
			browser:  "Firefox",
			platform: "Linux",
			device:   "desktop",
		},
		{
			name:     "empty",
			ua:       "",
			browser:  Unknown,
			platform: Unknown,
			device:   "desktop",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := Parse(tc.ua)
			assert.Equal(t, tc.browser, info.Browser)
			assert.Equal(t, tc.platform, info.Platform)
			assert.Equal(t, tc.device, info.DeviceType)
			assert.Equal(t, tc.ua, info.UserAgent)
		})
	}
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Chrome/126.0 Safari/537.36")
	c.Request.RemoteAddr = "10.0.0.7:5555"

	info := FromContext(c, "")
	assert.Equal(t, "Chrome", info.Browser)
	assert.Equal(t, "10.0.0.7", info.IP)
	assert.Equal(t, AuthTypeNone, info.AuthType)
	assert.False(t, info.CapturedAt.IsZero())
}
