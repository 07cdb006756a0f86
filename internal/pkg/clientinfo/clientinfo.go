// Package clientinfo captures request-time device signals.
package clientinfo

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AuthTypeJWT    = "jwt"
	AuthTypeAPIKey = "api_key"
	AuthTypeNone   = "none"

	Unknown = "Unknown"
)

// ClientInfo is an immutable snapshot of the client that issued a request.
type ClientInfo struct {
	Platform   string    `json:"platform"`
	Browser    string    `json:"browser"`
	DeviceType string    `json:"deviceType"`
	UserAgent  string    `json:"userAgent"`
	IP         string    `json:"ip"`
	AuthType   string    `json:"authType"`
	CapturedAt time.Time `json:"capturedAt"`
}

// FromContext builds a ClientInfo from the current gin request.
func FromContext(c *gin.Context, authType string) ClientInfo {
	ua := c.GetHeader("User-Agent")
	if authType == "" {
		authType = AuthTypeNone
	}
	info := Parse(ua)
	info.IP = strings.TrimSpace(c.ClientIP())
	info.AuthType = authType
	info.CapturedAt = time.Now().UTC()
	return info
}

// Parse extracts browser, platform and device type from a user agent string.
func Parse(ua string) ClientInfo {
	info := ClientInfo{
		UserAgent:  ua,
		Browser:    Unknown,
		Platform:   Unknown,
		DeviceType: "desktop",
	}
	lower := strings.ToLower(ua)

	// order matters: Edge and Opera carry a chrome/ token, Chrome carries safari/
	switch {
	case strings.Contains(lower, "edg/"):
		info.Browser = "Edge"
	case strings.Contains(lower, "opr/"):
		info.Browser = "Opera"
	case strings.Contains(lower, "chrome/"):
		info.Browser = "Chrome"
	case strings.Contains(lower, "safari/") && strings.Contains(lower, "version/"):
		info.Browser = "Safari"
	case strings.Contains(lower, "firefox/"):
		info.Browser = "Firefox"
	}

	switch {
	case strings.Contains(lower, "windows"):
		info.Platform = "Windows"
	case strings.Contains(lower, "iphone") || strings.Contains(lower, "ipad") || strings.Contains(lower, "ios"):
		info.Platform = "iOS"
	case strings.Contains(lower, "mac os"):
		info.Platform = "macOS"
	case strings.Contains(lower, "android"):
		info.Platform = "Android"
	case strings.Contains(lower, "linux"):
		info.Platform = "Linux"
	}

	switch {
	case strings.Contains(lower, "bot") || strings.Contains(lower, "crawler") || strings.Contains(lower, "spider"):
		info.DeviceType = "bot"
	case strings.Contains(lower, "tablet") || strings.Contains(lower, "ipad"):
		info.DeviceType = "tablet"
	case strings.Contains(lower, "mobile"):
		info.DeviceType = "mobile"
	}
	return info
}
