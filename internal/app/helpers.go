package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/readshelf/core/internal/config"
	"github.com/readshelf/core/internal/pkg/nativelog"
	"go.uber.org/zap"
)

// applyRuntimeSettings exports runtime paths, applies the timezone and returns the JWT secret.
// An empty secret is replaced by a random one, so tokens do not survive a restart.
func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) (string, error) {
	if strings.TrimSpace(cfg.Paths.Logs) != "" {
		_ = os.Setenv(nativelog.EnvLogDir, cfg.LogDir())
	}

	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("jwt_secret is empty, using a random per-process secret")
	}

	tz := strings.TrimSpace(cfg.Timezone)
	if tz == "" {
		return secret, nil
	}
	loc, err := parseTimezoneLocation(tz)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	time.Local = loc
	_ = os.Setenv("TZ", tz)
	return secret, nil
}

func parseTimezoneLocation(raw string) (*time.Location, error) {
	tz := strings.TrimSpace(raw)
	if tz == "" {
		return time.Local, nil
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}
	if len(tz) == 6 && (tz[0] == '+' || tz[0] == '-') && tz[3] == ':' {
		h, errH := strconv.Atoi(tz[1:3])
		m, errM := strconv.Atoi(tz[4:6])
		if errH == nil && errM == nil && h <= 23 && m <= 59 {
			offset := h*3600 + m*60
			if tz[0] == '-' {
				offset = -offset
			}
			return time.FixedZone(tz, offset), nil
		}
	}
	return nil, fmt.Errorf("expect IANA zone (e.g. Europe/Berlin) or UTC offset (e.g. +02:00)")
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Truncate(time.Second).String()
	}
	if d < time.Hour {
		return d.Truncate(time.Minute).String()
	}
	if d < 24*time.Hour {
		return d.Truncate(time.Hour).String()
	}
	return d.Truncate(24 * time.Hour).String()
}
