package tracking

import (
	"strconv"
	"strings"

	"github.com/readshelf/core/internal/pkg/clientinfo"
)

const (
	forwardKeyPrefix = "device_tracking_"
	reverseKeyPrefix = "device_key_mapping_"
)

// candidate yields one possible discriminator; empty means "not available".
type candidate func(info clientinfo.ClientInfo, clientDeviceID string) string

// discriminators are tried in order; the first non-empty value wins.
var discriminators = []candidate{
	func(_ clientinfo.ClientInfo, clientDeviceID string) string { return clientDeviceID },
	func(info clientinfo.ClientInfo, _ string) string { return info.Browser },
	func(clientinfo.ClientInfo, string) string { return clientinfo.Unknown },
}

// Discriminator picks the string separating a user's devices in the cache.
func Discriminator(info clientinfo.ClientInfo, clientDeviceID string) string {
	for _, pick := range discriminators {
		if v := strings.TrimSpace(pick(info, clientDeviceID)); v != "" {
			return v
		}
	}
	return ""
}

// CacheKey is the forward key device_tracking_{userId}_{discriminator}.
func CacheKey(userID int, discriminator string) string {
	return forwardKeyPrefix + strconv.Itoa(userID) + "_" + discriminator
}

// ReverseKey is the key device_key_mapping_{deviceId} holding the forward key.
func ReverseKey(deviceID int) string {
	return reverseKeyPrefix + strconv.Itoa(deviceID)
}
