// Package tracking memoizes device identity resolution per user and client signature.
package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/readshelf/core/internal/models"
	"github.com/readshelf/core/internal/pkg/cache"
	"github.com/readshelf/core/internal/pkg/clientinfo"
	"go.uber.org/zap"
)

// Resolver finds or creates the persisted device for a client.
type Resolver interface {
	IdentifyOrRegisterDevice(ctx context.Context, userID int, info clientinfo.ClientInfo, clientDeviceID string) (*models.DeviceModel, error)
}

// SessionSource lists device ids referenced by a user's reading activity.
type SessionSource interface {
	DeviceIDsForUser(ctx context.Context, userID int) ([]int, error)
}

type Service struct {
	cache    *cache.Cache
	resolver Resolver
	sessions SessionSource
	log      *zap.Logger
	now      func() time.Time
}

func NewService(c *cache.Cache, resolver Resolver, sessions SessionSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cache:    c,
		resolver: resolver,
		sessions: sessions,
		log:      log.Named("device_tracking"),
		now:      time.Now,
	}
}

// TrackDevice resolves the device id for the client, consulting the resolver only on a cache miss.
// Concurrent calls for the same key share one resolution. Only the call that populated the forward
// entry writes the reverse mapping; on cancellation none is written.
func (s *Service) TrackDevice(ctx context.Context, userID int, info clientinfo.ClientInfo, clientDeviceID string) (int, error) {
	key := CacheKey(userID, Discriminator(info, clientDeviceID))

	// the forward entry is stored after this instant, so a mapping that expires
	// ttl after it never outlives the forward entry
	started := s.now()
	deviceID, created, err := cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (int, error) {
		device, err := s.resolver.IdentifyOrRegisterDevice(ctx, userID, info, clientDeviceID)
		if err != nil {
			return 0, err
		}
		if device == nil {
			return 0, errors.New("device resolver returned no device")
		}
		return device.ID, nil
	})
	if err != nil {
		return 0, err
	}
	if !created {
		return deviceID, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ttl := s.cache.TTL()
	if ttl > 0 {
		ttl -= s.now().Sub(started)
		if ttl <= 0 {
			return deviceID, nil
		}
	}
	if err := cache.SetFor(ctx, s.cache, ReverseKey(deviceID), key, ttl); err != nil {
		return 0, err
	}
	return deviceID, nil
}

// ClearDeviceCache drops the forward entry recorded for the device and the reverse mapping itself.
// It never fails: cache errors are logged and discarded.
func (s *Service) ClearDeviceCache(ctx context.Context, deviceID int) {
	if cerr := s.clearDevice(ctx, deviceID); cerr != nil {
		s.log.Warn("failed to clear device cache",
			zap.Int("device_id", deviceID),
			zap.String("op", cerr.Op),
			zap.String("key", cerr.Key),
			zap.Error(cerr.Err),
		)
		return
	}
	s.log.Debug("cleared device cache", zap.Int("device_id", deviceID))
}

// clearDevice returns the first cache failure, nil on success.
// The reverse mapping removal is attempted even when the forward side failed.
func (s *Service) clearDevice(ctx context.Context, deviceID int) *cache.Error {
	mappingKey := ReverseKey(deviceID)
	var failure *cache.Error

	forwardKey, found, err := cache.Get[string](ctx, s.cache, mappingKey)
	if err != nil {
		failure = asCacheError(err, "get", mappingKey)
	} else if found && forwardKey != "" {
		if err := s.cache.Remove(ctx, forwardKey); err != nil {
			failure = asCacheError(err, "remove", forwardKey)
		}
	}

	if err := s.cache.Remove(ctx, mappingKey); err != nil && failure == nil {
		failure = asCacheError(err, "remove", mappingKey)
	}
	return failure
}

func asCacheError(err error, op, key string) *cache.Error {
	var cerr *cache.Error
	if errors.As(err, &cerr) {
		return cerr
	}
	return &cache.Error{Op: op, Key: key, Err: err}
}

// ClearUserDeviceCaches clears the cache for every distinct device referenced by the user's
// reading sessions and returns the ids it cleared. Session lookup failures propagate.
func (s *Service) ClearUserDeviceCaches(ctx context.Context, userID int) ([]int, error) {
	ids, err := s.sessions.DeviceIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(ids))
	cleared := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.ClearDeviceCache(ctx, id)
		cleared = append(cleared, id)
	}
	return cleared, nil
}
