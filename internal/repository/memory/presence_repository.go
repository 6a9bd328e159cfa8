package memory

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// PresenceRepository tracks which users currently hold a live channel and
// when disconnected users were last seen. Last-seen entries expire after a
// week; online markers never expire on their own because the hub removes
// them on unbind.
type PresenceRepository struct {
	online   *cache.Cache
	lastSeen *cache.Cache
}

func NewPresenceRepository() *PresenceRepository {
	return &PresenceRepository{
		online:   cache.New(cache.NoExpiration, 10*time.Minute),
		lastSeen: cache.New(7*24*time.Hour, 1*time.Hour),
	}
}

func key(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func (r *PresenceRepository) SetOnline(userID uint) {
	r.online.Set(key(userID), time.Now(), cache.NoExpiration)
}

func (r *PresenceRepository) SetOffline(userID uint) {
	r.online.Delete(key(userID))
	r.lastSeen.Set(key(userID), time.Now(), cache.DefaultExpiration)
}

func (r *PresenceRepository) IsOnline(userID uint) bool {
	_, found := r.online.Get(key(userID))
	return found
}

// LastSeen returns the user's most recent disconnect time, or false if the
// user is online or has never connected within the retention window.
func (r *PresenceRepository) LastSeen(userID uint) (time.Time, bool) {
	if x, found := r.lastSeen.Get(key(userID)); found {
		return x.(time.Time), true
	}
	return time.Time{}, false
}
