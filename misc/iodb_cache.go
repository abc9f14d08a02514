package misc

import (
	"bytes"
	"io"
	"time"

	"github.com/missionMeteora/iodb"
)

const DefaultCacheDuration = 1 * time.Hour

type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTwitch           = "twitch"
)

// Cached analytics are keyed by (platform, owner id) so two creators
// linking the same channel never share a stale entry.
func GetPlatformCache(db *iodb.DB, platform Platform, ownerId string) (rc io.ReadCloser) {
	b := db.Bucket(string(platform))
	if b == nil {
		return nil
	}
	rc, _ = b.Get(ownerId)
	return
}

func PutPlatformCache(db *iodb.DB, platform Platform, ownerId string, data []byte, dur time.Duration) error {
	b, err := db.CreateBucket(string(platform))
	if err != nil {
		return err
	}
	if dur > 0 {
		return b.PutTimed(ownerId, bytes.NewReader(data), dur)
	}
	return b.Put(ownerId, bytes.NewReader(data))
}
