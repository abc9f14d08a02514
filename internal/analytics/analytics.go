package analytics

import (
	"encoding/json"
	"log"
	"time"

	"github.com/missionMeteora/iodb"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
	"github.com/manaiger/manaiger/platforms/twitch"
	"github.com/manaiger/manaiger/platforms/youtube"
)

// Service serves channel stats with a time-boxed cache in front of the
// provider APIs. Staleness up to an hour is fine here; none of the deal
// or matching logic depends on these numbers.
type Service struct {
	cache *iodb.DB
	cfg   *config.Config
}

func New(cache *iodb.DB, cfg *config.Config) *Service {
	return &Service{
		cache: cache,
		cfg:   cfg,
	}
}

type Snapshot struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`

	Followers int64 `json:"followers"`
	Views     int64 `json:"views"`
	Videos    int64 `json:"videos,omitempty"`

	Updated int64 `json:"updated"`
	Cached  bool  `json:"cached,omitempty"`
}

// Get returns the creator's channel snapshot, hitting the provider only
// on a cache miss.
func (s *Service) Get(platform misc.Platform, ownerId, handle string) (*Snapshot, error) {
	if handle == "" {
		return nil, common.ErrValidation("no %s channel linked to your profile", string(platform))
	}

	if snap := s.cached(platform, ownerId); snap != nil && snap.Handle == handle {
		return snap, nil
	}

	snap := &Snapshot{
		Platform: string(platform),
		Handle:   handle,
		Updated:  time.Now().Unix(),
	}

	switch platform {
	case misc.PlatformYouTube:
		st, err := youtube.GetChannelStats(handle, s.cfg)
		if err != nil {
			return nil, &common.ExternalError{Provider: "youtube", Err: err}
		}
		snap.Followers = st.Subscribers
		snap.Views = st.Views
		snap.Videos = st.Videos
	case misc.PlatformTwitch:
		st, err := twitch.GetChannelStats(handle, s.cfg)
		if err != nil {
			return nil, &common.ExternalError{Provider: "twitch", Err: err}
		}
		snap.Followers = st.Followers
		snap.Views = st.Views
	default:
		return nil, common.ErrValidation("unsupported analytics platform %q", string(platform))
	}

	s.store(platform, ownerId, snap)
	return snap, nil
}

func (s *Service) cached(platform misc.Platform, ownerId string) *Snapshot {
	if s.cache == nil {
		return nil
	}
	rc := misc.GetPlatformCache(s.cache, platform, ownerId)
	if rc == nil {
		return nil
	}
	defer rc.Close()

	var snap Snapshot
	if json.NewDecoder(rc).Decode(&snap) != nil {
		return nil
	}
	snap.Cached = true
	return &snap
}

func (s *Service) store(platform misc.Platform, ownerId string, snap *Snapshot) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := misc.PutPlatformCache(s.cache, platform, ownerId, b, misc.DefaultCacheDuration); err != nil {
		log.Println("Failed to cache analytics for", ownerId, err)
	}
}
