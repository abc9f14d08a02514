package twitch

import (
	"errors"
	"fmt"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/misc"
)

var ErrUnknownUser = errors.New("twitch user not found")

type Stats struct {
	UserId    string `json:"userId"`
	Login     string `json:"login"`
	Followers int64  `json:"followers"`
	Views     int64  `json:"views"`
}

type userList struct {
	Data []struct {
		Id        string `json:"id"`
		Login     string `json:"login"`
		ViewCount int64  `json:"view_count"`
	} `json:"data"`
}

type followerList struct {
	Total int64 `json:"total"`
}

func headers(cfg *config.Config) map[string]string {
	return map[string]string{
		"Client-Id":     cfg.Twitch.ClientId,
		"Authorization": "Bearer " + cfg.Twitch.Token,
	}
}

// GetChannelStats resolves a login to follower/view counts via Helix.
func GetChannelStats(login string, cfg *config.Config) (*Stats, error) {
	var users userList
	endpoint := fmt.Sprintf("%s/users?login=%s", cfg.Twitch.Endpoint, login)
	if err := misc.RequestWithHeaders("GET", endpoint, "", headers(cfg), &users); err != nil {
		return nil, err
	}
	if len(users.Data) == 0 {
		return nil, ErrUnknownUser
	}

	u := users.Data[0]
	st := &Stats{UserId: u.Id, Login: u.Login, Views: u.ViewCount}

	var followers followerList
	endpoint = fmt.Sprintf("%s/channels/followers?broadcaster_id=%s", cfg.Twitch.Endpoint, u.Id)
	if err := misc.RequestWithHeaders("GET", endpoint, "", headers(cfg), &followers); err != nil {
		// Follower count is nice-to-have; user data alone is still useful
		return st, nil
	}
	st.Followers = followers.Total
	return st, nil
}
