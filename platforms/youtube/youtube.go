package youtube

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/misc"
)

var ErrUnknownChannel = errors.New("channel not found")

type Stats struct {
	ChannelId   string `json:"channelId"`
	Subscribers int64  `json:"subscribers"`
	Views       int64  `json:"views"`
	Videos      int64  `json:"videos"`
}

type channelList struct {
	Items []struct {
		Id         string `json:"id"`
		Statistics struct {
			ViewCount       string `json:"viewCount"`
			SubscriberCount string `json:"subscriberCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// GetChannelStats pulls subscriber/view counts via the Data API. The API
// returns counters as strings.
func GetChannelStats(channelId string, cfg *config.Config) (*Stats, error) {
	endpoint := fmt.Sprintf("%s/channels?part=statistics&id=%s&key=%s",
		cfg.YouTube.Endpoint, channelId, cfg.YouTube.Key)

	var list channelList
	if err := misc.Request("GET", endpoint, "", &list); err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, ErrUnknownChannel
	}

	item := list.Items[0]
	st := &Stats{ChannelId: item.Id}
	st.Views, _ = strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
	st.Subscribers, _ = strconv.ParseInt(item.Statistics.SubscriberCount, 10, 64)
	st.Videos, _ = strconv.ParseInt(item.Statistics.VideoCount, 10, 64)
	return st, nil
}
