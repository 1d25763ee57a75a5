package trivia

import (
	"context"
	"net/url"
	"strconv"
)

// Video is one video search result.
type Video struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

// VideoList is a page of video search results.
type VideoList struct {
	Items         []Video `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
}

// Videos searches videos matching query, up to max results.
func (c *Client) Videos(ctx context.Context, query string, max int) (*VideoList, error) {
	if c.keys.YouTube == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", query)
	if max > 0 {
		q.Set("maxResults", strconv.Itoa(max))
	}
	q.Set("key", c.keys.YouTube)

	var list VideoList
	if err := c.getJSON(ctx, "videos", c.videosBaseURL+"?"+q.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}
