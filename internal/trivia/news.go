package trivia

import (
	"context"
	"errors"
	"net/url"
)

// ErrNoAPIKey is returned when a service's key was never configured.
var ErrNoAPIKey = errors.New("trivia: api key not configured")

// NewsRequest filters a news search. All fields but Query are optional.
type NewsRequest struct {
	Query    string
	Country  string
	Category string
	Page     string // opaque pagination token from a previous response
}

// Article is one news result.
type Article struct {
	ID          string   `json:"article_id"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	PubDate     string   `json:"pubDate"`
	ImageURL    string   `json:"image_url"`
	SourceID    string   `json:"source_id"`
	Creator     []string `json:"creator"`
}

// NewsPage is one page of news results with the token for the next.
type NewsPage struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Results      []Article `json:"results"`
	NextPage     string    `json:"nextPage"`
}

// News runs a news search and returns one page of articles.
func (c *Client) News(ctx context.Context, req NewsRequest) (*NewsPage, error) {
	if c.keys.News == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("apikey", c.keys.News)
	if req.Query != "" {
		q.Set("q", req.Query)
	}
	if req.Country != "" {
		q.Set("country", req.Country)
	}
	if req.Category != "" {
		q.Set("category", req.Category)
	}
	if req.Page != "" {
		q.Set("page", req.Page)
	}

	var page NewsPage
	if err := c.getJSON(ctx, "news", c.newsBaseURL+"?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
