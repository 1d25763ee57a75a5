package trivia

import (
	"context"
	"net/url"
	"strconv"
)

// Book is one volume from a book search.
type Book struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title       string   `json:"title"`
		Authors     []string `json:"authors"`
		Description string   `json:"description"`
		PreviewLink string   `json:"previewLink"`
		ImageLinks  struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// BookList is a page of book search results.
type BookList struct {
	TotalItems int    `json:"totalItems"`
	Items      []Book `json:"items"`
}

// Books searches book volumes matching query, up to max results.
// The upstream works without a key at reduced quota, so a missing key
// is tolerated here.
func (c *Client) Books(ctx context.Context, query string, max int) (*BookList, error) {
	q := url.Values{}
	q.Set("q", query)
	if max > 0 {
		q.Set("maxResults", strconv.Itoa(max))
	}
	if c.keys.Books != "" {
		q.Set("key", c.keys.Books)
	}

	var list BookList
	if err := c.getJSON(ctx, "books", c.booksBaseURL+"?"+q.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}
