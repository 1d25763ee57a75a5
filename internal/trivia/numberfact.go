package trivia

import "context"

// NumberFact is a random numeric trivia fact.
type NumberFact struct {
	Text   string  `json:"text"`
	Number float64 `json:"number"`
	Found  bool    `json:"found"`
	Type   string  `json:"type"`
}

// RandomFact fetches one random number fact. No API key is required.
func (c *Client) RandomFact(ctx context.Context) (*NumberFact, error) {
	var fact NumberFact
	if err := c.getJSON(ctx, "fact", c.factBaseURL+"?json", &fact); err != nil {
		return nil, err
	}
	return &fact, nil
}
