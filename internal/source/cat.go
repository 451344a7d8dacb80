package source

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Cat fetches images from TheCatAPI search endpoint.
type Cat struct {
	endpoint string
	client   *http.Client
}

var _ Source = (*Cat)(nil)

// NewCat creates a cat source with the default endpoint.
func NewCat(opts ...Option) *Cat {
	o := buildOptions(DefaultCatEndpoint, opts)
	return &Cat{endpoint: o.endpoint, client: o.client}
}

func (c *Cat) Name() string { return NameCat }

// Endpoint returns the URL the source requests.
func (c *Cat) Endpoint() string { return c.endpoint }

// FetchImage returns the URL of one random cat image.
func (c *Cat) FetchImage(ctx context.Context) (string, error) {
	body, err := get(ctx, c.client, c.endpoint)
	if err != nil {
		return "", err
	}
	return parseCatResponse(body)
}

// catImage is one element of the search response array. Other fields
// (id, width, height, breeds) are ignored.
type catImage struct {
	URL string `json:"url"`
}

// parseCatResponse extracts the first image URL from a search response.
func parseCatResponse(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return "", &MalformedResponseError{Source: "Cat", Detail: "expected JSON array"}
	}

	var images []catImage
	if err := json.Unmarshal(data, &images); err != nil {
		return "", &MalformedResponseError{Source: "Cat", Detail: err.Error()}
	}
	if len(images) == 0 {
		return "", &MalformedResponseError{Source: "Cat", Detail: "empty result"}
	}
	if images[0].URL == "" {
		return "", &MalformedResponseError{Source: "Cat", Detail: "missing image URL"}
	}
	return images[0].URL, nil
}
