package source

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Dog fetches images from the dog.ceo random image endpoint.
type Dog struct {
	endpoint string
	client   *http.Client
}

var _ Source = (*Dog)(nil)

// NewDog creates a dog source with the default endpoint.
func NewDog(opts ...Option) *Dog {
	o := buildOptions(DefaultDogEndpoint, opts)
	return &Dog{endpoint: o.endpoint, client: o.client}
}

func (d *Dog) Name() string { return NameDog }

// Endpoint returns the URL the source requests.
func (d *Dog) Endpoint() string { return d.endpoint }

// FetchImage returns the URL of one random dog image.
func (d *Dog) FetchImage(ctx context.Context) (string, error) {
	body, err := get(ctx, d.client, d.endpoint)
	if err != nil {
		return "", err
	}
	return parseDogResponse(body)
}

// dogResponse matches {"status": "success", "message": "<url>"}.
type dogResponse struct {
	Status  string          `json:"status"`
	Message json.RawMessage `json:"message"`
}

// parseDogResponse extracts the image URL from a dog.ceo response body.
func parseDogResponse(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return "", &MalformedResponseError{Source: "Dog", Detail: "expected JSON object"}
	}

	var resp dogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", &MalformedResponseError{Source: "Dog", Detail: err.Error()}
	}
	if resp.Status != "success" {
		return "", &MalformedResponseError{Source: "Dog", Detail: "status " + quoteOrEmpty(resp.Status)}
	}

	var url string
	if err := json.Unmarshal(resp.Message, &url); err != nil || url == "" {
		return "", &MalformedResponseError{Source: "Dog", Detail: "missing image URL"}
	}
	return url, nil
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "<empty>"
	}
	return `"` + s + `"`
}
