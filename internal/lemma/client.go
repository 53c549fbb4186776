// Package lemma talks to an emtsv lemmatization service.
package lemma

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"yashubustudio/topictagger/tagger"
)

// ProviderError reports a non-200 answer from the lemmatizer.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("something happened with the request: %d %s", e.Status, e.Body)
}

// Client posts text to the emtsv tok/morph/pos pipeline and returns the lemmas.
type Client struct {
	http *resty.Client
	url  string
}

// New builds a client from configuration. No retries are attempted.
func New(cfg tagger.LemmatizerConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("lemmatizer url is required")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/tab-separated-values, text/plain")
	return &Client{http: rc, url: cfg.URL}, nil
}

// Lemmatize sends text as the form field "text" and parses the TSV answer.
func (c *Client) Lemmatize(ctx context.Context, text string) ([]string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"text": text}).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("lemmatizer request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &ProviderError{Status: resp.StatusCode(), Body: resp.String()}
	}
	lemmas, err := ParseResponse(resp.String())
	if err != nil {
		return nil, fmt.Errorf("parse lemmatizer response: %w", err)
	}
	return lemmas, nil
}
