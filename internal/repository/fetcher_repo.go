package repository

import (
	"context"
	"errors"
)

// ErrUnexpectedStatus is returned by fetchers when the server answers with
// anything other than 200.
var ErrUnexpectedStatus = errors.New("unexpected status")

// PageFetcher defines the contract for downloading a page's HTML.
type PageFetcher interface {
	// Fetch downloads url and returns the response body.
	Fetch(ctx context.Context, url string) (string, error)
}
