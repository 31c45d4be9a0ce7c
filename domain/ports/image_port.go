package ports

import "context"

// ImageFetcher downloads an image so it can be re-uploaded to the sink.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
