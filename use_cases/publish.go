package use_cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
	"github.com/Manasess896/X-bot/domain/ports"
)

const (
	// rateLimitFloor is the minimum wait after a quota rejection, applied
	// even when the sink's reset hint is sooner or missing.
	rateLimitFloor = 60 * time.Second
	// rateLimitCap bounds the wait so a bogus reset hint cannot park the
	// scheduler for hours.
	rateLimitCap = 15 * time.Minute
)

// Publisher delivers composed posts to the sink as a reply thread. On a
// quota rejection it waits out the limit and retries the whole post once.
type Publisher struct {
	sink   ports.Sink
	images ports.ImageFetcher
	sleep  func(time.Duration)
	logger *slog.Logger
}

func NewPublisher(sink ports.Sink, images ports.ImageFetcher) *Publisher {
	return &Publisher{
		sink:   sink,
		images: images,
		sleep:  time.Sleep,
		logger: slog.Default().With("component", "publisher"),
	}
}

// Publish posts every segment of post in order, threading each one under
// the previous. The image, when present, is downloaded, uploaded to the
// sink and attached to the first segment.
//
// A rate-limit rejection aborts the attempt, sleeps until the limit resets
// and retries the whole post once; a second rejection gives up. Any other
// sink error fails immediately.
func (p *Publisher) Publish(ctx context.Context, post models.ComposedPost) (models.PublishResult, error) {
	result, err := p.attempt(ctx, post)
	if err == nil {
		return result, nil
	}
	if !models.IsRateLimit(err) {
		return models.PublishResult{}, err
	}

	wait := p.backoff(err)
	p.logger.WarnContext(ctx, "Rate limited, backing off", "wait", wait.String())
	p.sleep(wait)

	result, err = p.attempt(ctx, post)
	if err != nil {
		if models.IsRateLimit(err) {
			return models.PublishResult{}, fmt.Errorf("still rate limited after backoff: %w", err)
		}
		return models.PublishResult{}, err
	}
	return result, nil
}

func (p *Publisher) attempt(ctx context.Context, post models.ComposedPost) (models.PublishResult, error) {
	var mediaIDs []string
	if post.Image != nil {
		data := post.Image.Data
		if data == nil {
			var err error
			data, err = p.images.Fetch(ctx, post.Image.URL)
			if err != nil {
				return models.PublishResult{}, fmt.Errorf("failed to fetch image: %w", err)
			}
		}
		mediaID, err := p.sink.UploadMedia(ctx, post.Image.Name, data)
		if err != nil {
			return models.PublishResult{}, fmt.Errorf("failed to upload media: %w", err)
		}
		mediaIDs = []string{mediaID}
	}

	result := models.PublishResult{PostIDs: make([]string, 0, len(post.Segments))}
	previousID := ""
	for i, segment := range post.Segments {
		var media []string
		if i == 0 {
			media = mediaIDs
		}
		id, err := p.sink.CreatePost(ctx, segment, media, previousID)
		if err != nil {
			return models.PublishResult{}, fmt.Errorf("failed to create post segment %d: %w", i+1, err)
		}
		result.PostIDs = append(result.PostIDs, id)
		previousID = id
	}
	return result, nil
}

// Reply posts a single follow-up under parentID, without retry. Used for
// trailer links and trivia answers whose failure should not fail the run.
func (p *Publisher) Reply(ctx context.Context, parentID, text string) (string, error) {
	return p.sink.CreatePost(ctx, text, nil, parentID)
}

func (p *Publisher) backoff(err error) time.Duration {
	wait := rateLimitFloor
	var rle *models.RateLimitError
	if errors.As(err, &rle) && !rle.ResetAt.IsZero() {
		if until := time.Until(rle.ResetAt); until > wait {
			wait = until
		}
	}
	if wait > rateLimitCap {
		wait = rateLimitCap
	}
	return wait
}
