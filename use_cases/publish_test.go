package use_cases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

type postCall struct {
	text      string
	mediaIDs  []string
	inReplyTo string
}

// fakeSink records CreatePost calls and fails them according to errs, one
// entry per call (nil means success).
type fakeSink struct {
	calls     []postCall
	errs      []error
	uploads   []string
	uploadErr error
}

func (s *fakeSink) CreatePost(_ context.Context, text string, mediaIDs []string, inReplyTo string) (string, error) {
	n := len(s.calls)
	s.calls = append(s.calls, postCall{text: text, mediaIDs: mediaIDs, inReplyTo: inReplyTo})
	if n < len(s.errs) && s.errs[n] != nil {
		return "", s.errs[n]
	}
	return fmt.Sprintf("id-%d", n+1), nil
}

func (s *fakeSink) UploadMedia(_ context.Context, filename string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, filename)
	return "media-1", nil
}

type fakeImages struct {
	data []byte
	err  error
}

func (f *fakeImages) Fetch(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

func newTestPublisher(s *fakeSink) (*Publisher, *[]time.Duration) {
	p := NewPublisher(s, &fakeImages{data: []byte("img")})
	var slept []time.Duration
	p.sleep = func(d time.Duration) { slept = append(slept, d) }
	return p, &slept
}

func TestPublish_ThreadsSegmentsInOrder(t *testing.T) {
	s := &fakeSink{}
	p, _ := newTestPublisher(s)

	post := models.ComposedPost{Segments: []string{"one", "two", "three"}}
	result, err := p.Publish(context.Background(), post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.PostIDs) != 3 {
		t.Fatalf("expected 3 post IDs, got %d", len(result.PostIDs))
	}
	if result.RootID() != "id-1" {
		t.Errorf("expected root id-1, got %q", result.RootID())
	}
	if s.calls[0].inReplyTo != "" {
		t.Errorf("root segment must not be a reply, got %q", s.calls[0].inReplyTo)
	}
	if s.calls[1].inReplyTo != "id-1" {
		t.Errorf("segment 2 should reply to id-1, got %q", s.calls[1].inReplyTo)
	}
	if s.calls[2].inReplyTo != "id-2" {
		t.Errorf("segment 3 should reply to id-2, got %q", s.calls[2].inReplyTo)
	}
}

func TestPublish_AttachesMediaToFirstSegmentOnly(t *testing.T) {
	s := &fakeSink{}
	p, _ := newTestPublisher(s)

	post := models.ComposedPost{
		Segments: []string{"one", "two"},
		Image:    &models.Image{URL: "https://example.com/x.jpg", Name: "x.jpg"},
	}
	if _, err := p.Publish(context.Background(), post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.uploads) != 1 || s.uploads[0] != "x.jpg" {
		t.Fatalf("expected one upload of x.jpg, got %v", s.uploads)
	}
	if len(s.calls[0].mediaIDs) != 1 || s.calls[0].mediaIDs[0] != "media-1" {
		t.Errorf("expected media on first segment, got %v", s.calls[0].mediaIDs)
	}
	if len(s.calls[1].mediaIDs) != 0 {
		t.Errorf("expected no media on second segment, got %v", s.calls[1].mediaIDs)
	}
}

func TestPublish_RateLimitRetriesOnceThenSucceeds(t *testing.T) {
	s := &fakeSink{errs: []error{&models.RateLimitError{}}}
	p, slept := newTestPublisher(s)

	post := models.ComposedPost{Segments: []string{"only"}}
	result, err := p.Publish(context.Background(), post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.calls) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(s.calls))
	}
	if len(*slept) != 1 {
		t.Fatalf("expected exactly one backoff sleep, got %d", len(*slept))
	}
	if (*slept)[0] != 60*time.Second {
		t.Errorf("expected 60s floor without reset hint, got %v", (*slept)[0])
	}
	if result.RootID() != "id-2" {
		t.Errorf("expected retry's id, got %q", result.RootID())
	}
}

func TestPublish_SecondRateLimitGivesUp(t *testing.T) {
	s := &fakeSink{errs: []error{&models.RateLimitError{}, &models.RateLimitError{}}}
	p, slept := newTestPublisher(s)

	post := models.ComposedPost{Segments: []string{"only"}}
	_, err := p.Publish(context.Background(), post)

	if err == nil {
		t.Fatal("expected an error")
	}
	if !models.IsRateLimit(err) {
		t.Errorf("expected a rate-limit error, got %v", err)
	}
	if len(s.calls) != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", len(s.calls))
	}
	if len(*slept) != 1 {
		t.Errorf("expected exactly one backoff sleep, got %d", len(*slept))
	}
}

func TestPublish_OtherErrorsFailImmediately(t *testing.T) {
	boom := errors.New("boom")
	s := &fakeSink{errs: []error{nil, boom}}
	p, slept := newTestPublisher(s)

	post := models.ComposedPost{Segments: []string{"one", "two", "three"}}
	_, err := p.Publish(context.Background(), post)

	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if len(s.calls) != 2 {
		t.Errorf("expected abort after the failing segment, got %d calls", len(s.calls))
	}
	if len(*slept) != 0 {
		t.Errorf("expected no sleep for non-rate-limit error, got %d", len(*slept))
	}
}

func TestPublish_RetryRepublishesWholePost(t *testing.T) {
	// Segment 2 of the first attempt is rate limited; the retry must start
	// over from segment 1.
	s := &fakeSink{errs: []error{nil, &models.RateLimitError{}}}
	p, _ := newTestPublisher(s)

	post := models.ComposedPost{Segments: []string{"one", "two"}}
	result, err := p.Publish(context.Background(), post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.calls) != 4 {
		t.Fatalf("expected 4 create calls (2 per attempt), got %d", len(s.calls))
	}
	if s.calls[2].text != "one" {
		t.Errorf("retry should restart at first segment, got %q", s.calls[2].text)
	}
	if len(result.PostIDs) != 2 {
		t.Errorf("expected 2 post IDs from the retry, got %d", len(result.PostIDs))
	}
}

func TestBackoff_UsesResetHintWithinBounds(t *testing.T) {
	p := NewPublisher(&fakeSink{}, &fakeImages{})

	cases := []struct {
		name  string
		reset time.Time
		want  time.Duration
	}{
		{"no hint", time.Time{}, 60 * time.Second},
		{"hint below floor", time.Now().Add(5 * time.Second), 60 * time.Second},
		{"hint beyond cap", time.Now().Add(2 * time.Hour), 15 * time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.backoff(&models.RateLimitError{ResetAt: tc.reset})
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPublish_ImageFetchFailureAborts(t *testing.T) {
	s := &fakeSink{}
	p := NewPublisher(s, &fakeImages{err: errors.New("download failed")})
	p.sleep = func(time.Duration) {}

	post := models.ComposedPost{
		Segments: []string{"one"},
		Image:    &models.Image{URL: "https://example.com/x.jpg", Name: "x.jpg"},
	}
	if _, err := p.Publish(context.Background(), post); err == nil {
		t.Fatal("expected an error")
	}
	if len(s.calls) != 0 {
		t.Errorf("expected no posts after image failure, got %d", len(s.calls))
	}
}
