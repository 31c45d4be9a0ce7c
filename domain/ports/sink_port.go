package ports

import "context"

// Sink delivers posts to the external social platform. Implementations
// classify platform quota rejections as *models.RateLimitError so the
// publisher can back off and retry.
type Sink interface {
	// CreatePost publishes one post. mediaIDs attaches previously uploaded
	// media; inReplyTo threads the post under an existing one. Returns the
	// created post's ID.
	CreatePost(ctx context.Context, text string, mediaIDs []string, inReplyTo string) (string, error)

	// UploadMedia uploads raw image bytes and returns the media ID to attach
	// to a post.
	UploadMedia(ctx context.Context, filename string, data []byte) (string, error)
}
