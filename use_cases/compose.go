// Package use_cases holds the bot's application logic: rendering content
// items into posts, publishing them through the sink, and the scheduled
// actions that tie providers, dedupe and publishing together.
package use_cases

import (
	"fmt"
	"strings"

	"github.com/Manasess896/X-bot/domain/models"
)

// PostLimit is the platform's per-post character limit, counted in runes.
const PostLimit = 280

// Template renders a ContentItem into the full post text, before any
// length splitting.
type Template func(item models.ContentItem) string

// DefaultTemplate renders the headline followed by one "Label: Value" line
// per field. Fields with empty values are skipped.
func DefaultTemplate(item models.ContentItem) string {
	var b strings.Builder
	b.WriteString(item.Headline)
	for _, f := range item.Fields {
		if f.Value == "" {
			continue
		}
		b.WriteString("\n")
		if f.Label != "" {
			fmt.Fprintf(&b, "%s: %s", f.Label, f.Value)
		} else {
			b.WriteString(f.Value)
		}
	}
	return b.String()
}

// Compose renders item with tmpl and splits the text into segments of at
// most limit runes. The item's image, when set, is attached to the first
// segment only; its bytes are downloaded later by the publisher.
func Compose(item models.ContentItem, tmpl Template, limit int) models.ComposedPost {
	if tmpl == nil {
		tmpl = DefaultTemplate
	}

	post := models.ComposedPost{
		Segments: splitRunes(tmpl(item), limit),
	}
	if item.ImageURL != "" {
		post.Image = &models.Image{URL: item.ImageURL, Name: item.ImageName}
	}
	return post
}

// splitRunes cuts text into consecutive chunks of exactly limit runes, with
// the remainder in the last chunk. Empty text yields one empty segment so
// every composed post has a root.
func splitRunes(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	segments := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}
	return segments
}
