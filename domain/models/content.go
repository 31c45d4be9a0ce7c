package models

// Kind identifies the category of content an action publishes.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindSeries  Kind = "series"
	KindSong    Kind = "song"
	KindWord    Kind = "word"
	KindFact    Kind = "fact"
	KindJoke    Kind = "joke"
	KindPun     Kind = "pun"
	KindTrivia  Kind = "trivia"
	KindWeather Kind = "weather"
	KindCountry Kind = "country"
)

// Field is one labelled display value of a content item. Fields keep the
// order they should appear in the rendered post.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ContentItem is one fetched candidate to publish. It is built fresh per
// fetch and never mutated after construction.
type ContentItem struct {
	Kind       Kind    `json:"kind"`
	Identifier string  `json:"identifier"` // dedupe key, stable across fetches
	Headline   string  `json:"headline"`   // first line of the rendered post
	Fields     []Field `json:"fields"`
	ImageURL   string  `json:"image_url,omitempty"`
	ImageName  string  `json:"image_name,omitempty"` // upload filename, e.g. poster.jpg
	// FollowUps are extra reply texts published after the main thread
	// succeeds, e.g. a trivia answer or a trailer link. Their failure never
	// fails the action.
	FollowUps []string `json:"follow_ups,omitempty"`
}

// Image is the media payload attached to the first segment of a post.
// Data is filled once the image has been downloaded; until then URL points
// at the source.
type Image struct {
	URL  string
	Name string
	Data []byte
}

// ComposedPost is the ordered, length-bounded rendering of one ContentItem.
type ComposedPost struct {
	Segments []string
	Image    *Image
}

// PublishResult reports a fully successful publish: one created post ID per
// segment, in publish order.
type PublishResult struct {
	PostIDs []string
}

// RootID returns the ID of the root post of the thread.
func (r PublishResult) RootID() string {
	if len(r.PostIDs) == 0 {
		return ""
	}
	return r.PostIDs[0]
}
