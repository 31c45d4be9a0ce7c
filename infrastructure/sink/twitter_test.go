package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

func testCreds() Credentials {
	return Credentials{
		APIKey:            "key",
		APIKeySecret:      "key-secret",
		AccessToken:       "token",
		AccessTokenSecret: "token-secret",
	}
}

func TestCreatePost_SendsTextAndReturnsID(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/2/tweets" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"1234","text":"hello"}}`)
	}))
	defer server.Close()

	client := NewClient(testCreds(), WithAPIBaseURL(server.URL))
	id, err := client.CreatePost(context.Background(), "hello", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "1234" {
		t.Errorf("expected id 1234, got %q", id)
	}
	if gotBody["text"] != "hello" {
		t.Errorf("expected text 'hello', got %v", gotBody["text"])
	}
	if _, ok := gotBody["reply"]; ok {
		t.Error("root tweet must not carry a reply block")
	}
	if _, ok := gotBody["media"]; ok {
		t.Error("tweet without media must not carry a media block")
	}
	if !strings.HasPrefix(gotAuth, "OAuth ") {
		t.Errorf("expected OAuth1a Authorization header, got %q", gotAuth)
	}
}

func TestCreatePost_ThreadsAndAttachesMedia(t *testing.T) {
	var gotBody struct {
		Reply struct {
			InReplyToTweetID string `json:"in_reply_to_tweet_id"`
		} `json:"reply"`
		Media struct {
			MediaIDs []string `json:"media_ids"`
		} `json:"media"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		fmt.Fprint(w, `{"data":{"id":"5678","text":"x"}}`)
	}))
	defer server.Close()

	client := NewClient(testCreds(), WithAPIBaseURL(server.URL))
	if _, err := client.CreatePost(context.Background(), "x", []string{"m1"}, "1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody.Reply.InReplyToTweetID != "1234" {
		t.Errorf("expected reply to 1234, got %q", gotBody.Reply.InReplyToTweetID)
	}
	if len(gotBody.Media.MediaIDs) != 1 || gotBody.Media.MediaIDs[0] != "m1" {
		t.Errorf("expected media ids [m1], got %v", gotBody.Media.MediaIDs)
	}
}

func TestCreatePost_RateLimitClassified(t *testing.T) {
	reset := time.Now().Add(10 * time.Minute).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-rate-limit-reset", fmt.Sprintf("%d", reset))
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testCreds(), WithAPIBaseURL(server.URL))
	_, err := client.CreatePost(context.Background(), "x", nil, "")

	if !models.IsRateLimit(err) {
		t.Fatalf("expected rate-limit error, got %v", err)
	}
	var rle *models.RateLimitError
	if !errors.As(err, &rle) {
		t.Fatal("expected *models.RateLimitError")
	}
	if rle.ResetAt.Unix() != reset {
		t.Errorf("expected reset %d, got %d", reset, rle.ResetAt.Unix())
	}
}

func TestCreatePost_OtherErrorCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"detail":"not allowed"}`)
	}))
	defer server.Close()

	client := NewClient(testCreds(), WithAPIBaseURL(server.URL))
	_, err := client.CreatePost(context.Background(), "x", nil, "")

	if err == nil {
		t.Fatal("expected an error")
	}
	if models.IsRateLimit(err) {
		t.Error("403 must not classify as rate limit")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "not allowed") {
		t.Errorf("expected status and body in error, got %q", err.Error())
	}
}

func TestUploadMedia_MultipartRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.1/media/upload.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		file, header, err := r.FormFile("media")
		if err != nil {
			t.Fatalf("expected media form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "poster.jpg" {
			t.Errorf("expected filename poster.jpg, got %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "image-bytes" {
			t.Errorf("unexpected media payload %q", data)
		}
		fmt.Fprint(w, `{"media_id_string":"media-42"}`)
	}))
	defer server.Close()

	client := NewClient(testCreds(), WithUploadBaseURL(server.URL))
	mediaID, err := client.UploadMedia(context.Background(), "poster.jpg", []byte("image-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mediaID != "media-42" {
		t.Errorf("expected media-42, got %q", mediaID)
	}
}

func TestUploadMedia_RateLimitClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testCreds(), WithUploadBaseURL(server.URL))
	_, err := client.UploadMedia(context.Background(), "x.jpg", []byte("x"))
	if !models.IsRateLimit(err) {
		t.Errorf("expected rate-limit error, got %v", err)
	}
}
