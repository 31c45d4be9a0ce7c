package fetcher

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
)

func TestRandomQuestion_UnescapesAndShuffles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("amount") != "1" || q.Get("type") != "multiple" {
			t.Errorf("unexpected query %v", q)
		}
		fmt.Fprint(w, `{"results":[{
			"question":"Who wrote &quot;Hamlet&quot;?",
			"correct_answer":"Shakespeare &amp; co",
			"incorrect_answers":["Marlowe","Jonson","Bacon"]
		}]}`)
	}))
	defer server.Close()

	client := NewTriviaClient(
		WithTriviaBaseURL(server.URL),
		WithTriviaRand(rand.New(rand.NewSource(1))),
	)
	question, err := client.RandomQuestion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if question.Question != `Who wrote "Hamlet"?` {
		t.Errorf("expected unescaped question, got %q", question.Question)
	}
	if question.CorrectAnswer != "Shakespeare & co" {
		t.Errorf("expected unescaped correct answer, got %q", question.CorrectAnswer)
	}
	if len(question.Answers) != 4 {
		t.Fatalf("expected 4 options, got %d", len(question.Answers))
	}

	// The correct answer must be among the shuffled options.
	sorted := append([]string(nil), question.Answers...)
	sort.Strings(sorted)
	if i := sort.SearchStrings(sorted, "Shakespeare & co"); i == len(sorted) || sorted[i] != "Shakespeare & co" {
		t.Errorf("correct answer missing from options %v", question.Answers)
	}
}

func TestRandomQuestion_EmptyResultsIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer server.Close()

	client := NewTriviaClient(WithTriviaBaseURL(server.URL))
	if _, err := client.RandomQuestion(context.Background()); err == nil {
		t.Fatal("expected an error for empty results")
	}
}

func TestRandomQuestion_HTTPErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewTriviaClient(WithTriviaBaseURL(server.URL))
	if _, err := client.RandomQuestion(context.Background()); err == nil {
		t.Fatal("expected an error for non-200 response")
	}
}
