package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListNames_ReturnsCommonNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3.1/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("fields") != "name" {
			t.Errorf("expected fields=name, got %q", r.URL.Query().Get("fields"))
		}
		fmt.Fprint(w, `[{"name":{"common":"Kenya"}},{"name":{"common":"Japan"}},{"name":{"common":""}}]`)
	}))
	defer server.Close()

	client := NewCountryClient(WithCountryBaseURL(server.URL))
	names, err := client.ListNames(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "Kenya" || names[1] != "Japan" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestInfo_MapsProfileFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3.1/name/Kenya" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{
			"name":{"common":"Kenya"},
			"flags":{"png":"https://flagcdn.com/w320/ke.png"},
			"population":54027487,
			"languages":{"swa":"Swahili","eng":"English"},
			"timezones":["UTC+03:00"],
			"capital":["Nairobi"],
			"continents":["Africa"],
			"subregion":"Eastern Africa",
			"currencies":{"KES":{"name":"Kenyan shilling"}},
			"area":580367,
			"idd":{"root":"+2","suffixes":["54"]}
		}]`)
	}))
	defer server.Close()

	client := NewCountryClient(WithCountryBaseURL(server.URL))
	country, err := client.Info(context.Background(), "Kenya")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if country.Name != "Kenya" || country.Capital != "Nairobi" {
		t.Errorf("unexpected country %+v", country)
	}
	if country.Languages != "English, Swahili" {
		t.Errorf("expected sorted languages, got %q", country.Languages)
	}
	if country.Currency != "Kenyan shilling" {
		t.Errorf("unexpected currency %q", country.Currency)
	}
	if country.Continent != "Africa" || country.Subregion != "Eastern Africa" {
		t.Errorf("unexpected region fields %+v", country)
	}
	if country.PhoneCode != "+254" {
		t.Errorf("expected phone code +254, got %q", country.PhoneCode)
	}
	if country.FlagURL != "https://flagcdn.com/w320/ke.png" {
		t.Errorf("unexpected flag URL %q", country.FlagURL)
	}
	if country.AreaKm2 != 580367 {
		t.Errorf("unexpected area %v", country.AreaKm2)
	}
}

func TestInfo_NoMatchIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewCountryClient(WithCountryBaseURL(server.URL))
	if _, err := client.Info(context.Background(), "Atlantis"); err == nil {
		t.Fatal("expected an error for an unknown country")
	}
}
