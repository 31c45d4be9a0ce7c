package models

import "time"

// Screenwork is a movie or TV series fetched from TMDb. Kind distinguishes
// the two; everything else is shared.
type Screenwork struct {
	TMDBID      int
	Kind        Kind // KindMovie or KindSeries
	Title       string
	Rating      float64 // vote average on a 0-10 scale
	GenreIDs    []int
	ReleaseDate string
	Plot        string
	PosterURL   string
}

// Song is one track pulled from a Spotify playlist.
type Song struct {
	Title       string
	Artists     []string
	Album       string
	ReleaseDate string
	CoverURL    string
	TrackURL    string
}

// WordEntry holds a dictionary word and whatever details could be fetched
// for it. Missing details are left as "Not Found" by the fetcher.
type WordEntry struct {
	Word          string
	Definition    string
	PartOfSpeech  string
	Pronunciation string
	Synonyms      string
	Antonyms      string
	Example       string
}

// Fact is a single random fact, already HTML-unescaped.
type Fact struct {
	Text string
}

// Joke is a two-part setup/punchline joke.
type Joke struct {
	Setup     string
	Punchline string
}

// Pun is a one-liner joke.
type Pun struct {
	Text string
}

// TriviaQuestion is one multiple-choice question. Answers holds the shuffled
// options including the correct one.
type TriviaQuestion struct {
	Question      string
	CorrectAnswer string
	Answers       []string
}

// WeatherReport aggregates the morning-post inputs: current conditions,
// temperature and the USD exchange rate, stamped with the local time the
// report was assembled.
type WeatherReport struct {
	Condition    string
	TemperatureC float64
	USDToKES     float64
	Now          time.Time
}

// Country is one country profile from the REST Countries API.
type Country struct {
	Name       string
	Capital    string
	Population int64
	Languages  string
	Timezones  string
	Continent  string
	Subregion  string
	Currency   string
	AreaKm2    float64
	PhoneCode  string
	FlagURL    string
}
