package use_cases

import (
	"fmt"
	"math"
	"strings"

	"github.com/Manasess896/X-bot/domain/models"
)

// Builders turning provider models into renderable ContentItems. Kept as
// pure functions so the rendered output can be tested without any I/O.

const plotLimit = 200

func screenworkItem(work models.Screenwork, genres map[int]string) models.ContentItem {
	stars := strings.Repeat("⭐️", int(math.Round(work.Rating/2)))

	names := make([]string, 0, len(work.GenreIDs))
	tags := make([]string, 0, len(work.GenreIDs))
	for _, id := range work.GenreIDs {
		name, ok := genres[id]
		if !ok {
			names = append(names, "Unknown")
			continue
		}
		names = append(names, name)
		tags = append(tags, "#"+strings.ReplaceAll(name, " ", ""))
	}

	plot := work.Plot
	if plot == "" {
		plot = "No plot available."
	}
	if runes := []rune(plot); len(runes) > plotLimit {
		plot = string(runes[:plotLimit])
	}

	item := models.ContentItem{
		Kind:       work.Kind,
		Identifier: work.Title,
		Headline:   fmt.Sprintf("🎬 Title: %s", work.Title),
		Fields: []models.Field{
			{Label: stars + " Rating", Value: fmt.Sprintf("%.1f/10", work.Rating)},
			{Label: "🎭 Genres", Value: strings.Join(names, ", ")},
			{Label: "📅 Release Date", Value: work.ReleaseDate},
			{Label: "📝 Plot", Value: plot},
		},
		ImageURL:  work.PosterURL,
		ImageName: "poster.jpg",
	}
	if len(tags) > 0 {
		item.Fields = append(item.Fields, models.Field{Value: strings.Join(tags, " ")})
	}
	return item
}

func songItem(song models.Song) models.ContentItem {
	return models.ContentItem{
		Kind:       models.KindSong,
		Identifier: song.Title,
		Headline:   fmt.Sprintf("🎵 Title: %s", song.Title),
		Fields: []models.Field{
			{Label: "🎤 Artist", Value: strings.Join(song.Artists, ", ")},
			{Label: "💿 Album", Value: song.Album},
			{Label: "📅 Release Date", Value: song.ReleaseDate},
			{Label: "🔗 Listen here", Value: song.TrackURL},
		},
		ImageURL:  song.CoverURL,
		ImageName: "cover.jpg",
	}
}

func wordItem(entry models.WordEntry) models.ContentItem {
	return models.ContentItem{
		Kind:       models.KindWord,
		Identifier: entry.Word,
		Headline:   fmt.Sprintf("Word: %s", capitalize(entry.Word)),
		Fields: []models.Field{
			{Label: "Definition", Value: entry.Definition},
			{Label: "Part of Speech", Value: entry.PartOfSpeech},
			{Label: "Pronunciation", Value: entry.Pronunciation},
			{Label: "Synonyms", Value: entry.Synonyms},
			{Label: "Antonyms", Value: entry.Antonyms},
			{Label: "Example", Value: entry.Example},
		},
	}
}

func factItem(fact models.Fact) models.ContentItem {
	return models.ContentItem{
		Kind:     models.KindFact,
		Headline: fmt.Sprintf("Random Fact: %s", fact.Text),
	}
}

func jokeItem(joke models.Joke) models.ContentItem {
	return models.ContentItem{
		Kind:     models.KindJoke,
		Headline: fmt.Sprintf("%s\n\n%s", joke.Setup, joke.Punchline),
	}
}

func punItem(pun models.Pun) models.ContentItem {
	return models.ContentItem{
		Kind:     models.KindPun,
		Headline: pun.Text,
	}
}

func triviaItem(q models.TriviaQuestion) models.ContentItem {
	options := make([]string, len(q.Answers))
	for i, ans := range q.Answers {
		options[i] = fmt.Sprintf("%d. %s", i+1, ans)
	}
	return models.ContentItem{
		Kind:     models.KindTrivia,
		Headline: "🤔 Trivia Time!",
		Fields: []models.Field{
			{Value: q.Question},
			{Value: strings.Join(options, "\n")},
			{Value: "#Trivia"},
		},
		FollowUps: []string{fmt.Sprintf("📝 Answer: %s", q.CorrectAnswer)},
	}
}

func weatherItem(report models.WeatherReport) models.ContentItem {
	return models.ContentItem{
		Kind:       models.KindWeather,
		Identifier: report.Now.Format("2006-01-02"),
		Headline: fmt.Sprintf(
			"Good morning, Nairobi. It is %s %s %s. The weather is %s and the temperature is %.0f°C. The shilling is trading at %.2f KES per 1 USD.",
			report.Now.Format("03:04 PM"),
			report.Now.Format("Monday"),
			report.Now.Format("02 January 2006"),
			report.Condition,
			report.TemperatureC,
			report.USDToKES,
		),
	}
}

func countryItem(country models.Country) models.ContentItem {
	return models.ContentItem{
		Kind:       models.KindCountry,
		Identifier: country.Name,
		Headline:   fmt.Sprintf("Country: %s", country.Name),
		Fields: []models.Field{
			{Label: "Capital", Value: country.Capital},
			{Label: "Population", Value: fmt.Sprintf("%d+", country.Population)},
			{Label: "Languages", Value: country.Languages},
			{Label: "Timezones", Value: country.Timezones},
			{Label: "Continent", Value: country.Continent},
			{Label: "Subregion", Value: country.Subregion},
			{Label: "Currency", Value: country.Currency},
			{Label: "Area", Value: fmt.Sprintf("%.0f km²", country.AreaKm2)},
			{Label: "Phone Code", Value: country.PhoneCode},
		},
		ImageURL:  country.FlagURL,
		ImageName: "flag.png",
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
