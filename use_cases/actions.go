package use_cases

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
	"github.com/Manasess896/X-bot/domain/ports"
	"github.com/Manasess896/X-bot/pkg/logger"
)

// Actions are the bot's scheduled publishing jobs, one method per content
// kind. Every method follows the same flow: fetch, drop already-published
// candidates, compose, publish, record, announce. A provider error means
// there is nothing to publish this cycle and is not treated as a failure.
type Actions struct {
	screen    ports.ScreenProvider
	songs     ports.SongProvider
	words     ports.WordProvider
	facts     ports.FactProvider
	jokes     ports.JokeProvider
	puns      ports.PunProvider
	trivia    ports.TriviaProvider
	weather   ports.WeatherProvider
	countries ports.CountryProvider

	dedupe    ports.DedupeStore
	publisher *Publisher
	messenger ports.Messenger
	notifier  ports.Notifier

	rand   *rand.Rand
	logger *slog.Logger
}

// ActionDeps wires the collaborators of Actions. Provider fields for
// unconfigured sources may be nil; the container only schedules actions
// whose providers exist.
type ActionDeps struct {
	Screen    ports.ScreenProvider
	Songs     ports.SongProvider
	Words     ports.WordProvider
	Facts     ports.FactProvider
	Jokes     ports.JokeProvider
	Puns      ports.PunProvider
	Trivia    ports.TriviaProvider
	Weather   ports.WeatherProvider
	Countries ports.CountryProvider

	Dedupe    ports.DedupeStore
	Publisher *Publisher
	Messenger ports.Messenger
	Notifier  ports.Notifier

	// Rand overrides the random source, useful for testing.
	Rand *rand.Rand
}

func NewActions(deps ActionDeps) *Actions {
	r := deps.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Actions{
		screen:    deps.Screen,
		songs:     deps.Songs,
		words:     deps.Words,
		facts:     deps.Facts,
		jokes:     deps.Jokes,
		puns:      deps.Puns,
		trivia:    deps.Trivia,
		weather:   deps.Weather,
		countries: deps.Countries,
		dedupe:    deps.Dedupe,
		publisher: deps.Publisher,
		messenger: deps.Messenger,
		notifier:  deps.Notifier,
		rand:      r,
		logger:    slog.Default().With("component", "actions"),
	}
}

// Run wraps an action method into a scheduler task: it mints a run ID,
// stamps it on the context and the log lines, and on failure notifies the
// messenger and the ops alert channel.
func (a *Actions) Run(name string, kind models.Kind, fn func(ctx context.Context) error) func() error {
	return func() error {
		runID := logger.NewRunID()
		ctx := logger.ContextWithRunID(context.Background(), runID)
		log := logger.WithRunID(ctx).With("action", name)

		log.Info("Action started")
		if err := fn(ctx); err != nil {
			log.Error("Action failed", "error", err)
			if mErr := a.messenger.SendFailed(ctx, kind, runID, err); mErr != nil {
				log.Warn("Failed to send failure event", "error", mErr)
			}
			if a.notifier.IsEnabled() {
				if nErr := a.notifier.NotifyFailure(ctx, name, err); nErr != nil {
					log.Warn("Failed to send failure alert", "error", nErr)
				}
			}
			return err
		}
		log.Info("Action finished")
		return nil
	}
}

// PostMovieOrSeries posts one random trending movie or series, with poster,
// rating stars, genres and a trailer reply when one exists.
func (a *Actions) PostMovieOrSeries(ctx context.Context) error {
	log := logger.WithRunID(ctx)

	genres, err := a.screen.GenreNames(ctx)
	if err != nil {
		log.Warn("Failed to fetch genre names", "error", err)
		genres = map[int]string{}
	}

	var works []models.Screenwork
	if a.rand.Intn(2) == 0 {
		works, err = a.screen.TrendingMovies(ctx)
	} else {
		works, err = a.screen.TrendingSeries(ctx)
	}
	if err != nil {
		log.Error("Failed to fetch trending works", "error", err)
		return nil
	}

	fresh := works[:0:0]
	for _, w := range works {
		if !a.dedupe.HasPublished(ctx, w.Kind, w.Title) {
			fresh = append(fresh, w)
		}
	}
	if len(fresh) == 0 {
		log.Info("All fetched works already posted")
		return nil
	}

	work := fresh[a.rand.Intn(len(fresh))]
	item := screenworkItem(work, genres)

	if trailer, terr := a.screen.TrailerURL(ctx, work.TMDBID, work.Kind); terr != nil {
		log.Warn("Failed to fetch trailer", "title", work.Title, "error", terr)
	} else if trailer != "" {
		item.FollowUps = append(item.FollowUps, "🎥 Watch the trailer: "+trailer)
	}

	return a.publish(ctx, item, true)
}

// PostSong posts one random unposted track from the configured playlist.
func (a *Actions) PostSong(ctx context.Context) error {
	log := logger.WithRunID(ctx)

	tracks, err := a.songs.PlaylistTracks(ctx)
	if err != nil {
		log.Error("Failed to fetch playlist tracks", "error", err)
		return nil
	}

	fresh := tracks[:0:0]
	for _, t := range tracks {
		if !a.dedupe.HasPublished(ctx, models.KindSong, t.Title) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		log.Info("All fetched tracks already posted")
		return nil
	}

	return a.publish(ctx, songItem(fresh[a.rand.Intn(len(fresh))]), true)
}

// PostWord posts a random dictionary word with its details.
func (a *Actions) PostWord(ctx context.Context) error {
	entry, err := a.words.RandomWord(ctx)
	if err != nil {
		logger.WithRunID(ctx).Error("Failed to fetch random word", "error", err)
		return nil
	}
	return a.publish(ctx, wordItem(*entry), false)
}

// PostFact posts a random fact.
func (a *Actions) PostFact(ctx context.Context) error {
	fact, err := a.facts.RandomFact(ctx)
	if err != nil {
		logger.WithRunID(ctx).Error("Failed to fetch random fact", "error", err)
		return nil
	}
	return a.publish(ctx, factItem(*fact), false)
}

// PostJoke posts a random setup/punchline joke.
func (a *Actions) PostJoke(ctx context.Context) error {
	joke, err := a.jokes.RandomJoke(ctx)
	if err != nil {
		logger.WithRunID(ctx).Error("Failed to fetch random joke", "error", err)
		return nil
	}
	return a.publish(ctx, jokeItem(*joke), false)
}

// PostPun posts a random one-liner.
func (a *Actions) PostPun(ctx context.Context) error {
	pun, err := a.puns.RandomPun(ctx)
	if err != nil {
		logger.WithRunID(ctx).Error("Failed to fetch random pun", "error", err)
		return nil
	}
	return a.publish(ctx, punItem(*pun), false)
}

// PostTrivia posts a multiple-choice question and replies with the answer.
func (a *Actions) PostTrivia(ctx context.Context) error {
	q, err := a.trivia.RandomQuestion(ctx)
	if err != nil {
		logger.WithRunID(ctx).Error("Failed to fetch trivia question", "error", err)
		return nil
	}
	return a.publish(ctx, triviaItem(*q), false)
}

// PostWeather posts the morning report, once per day.
func (a *Actions) PostWeather(ctx context.Context) error {
	log := logger.WithRunID(ctx)

	report, err := a.weather.CurrentReport(ctx)
	if err != nil {
		log.Error("Failed to assemble weather report", "error", err)
		return nil
	}

	item := weatherItem(*report)
	if a.dedupe.HasPublished(ctx, models.KindWeather, item.Identifier) {
		log.Info("Weather already posted today", "date", item.Identifier)
		return nil
	}
	return a.publish(ctx, item, true)
}

// PostCountry posts a random country profile with its flag.
func (a *Actions) PostCountry(ctx context.Context) error {
	log := logger.WithRunID(ctx)

	names, err := a.countries.ListNames(ctx)
	if err != nil || len(names) == 0 {
		log.Error("Failed to list countries", "error", err)
		return nil
	}

	name := names[a.rand.Intn(len(names))]
	country, err := a.countries.Info(ctx, name)
	if err != nil {
		log.Error("Failed to fetch country info", "country", name, "error", err)
		return nil
	}
	return a.publish(ctx, countryItem(*country), false)
}

// publish composes and delivers item, records it in the dedupe store when
// record is set, posts any follow-up replies and announces the result.
// Follow-up and announcement failures are logged, never propagated.
func (a *Actions) publish(ctx context.Context, item models.ContentItem, record bool) error {
	log := logger.WithRunID(ctx).With("kind", item.Kind, "identifier", item.Identifier)

	post := Compose(item, nil, PostLimit)
	result, err := a.publisher.Publish(ctx, post)
	if err != nil {
		return err
	}
	log.Info("Posted", "segments", len(result.PostIDs))

	if record {
		if derr := a.dedupe.RecordPublished(ctx, item.Kind, item.Identifier); derr != nil {
			log.Error("Failed to record published item", "error", derr)
		}
	}

	lastID := result.PostIDs[len(result.PostIDs)-1]
	for _, followUp := range item.FollowUps {
		id, ferr := a.publisher.Reply(ctx, lastID, followUp)
		if ferr != nil {
			log.Warn("Failed to post follow-up reply", "error", ferr)
			break
		}
		result.PostIDs = append(result.PostIDs, id)
		lastID = id
	}

	event := &models.PublishEvent{
		Kind:       item.Kind,
		Identifier: item.Identifier,
		PostIDs:    result.PostIDs,
		RunID:      logger.RunIDFrom(ctx),
	}
	if merr := a.messenger.SendPublished(ctx, event); merr != nil {
		log.Warn("Failed to send publish event", "error", merr)
	}
	return nil
}
