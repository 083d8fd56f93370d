package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventSource supplies calendar entries for a run
type EventSource interface {
	FetchUpcomingEvents(ctx context.Context, window TimeRange) ([]RawEvent, error)
}

// GoogleCalendar fetches events from the Google Calendar API using an
// installed-app OAuth flow with a token cached on disk
type GoogleCalendar struct {
	cfg CalendarConfig
}

// NewGoogleCalendar creates a calendar source from config
func NewGoogleCalendar(cfg CalendarConfig) *GoogleCalendar {
	return &GoogleCalendar{cfg: cfg}
}

// FetchUpcomingEvents lists single events of the configured calendar inside
// window, ordered by start time. Any API or auth failure wraps as a
// FetchError: a fetch error must surface, it is never "zero events".
func (g *GoogleCalendar) FetchUpcomingEvents(ctx context.Context, window TimeRange) ([]RawEvent, error) {
	client, err := g.authorize(ctx)
	if err != nil {
		return nil, &FetchError{Source: "google-calendar", Err: err}
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, &FetchError{Source: "google-calendar", Err: err}
	}

	resp, err := svc.Events.List(g.cfg.CalendarID).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &FetchError{Source: "google-calendar", Err: err}
	}

	events := make([]RawEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, RawEvent{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
			StartTime:   eventStart(item),
		})
	}

	LogInfo("found %d events in window", len(events))
	return events, nil
}

// eventStart parses the start of a calendar item, falling back to the
// all-day date form
func eventStart(item *calendar.Event) time.Time {
	if item.Start == nil {
		return time.Time{}
	}
	if item.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, item.Start.DateTime); err == nil {
			return t
		}
	}
	if item.Start.Date != "" {
		if t, err := time.Parse("2006-01-02", item.Start.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// authorize builds an authenticated HTTP client from the credentials file
// and the cached token, running the interactive exchange when no token is
// saved yet
func (g *GoogleCalendar) authorize(ctx context.Context) (*http.Client, error) {
	data, err := os.ReadFile(g.cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(data, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	tok, err := g.loadToken()
	if err != nil {
		tok, err = g.exchangeToken(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
	}

	return oauthCfg.Client(ctx, tok), nil
}

func (g *GoogleCalendar) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(g.cfg.Token)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// exchangeToken runs the interactive installed-app flow: print the auth
// URL, read the code from stdin, exchange and cache the token for future
// runs
func (g *GoogleCalendar) exchangeToken(ctx context.Context, oauthCfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Authorize this app by visiting this url:\n%s\n", authURL)
	fmt.Print("Enter the code from that page here: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := g.saveToken(tok); err != nil {
		LogWarn("could not save token: %v", err)
	} else {
		LogInfo("token saved to %s", g.cfg.Token)
	}

	return tok, nil
}

func (g *GoogleCalendar) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(g.cfg.Token), 0700); err != nil {
		return err
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(g.cfg.Token, data, 0600)
}

// UpcomingWindow computes the fetch range for daysAhead full days from now:
// midnight-to-midnight of the target day in local time
func UpcomingWindow(now time.Time, daysAhead int) TimeRange {
	day := now.AddDate(0, 0, daysAhead)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}
