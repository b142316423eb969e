package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/keeponfirst/localbrain/internal/config"
	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/ui"
)

// notionClient validates the configuration and returns an API client.
func notionClient(s *config.Settings) (*notion.Client, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return notion.NewClient(notion.Options{
		Token:   s.NotionToken,
		BaseURL: s.NotionBaseURL,
		Version: s.NotionVersion,
		Logger:  logger,
	}), nil
}

// notionParent is the configured parent page or database.
func notionParent(s *config.Settings) notion.Parent {
	if s.NotionMode == config.ModeDatabase {
		return notion.DatabaseParent(s.NotionParent)
	}
	return notion.PageParent(s.NotionParent)
}

// commandContext is canceled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// withSpinner runs fn with a spinner on stderr in text mode.
func withSpinner(message string, fn func() error) error {
	if isJSONOutput() {
		return fn()
	}
	spinner := ui.NewSpinner(message)
	spinner.Start()
	defer spinner.Stop()
	return fn()
}

// writeCentralLog records an event in the central log. Failures never fail
// the command; they come back as a warning instead.
func writeCentralLog(s *config.Settings, intent string, data any, status string) (string, *Warning) {
	if s.LogHomeErr != nil {
		return "", &Warning{Code: WarnCentralLogSkipped, Message: s.LogHomeErr.Error()}
	}
	path, ok := loghome.NewLogger(s.Resolver()).WriteEntry(intent, data, status)
	if !ok {
		return "", &Warning{Code: WarnCentralLogSkipped, Message: "failed to write central log entry for " + intent}
	}
	return path, nil
}
