package news

import (
	"context"
	"errors"
	"strings"

	editorlock "github.com/october-classic/classic-live/pkg/editorlock"
	classic "github.com/october-classic/classic-live/repos/classic"
)

var (
	// ErrNotEditor rejects a write before any mutation happens: the caller's
	// session is not the one holding the editor lock.
	ErrNotEditor = errors.New("caller does not hold the editor lock")

	// ErrEmptyEntry rejects a post without a title or body.
	ErrEmptyEntry = errors.New("title and body are required")

	// ErrUnknownEntry rejects an update or delete for an entry that does not
	// exist.
	ErrUnknownEntry = errors.New("news entry not found")
)

type NewsService struct {
	classicService *classic.Service
}

func NewNewsService(classicService *classic.Service) *NewsService {
	return &NewsService{
		classicService: classicService,
	}
}

// List returns the event's news feed, newest first. Open to viewers.
func (s *NewsService) List(ctx context.Context, eventID string) ([]classic.NewsEntry, error) {
	return s.classicService.ListNews(ctx, eventID)
}

// Create publishes a post on the feed of the token's event and returns the
// new entry id.
func (s *NewsService) Create(ctx context.Context, editorToken, title, body string) (string, error) {
	eventID, err := s.requireEditor(ctx, editorToken)
	if err != nil {
		return "", err
	}

	title, body, err = normalizeEntry(title, body)
	if err != nil {
		return "", err
	}

	return s.classicService.CreateNews(ctx, eventID, title, body)
}

// Update rewrites an existing post. The entry must belong to the token's
// event; its publish timestamp is preserved.
func (s *NewsService) Update(ctx context.Context, editorToken, newsID, title, body string) error {
	if _, err := s.authorizeEntryWrite(ctx, editorToken, newsID); err != nil {
		return err
	}

	title, body, err := normalizeEntry(title, body)
	if err != nil {
		return err
	}

	return s.classicService.UpdateNews(ctx, newsID, title, body)
}

// Delete removes a post from the feed of the token's event.
func (s *NewsService) Delete(ctx context.Context, editorToken, newsID string) error {
	if _, err := s.authorizeEntryWrite(ctx, editorToken, newsID); err != nil {
		return err
	}
	return s.classicService.DeleteNews(ctx, newsID)
}

func (s *NewsService) requireEditor(ctx context.Context, editorToken string) (string, error) {
	eventID, sessionID, err := editorlock.DecodeToken(editorToken)
	if err != nil {
		return "", ErrNotEditor
	}

	access, err := s.classicService.GetEditorAccess(ctx, eventID)
	if err != nil {
		return "", err
	}
	if access.CurrentEditorUID == "" || access.CurrentEditorUID != sessionID {
		return "", ErrNotEditor
	}
	return eventID, nil
}

func (s *NewsService) authorizeEntryWrite(ctx context.Context, editorToken, newsID string) (*classic.NewsEntry, error) {
	eventID, err := s.requireEditor(ctx, editorToken)
	if err != nil {
		return nil, err
	}

	entry, err := s.classicService.GetNews(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrUnknownEntry
	}
	if entry.EventID != eventID {
		return nil, ErrNotEditor
	}
	return entry, nil
}

// normalizeEntry trims both fields and rejects a post left empty after
// trimming.
func normalizeEntry(title, body string) (string, string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return "", "", ErrEmptyEntry
	}
	return title, body, nil
}
