package classic

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ListNews returns the event's news feed, newest first.
func (s Service) ListNews(ctx context.Context, eventID string) ([]NewsEntry, error) {
	iter := s.Client.Collection("news").
		Where("eventId", "==", eventID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var entries []NewsEntry
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to get news document: %v\n", err)
			return nil, err
		}

		entry, err := docToNewsEntry(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

// GetNews returns nil without error when the entry does not exist.
func (s Service) GetNews(ctx context.Context, newsID string) (*NewsEntry, error) {
	doc, err := s.Client.Collection("news").Doc(newsID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		log.Printf("Failed to get news entry from Firestore: %v\n", err)
		return nil, err
	}

	return docToNewsEntry(doc)
}

// CreateNews publishes a new entry with server timestamps and returns its
// generated document id.
func (s Service) CreateNews(ctx context.Context, eventID, title, body string) (string, error) {
	ref, _, err := s.Client.Collection("news").Add(ctx, map[string]interface{}{
		"eventId":   eventID,
		"title":     title,
		"body":      body,
		"createdAt": firestore.ServerTimestamp,
		"updatedAt": firestore.ServerTimestamp,
	})
	if err != nil {
		log.Printf("Failed to create news entry: %v\n", err)
		return "", err
	}
	return ref.ID, nil
}

// UpdateNews rewrites an entry's title and body. The merge write leaves
// createdAt untouched so the feed keeps its publish order.
func (s Service) UpdateNews(ctx context.Context, newsID, title, body string) error {
	_, err := s.Client.Collection("news").Doc(newsID).Set(ctx, map[string]interface{}{
		"title":     title,
		"body":      body,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		log.Printf("Failed to update news entry: %v\n", err)
	}
	return err
}

func (s Service) DeleteNews(ctx context.Context, newsID string) error {
	_, err := s.Client.Collection("news").Doc(newsID).Delete(ctx)
	if err != nil {
		log.Printf("Failed to delete news entry: %v\n", err)
	}
	return err
}

func docToNewsEntry(doc *firestore.DocumentSnapshot) (*NewsEntry, error) {
	var entry NewsEntry
	if err := doc.DataTo(&entry); err != nil {
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal news struct failed: %w",
			doc,
			err,
		)
	}
	entry.ID = doc.Ref.ID
	return &entry, nil
}
