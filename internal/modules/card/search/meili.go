// Package search keeps the Meilisearch card index in sync and queries it.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const cardsIndex = "cards"

type cardDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BoardID     string `json:"board_id"`
	ListID      string `json:"list_id"`
	CreatedAt   int64  `json:"created_at"`
}

type MeiliIndexer struct {
	client meilisearch.ServiceManager
	log    *zap.Logger
}

// NewMeiliIndexer configures the cards index. Settings failures are logged;
// the index still accepts documents with default settings.
func NewMeiliIndexer(client meilisearch.ServiceManager, log *zap.Logger) *MeiliIndexer {
	m := &MeiliIndexer{client: client, log: log}
	m.initIndex()
	return m
}

func (m *MeiliIndexer) initIndex() {
	filterable := []any{"board_id", "list_id"}
	if _, err := m.client.Index(cardsIndex).UpdateFilterableAttributes(&filterable); err != nil {
		m.log.Warn("failed to update cards filterable attributes", zap.Error(err))
	}

	sortable := []string{"created_at"}
	if _, err := m.client.Index(cardsIndex).UpdateSortableAttributes(&sortable); err != nil {
		m.log.Warn("failed to update cards sortable attributes", zap.Error(err))
	}
}

func (m *MeiliIndexer) Index(_ context.Context, card *entity.Card) error {
	doc := cardDoc{
		ID:          card.ID.String(),
		Title:       card.Title,
		Description: sanitize.Plain(card.Description),
		BoardID:     card.BoardID.String(),
		CreatedAt:   card.CreatedAt.Unix(),
	}
	if card.ListID != nil {
		doc.ListID = card.ListID.String()
	}

	primaryKey := "id"
	task, err := m.client.Index(cardsIndex).AddDocuments([]cardDoc{doc}, &primaryKey)
	if err != nil {
		return err
	}
	m.log.Debug("indexed card", zap.String("card_id", doc.ID), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (m *MeiliIndexer) Delete(_ context.Context, id uuid.UUID) error {
	_, err := m.client.Index(cardsIndex).DeleteDocument(id.String())
	return err
}

// Search returns matching card ids in rank order, restricted to boardIDs.
func (m *MeiliIndexer) Search(_ context.Context, query string, boardIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	if len(boardIDs) == 0 {
		return nil, nil
	}

	raw, err := m.client.Index(cardsIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Filter:               BoardFilter(boardIDs),
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BoardFilter renders `board_id IN ["a", "b"]`.
func BoardFilter(boardIDs []uuid.UUID) string {
	quoted := make([]string, len(boardIDs))
	for i, id := range boardIDs {
		quoted[i] = fmt.Sprintf("%q", id.String())
	}
	return "board_id IN [" + strings.Join(quoted, ", ") + "]"
}
