package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sidious38/simpleAnkiWeb/internal/models"
	"go.uber.org/zap"
)

// ReviewService defines the review operations required by the HTTP handlers.
type ReviewService interface {
	// DeckNames returns the names of all decks.
	DeckNames(ctx context.Context) ([]string, error)
	// DueCards returns the deck's new and due cards in review order.
	DueCards(ctx context.Context, deck string) ([]models.Card, error)
	// NextCard returns the highest-priority card ID of the deck.
	NextCard(ctx context.Context, deck string) (int64, error)
	// CardContent returns one card with media inlined, as a one-element slice.
	CardContent(ctx context.Context, id int64) ([]models.Card, error)
	// AnswerCard submits a grading and returns the raw engine result.
	AnswerCard(ctx context.Context, id int64, ease int) (json.RawMessage, error)
	// Sync triggers a collection sync.
	Sync(ctx context.Context) error
}

// ReviewHandler handles the card review endpoints, delegating to a
// ReviewService.
type ReviewHandler struct {
	Service ReviewService
	Logger  *zap.Logger
}

// writeJSON serializes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responds 500 with the error message in a JSON body. All
// failures above the auth layer collapse into this path; the message is
// passed through verbatim, including engine-reported error text.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Error("request failed", zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// GetDeckNames handles GET /getDeckNames.
func (h *ReviewHandler) GetDeckNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.Service.DeckNames(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, names)
}

// GetCards handles GET /getCards?query=<deck>.
// It responds with the sorted list of card IDs for the deck.
func (h *ReviewHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Service.DueCards(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.CardID)
	}
	writeJSON(w, ids)
}

// GetNextCard handles GET /getNextCard?query=<deck>.
// It responds with the single highest-priority card ID, or an error when
// the deck has no matching cards.
func (h *ReviewHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	id, err := h.Service.NextCard(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, id)
}

// GetCardContent handles GET /getCardContent?card=<id>.
// It responds with a one-element list holding the card's full info, with
// media references inlined as data URIs.
func (h *ReviewHandler) GetCardContent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("card"), 10, 64)
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	cards, err := h.Service.CardContent(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, cards)
}

// AnswerCard handles GET /answerCard?card=<id>&ease=<n>.
// It submits the grading to the engine and echoes the raw engine result.
func (h *ReviewHandler) AnswerCard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("card"), 10, 64)
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}
	ease, err := strconv.Atoi(r.URL.Query().Get("ease"))
	if err != nil {
		http.Error(w, "invalid ease", http.StatusBadRequest)
		return
	}

	result, err := h.Service.AnswerCard(r.Context(), id, ease)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result)
}
