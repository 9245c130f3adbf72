// Package anki provides a client for the AnkiConnect HTTP API, the upstream
// flashcard engine this application proxies to.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sidious38/simpleAnkiWeb/internal/models"
)

// requestTimeout bounds every call to the engine.
const requestTimeout = 5 * time.Second

// apiVersion is the AnkiConnect protocol version sent in every request.
const apiVersion = 6

var (
	// ErrUnreachable indicates the engine endpoint could not be reached or
	// did not respond within the request timeout.
	ErrUnreachable = errors.New("engine unreachable")

	// ErrInvalidResponse indicates the engine's response was missing the
	// "error" or "result" field of the expected envelope.
	ErrInvalidResponse = errors.New("invalid response from engine")
)

// UpstreamError carries an error message reported by the engine itself,
// e.g. for a malformed query.
type UpstreamError struct {
	// Message is the engine-reported error text, passed through verbatim.
	Message string
}

// Error returns the engine-reported message.
func (e *UpstreamError) Error() string {
	return e.Message
}

// Client performs JSON requests against an AnkiConnect endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a Client for the given endpoint URL with the fixed request
// timeout applied.
func New(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// request is the AnkiConnect request envelope.
type request struct {
	Action  string         `json:"action"`
	Params  map[string]any `json:"params"`
	Version int            `json:"version"`
}

// Invoke performs a single AnkiConnect action and returns the raw "result"
// field of the response envelope.
//
// It fails with an error wrapping ErrUnreachable on transport failure or
// timeout, with ErrInvalidResponse if the response is missing the "error"
// or "result" field, and with an *UpstreamError if the engine reported a
// non-null error. The call is synchronous and never retried.
func (c *Client) Invoke(ctx context.Context, action string, params map[string]any) (json.RawMessage, error) {
	if params == nil {
		params = map[string]any{}
	}

	body, err := json.Marshal(request{Action: action, Params: params, Version: apiVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	engineErr, hasErr := envelope["error"]
	result, hasResult := envelope["result"]
	if !hasErr || !hasResult {
		return nil, ErrInvalidResponse
	}

	if string(engineErr) != "null" {
		var msg string
		if err := json.Unmarshal(engineErr, &msg); err != nil {
			msg = string(engineErr)
		}
		return nil, &UpstreamError{Message: msg}
	}

	return result, nil
}

// DeckNames returns the names of all decks known to the engine.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	raw, err := c.Invoke(ctx, "deckNames", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return names, nil
}

// FindCards returns the IDs of cards matching the given engine query string.
func (c *Client) FindCards(ctx context.Context, query string) ([]int64, error) {
	raw, err := c.Invoke(ctx, "findCards", map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return ids, nil
}

// CardsInfo returns full card information for the given card IDs.
func (c *Client) CardsInfo(ctx context.Context, ids []int64) ([]models.Card, error) {
	raw, err := c.Invoke(ctx, "cardsInfo", map[string]any{"cards": ids})
	if err != nil {
		return nil, err
	}
	var cards []models.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return cards, nil
}

// AnswerCards submits gradings for one or more cards and returns the raw
// engine result (a list of booleans, one per answer).
func (c *Client) AnswerCards(ctx context.Context, answers []models.CardAnswer) (json.RawMessage, error) {
	return c.Invoke(ctx, "answerCards", map[string]any{"answers": answers})
}

// RetrieveMediaFile returns the base64-encoded contents of a media file
// stored in the engine's media collection.
func (c *Client) RetrieveMediaFile(ctx context.Context, filename string) (string, error) {
	raw, err := c.Invoke(ctx, "retrieveMediaFile", map[string]any{"filename": filename})
	if err != nil {
		return "", err
	}
	var data string
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return data, nil
}

// Sync triggers a collection sync in the engine.
func (c *Client) Sync(ctx context.Context) error {
	_, err := c.Invoke(ctx, "sync", nil)
	return err
}
