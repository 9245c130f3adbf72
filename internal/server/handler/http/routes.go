package http

import (
	"net/http"

	"github.com/sidious38/simpleAnkiWeb/internal/middleware"
	"github.com/sidious38/simpleAnkiWeb/internal/session"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the web
// front-end. It applies request-ID tagging, panic recovery, request
// logging, and the session login gate, then mounts the login, page, and
// review endpoints.
//
// Routes:
//
//	GET/POST /login          → authHandler.Login (public)
//	GET      /               → pagesHandler.Index
//	GET      /decks          → pagesHandler.Decks
//	GET      /revise         → pagesHandler.Revise
//	GET      /getDeckNames   → reviewHandler.GetDeckNames
//	GET      /getCards       → reviewHandler.GetCards
//	GET      /getNextCard    → reviewHandler.GetNextCard
//	GET      /getCardContent → reviewHandler.GetCardContent
//	GET      /answerCard     → reviewHandler.AnswerCard
//
// Every route except /login requires a valid session cookie; requests
// without one are redirected to /login.
func NewRouter(
	authHandler *AuthHandler,
	reviewHandler *ReviewHandler,
	pagesHandler *PagesHandler,
	sessions *session.Manager,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce session-cookie authentication
	r.Use(middleware.RequireLogin(sessions))

	// Public endpoint
	r.Get("/login", authHandler.Login)
	r.Post("/login", authHandler.Login)

	// Protected group: requires a valid session cookie
	r.Group(func(r chi.Router) {
		r.Get("/", pagesHandler.Index)
		r.Get("/decks", pagesHandler.Decks)
		r.Get("/revise", pagesHandler.Revise)

		r.Get("/getDeckNames", reviewHandler.GetDeckNames)
		r.Get("/getCards", reviewHandler.GetCards)
		r.Get("/getNextCard", reviewHandler.GetNextCard)
		r.Get("/getCardContent", reviewHandler.GetCardContent)
		r.Get("/answerCard", reviewHandler.AnswerCard)
	})

	return r
}
