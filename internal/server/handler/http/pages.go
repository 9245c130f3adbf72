package http

import (
	"io/fs"
	"net/http"

	"go.uber.org/zap"
)

// PagesHandler serves the pre-built HTML pages that drive the JSON
// endpoints: deck selection and card review.
type PagesHandler struct {
	// Assets is the filesystem holding the static pages.
	Assets fs.FS
	// Service triggers an engine sync before the deck page is served.
	Service ReviewService
	Logger  *zap.Logger
}

// Index handles GET / by redirecting to the deck selection view.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/decks", http.StatusSeeOther)
}

// Decks handles GET /decks. It syncs the engine's collection, then serves
// the deck selection page.
func (h *PagesHandler) Decks(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Sync(r.Context()); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	http.ServeFileFS(w, r, h.Assets, "selectDeck.html")
}

// Revise handles GET /revise by serving the card review page.
func (h *PagesHandler) Revise(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, h.Assets, "showCard.html")
}
