// Package media rewrites <img> references in card HTML into inline
// base64 data URIs so the browser never needs direct access to the
// engine's media collection.
package media

import (
	"context"
	"fmt"
	"regexp"
)

// imgTagPattern matches an <img> tag and captures its src attribute value.
// The match is a plain attribute scan; nested or malformed tags beyond that
// are not handled.
var imgTagPattern = regexp.MustCompile(`<img[^>]+src="([^"]+)"[^>]*>`)

// Fetcher retrieves the base64-encoded contents of a named media file.
type Fetcher interface {
	RetrieveMediaFile(ctx context.Context, filename string) (string, error)
}

// Inliner rewrites img tags in HTML fragments using a Fetcher.
type Inliner struct {
	fetcher Fetcher
}

// NewInliner constructs an Inliner over the given Fetcher.
func NewInliner(fetcher Fetcher) *Inliner {
	return &Inliner{fetcher: fetcher}
}

// Rewrite replaces every <img src="..."> reference in the fragment with an
// inline data URI holding the fetched file contents. The MIME type is always
// image/jpeg regardless of the actual file type; this mirrors the engine-side
// convention and renders incorrectly in strict clients for non-JPEG media.
//
// A single regex pass is made. The first fetch failure aborts the whole
// rewrite; there is no partial-success handling.
func (i *Inliner) Rewrite(ctx context.Context, fragment string) (string, error) {
	var fetchErr error

	rewritten := imgTagPattern.ReplaceAllStringFunc(fragment, func(tag string) string {
		if fetchErr != nil {
			return tag
		}

		filename := imgTagPattern.FindStringSubmatch(tag)[1]
		data, err := i.fetcher.RetrieveMediaFile(ctx, filename)
		if err != nil {
			fetchErr = fmt.Errorf("inline %s: %w", filename, err)
			return tag
		}

		return fmt.Sprintf(`<img src="data:image/jpeg;base64,%s" />`, data)
	})

	if fetchErr != nil {
		return "", fetchErr
	}
	return rewritten, nil
}
