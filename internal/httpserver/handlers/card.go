package handlers

import (
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
)

// ProxyImagePath is the relay route the card points avatars at.
const ProxyImagePath = "/api/proxy-image"

type cardResponse struct {
	Profile           *domain.Profile   `json:"profile"`
	AvatarURL         string            `json:"avatarUrl"`
	OriginalAvatarURL string            `json:"originalAvatarUrl"`
	QRValue           string            `json:"qrValue"`
	Link              domain.ParsedLink `json:"link"`
	Theme             *domain.Theme     `json:"theme"`
}

// Card gathers everything a client needs to draw a profile card.
func Card(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		link, ok := classifyInput(w, q.Get("input"), d)
		if !ok {
			return
		}

		p := d.Resolver.Resolve(r.Context(), link.Username).
			WithResource(link.ResourceType(), link.ResourceName)

		writeJSON(w, http.StatusOK, cardResponse{
			Profile:           p,
			AvatarURL:         RelayURL(p.AvatarURL),
			OriginalAvatarURL: p.AvatarURL,
			QRValue:           link.ProfileURL,
			Link:              link,
			Theme:             d.MemoryIndex.ThemeOrDefault(q.Get("theme")),
		})
	}
}

// RelayURL is the same-origin relay path of an upstream image.
func RelayURL(imageURL string) string {
	return ProxyImagePath + "?url=" + url.QueryEscape(imageURL)
}
