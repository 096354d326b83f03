package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
)

// Classify reports what kind of Hugging Face identity ?input= names.
func Classify(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, ok := classifyInput(w, r.URL.Query().Get("input"), d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, link)
	}
}

// classifyInput writes the 400 itself when input is not a Hugging Face identity.
func classifyInput(w http.ResponseWriter, input string, d deps.Deps) (domain.ParsedLink, bool) {
	link, err := domain.Classify(input)
	if err != nil {
		d.Metrics.ObserveClassification("invalid")
		var invalid *domain.InvalidLinkError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Reason)
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return domain.ParsedLink{}, false
	}

	d.Metrics.ObserveClassification(string(link.Kind))
	return link, true
}
