package domain

import "fmt"

// HubBaseURL is the canonical origin every profile URL points at.
const HubBaseURL = "https://huggingface.co"

// Kind is the type of Hugging Face resource a link refers to.
type Kind string

const (
	KindProfile Kind = "profile"
	KindModel   Kind = "model"
	KindDataset Kind = "dataset"
	KindSpace   Kind = "space"
)

// ParsedLink is the result of classifying a user supplied username or link.
//
// It is a plain value: Classify builds a fresh one per input and nothing
// keeps a reference to it afterwards.
type ParsedLink struct {
	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	// Kind is profile, model, dataset or space.
	Kind Kind `json:"kind"`

	// Username is the owner of the resource (user or organization).
	// Never empty for a successful classification.
	Username string `json:"username"`

	// ResourceName is the model, dataset or space name.
	// Empty if and only if Kind is profile.
	ResourceName string `json:"resourceName,omitempty"`

	// ─────────────────────────────
	// Derived
	// ─────────────────────────────

	// ProfileURL is https://huggingface.co/{Username}, whatever the input form.
	ProfileURL string `json:"profileUrl"`

	// SourceURL is the normalized input, kept for diagnostics.
	SourceURL string `json:"sourceUrl"`
}

// HasResource reports whether the link names a model, dataset or space.
func (p ParsedLink) HasResource() bool {
	return p.ResourceName != ""
}

// ResourceType returns the kind as a resource type, or "" for profiles.
func (p ParsedLink) ResourceType() string {
	if p.Kind == KindProfile {
		return ""
	}
	return string(p.Kind)
}

// ProfileURLFor builds the canonical profile URL of a username.
func ProfileURLFor(username string) string {
	return HubBaseURL + "/" + username
}

// InvalidLinkError is returned when an input cannot be read as a Hugging Face identity.
type InvalidLinkError struct {
	Input  string
	Reason string
}

func (e *InvalidLinkError) Error() string {
	return fmt.Sprintf("invalid Hugging Face URL: %s", e.Reason)
}

func invalidLink(input, format string, args ...any) *InvalidLinkError {
	return &InvalidLinkError{Input: input, Reason: fmt.Sprintf(format, args...)}
}
