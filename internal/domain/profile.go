package domain

import "time"

// DefaultAvatarURL is the placeholder used when no avatar can be found.
const DefaultAvatarURL = "https://huggingface.co/front/assets/huggingface_logo-noborder.svg"

// ProfileType is the only profile type the resolver reports.
const ProfileType = "user"

// Profile is the display data of a Hugging Face user or organization.
type Profile struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// Username is the owner name as typed or classified.
	Username string `json:"username"`

	// ProfileURL is https://huggingface.co/{Username}.
	ProfileURL string `json:"profileUrl"`

	// Type is always "user"; organizations are not told apart.
	Type string `json:"type"`

	// ─────────────────────────────
	// Display data (scraped)
	// ─────────────────────────────

	// FullName is the page heading, or Username when none was found.
	FullName string `json:"fullName"`

	// AvatarURL is the CDN avatar, the og:image, or DefaultAvatarURL.
	AvatarURL string `json:"avatarUrl"`

	// ─────────────────────────────
	// Request echo
	// ─────────────────────────────

	// ResourceType and ResourceName echo the classified link, nil when absent.
	ResourceType *string `json:"resourceType"`
	ResourceName *string `json:"resourceName"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// ResolvedAt is when the display data was fetched.
	ResolvedAt time.Time `json:"resolvedAt"`

	// Fallback is true when the defaults were substituted after a failed fetch.
	Fallback bool `json:"fallback"`
}

// DefaultProfile returns the profile shown when resolution fails.
func DefaultProfile(username string) *Profile {
	return &Profile{
		Username:   username,
		ProfileURL: ProfileURLFor(username),
		Type:       ProfileType,
		FullName:   username,
		AvatarURL:  DefaultAvatarURL,
		ResolvedAt: time.Now(),
		Fallback:   true,
	}
}

// ForUsername returns a copy of p addressed as username, so callers see the
// capitalization they asked for whichever spelling filled the cache.
func (p *Profile) ForUsername(username string) *Profile {
	out := *p
	out.Username = username
	out.ProfileURL = ProfileURLFor(username)
	return &out
}

// WithResource returns a copy of p carrying the resource echo fields.
// Empty values are reported as absent.
func (p *Profile) WithResource(resourceType, resourceName string) *Profile {
	out := *p
	out.ResourceType = optional(resourceType)
	out.ResourceName = optional(resourceName)
	return &out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
