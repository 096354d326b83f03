package domain

import (
	"net/url"
	"strings"
)

const (
	hubHostMarker   = "huggingface.co"
	spaceHostSuffix = ".hf.space"
)

// collectionPages are the per-owner listing pages (/{owner}/models, ...).
var collectionPages = map[string]bool{
	"models":   true,
	"datasets": true,
	"spaces":   true,
}

// linkTarget is an absolute URL broken down for rule matching.
type linkTarget struct {
	input    string
	host     string
	path     string
	segments []string
}

// linkRule classifies a target. matched=false hands the target to the next rule.
type linkRule func(t linkTarget) (link ParsedLink, matched bool, err error)

// linkRules are evaluated in order and the first match wins.
// spacesPathRule precedes datasetsPathRule: a path holding both
// substrings is a space.
var linkRules = []linkRule{
	subdomainRule,
	spacesPathRule,
	datasetsPathRule,
	emptyPathRule,
	ownerResourceRule,
	ownerRule,
}

// Classify maps a username or Hugging Face link to a ParsedLink.
// Examples:
//   - "reubencf" -> profile reubencf
//   - "https://huggingface.co/reubencf/my-model" -> model reubencf/my-model
//   - "https://huggingface.co/spaces/org/demo" -> space org/demo
//   - "https://reubencf-myspace.hf.space" -> space reubencf/myspace
//
// It performs no I/O and is safe for concurrent use.
func Classify(input string) (ParsedLink, error) {
	normalized := strings.TrimSuffix(strings.TrimSpace(input), "/")
	if normalized == "" {
		return ParsedLink{}, invalidLink(input, "empty input")
	}

	var raw string
	switch {
	case strings.HasPrefix(normalized, "http://"), strings.HasPrefix(normalized, "https://"):
		raw = normalized
	case strings.HasPrefix(normalized, hubHostMarker):
		raw = "https://" + normalized
	default:
		// Bare username, taken as is.
		return finish(ParsedLink{Kind: KindProfile, Username: normalized}, normalized), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ParsedLink{}, invalidLink(input, "malformed URL: %v", err)
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, hubHostMarker) && !strings.HasSuffix(host, spaceHostSuffix) {
		return ParsedLink{}, invalidLink(input, "not a Hugging Face host: %q", host)
	}

	target := linkTarget{
		input:    input,
		host:     host,
		path:     u.Path,
		segments: splitSegments(u.Path),
	}

	for _, rule := range linkRules {
		link, matched, err := rule(target)
		if err != nil {
			return ParsedLink{}, err
		}
		if matched {
			return finish(link, u.String()), nil
		}
	}

	// Unreachable with the current rule set: ownerRule matches any non-empty path.
	return ParsedLink{}, invalidLink(input, "unrecognized URL layout")
}

// finish fills the derived fields.
func finish(link ParsedLink, source string) ParsedLink {
	link.ProfileURL = ProfileURLFor(link.Username)
	link.SourceURL = source
	return link
}

// subdomainRule handles {owner}-{space}.hf.space; the path is ignored.
func subdomainRule(t linkTarget) (ParsedLink, bool, error) {
	if !strings.HasSuffix(t.host, spaceHostSuffix) {
		return ParsedLink{}, false, nil
	}

	label, _, _ := strings.Cut(t.host, ".")
	owner, space, found := strings.Cut(label, "-")
	if !found {
		return ParsedLink{}, false, invalidLink(t.input, "space subdomain %q has no owner prefix", label)
	}
	if owner == "" || space == "" {
		return ParsedLink{}, false, invalidLink(t.input, "space subdomain %q is malformed", label)
	}

	return ParsedLink{Kind: KindSpace, Username: owner, ResourceName: space}, true, nil
}

func spacesPathRule(t linkTarget) (ParsedLink, bool, error) {
	return collectionPathRule(t, "/spaces/", KindSpace)
}

func datasetsPathRule(t linkTarget) (ParsedLink, bool, error) {
	return collectionPathRule(t, "/datasets/", KindDataset)
}

// collectionPathRule matches /{marker}/{owner}/{name}[/...] anywhere in the path.
// Only the text between the first and second occurrence of marker is considered.
func collectionPathRule(t linkTarget, marker string, kind Kind) (ParsedLink, bool, error) {
	if !strings.Contains(t.path, marker) {
		return ParsedLink{}, false, nil
	}

	rest := strings.Split(t.path, marker)[1]
	parts := splitSegments(rest)
	if len(parts) < 2 {
		return ParsedLink{}, false, nil
	}

	return ParsedLink{Kind: kind, Username: parts[0], ResourceName: parts[1]}, true, nil
}

func emptyPathRule(t linkTarget) (ParsedLink, bool, error) {
	if len(t.segments) == 0 {
		return ParsedLink{}, false, invalidLink(t.input, "no identity in URL")
	}
	return ParsedLink{}, false, nil
}

// ownerResourceRule handles /{owner}/{name}[/tree|blob|resolve|discussions|settings/...].
// Repositories reached this way are models; /{owner}/models and friends are listing pages.
func ownerResourceRule(t linkTarget) (ParsedLink, bool, error) {
	if len(t.segments) < 2 {
		return ParsedLink{}, false, nil
	}

	owner, second := t.segments[0], t.segments[1]
	if collectionPages[second] {
		return ParsedLink{Kind: KindProfile, Username: owner}, true, nil
	}

	return ParsedLink{Kind: KindModel, Username: owner, ResourceName: second}, true, nil
}

func ownerRule(t linkTarget) (ParsedLink, bool, error) {
	if len(t.segments) == 0 {
		return ParsedLink{}, false, nil
	}
	return ParsedLink{Kind: KindProfile, Username: t.segments[0]}, true, nil
}

// splitSegments splits a path by "/" and returns non-empty parts
func splitSegments(path string) []string {
	raw := strings.Split(path, "/")
	segments := make([]string, 0, len(raw))
	for _, part := range raw {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
