package huggingface

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/utils"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxPageBytes bounds how much of a profile page is read.
const maxPageBytes = 4 << 20

// ErrProfileUnavailable is returned when the profile page can't be fetched.
var ErrProfileUnavailable = errors.New("profile page unavailable")

var cdnAvatarPattern = regexp.MustCompile(`https://cdn-avatars\.huggingface\.co/[^"'\s&<>]+?\.(?:png|jpg|jpeg|webp)`)

// PageData is what a profile page tells about its owner.
type PageData struct {
	FullName  string
	AvatarURL string
}

// FetchProfile downloads the profile page of username and extracts its
// display data. Missing fields fall back to the username and the default avatar.
func (c *Client) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrProfileUnavailable)
	}

	pageURL := c.baseURL + "/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.pages.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
	}
	defer utils.DrainClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrProfileUnavailable, pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read profile page: %w", err)
	}

	data, err := ExtractPageData(body)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Username:   username,
		ProfileURL: domain.ProfileURLFor(username),
		Type:       domain.ProfileType,
		FullName:   data.FullName,
		AvatarURL:  data.AvatarURL,
		ResolvedAt: time.Now().UTC(),
	}
	if profile.FullName == "" {
		profile.FullName = username
	}
	if profile.AvatarURL == "" {
		profile.AvatarURL = domain.DefaultAvatarURL
	}
	return profile, nil
}

// ExtractPageData pulls the avatar and the display name out of a profile page.
// Empty fields mean nothing usable was found.
func ExtractPageData(body []byte) (PageData, error) {
	var data PageData

	if m := cdnAvatarPattern.Find(body); m != nil {
		data.AvatarURL = CleanURL(string(m))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return data, fmt.Errorf("parse html: %w", err)
	}

	if data.AvatarURL == "" {
		if og, ok := doc.Find("meta[property='og:image']").Attr("content"); ok {
			data.AvatarURL = strings.TrimSpace(og)
		}
	}

	// The display name is the first heading holding nothing but text.
	doc.Find("h1").EachWithBreak(func(_ int, h1 *goquery.Selection) bool {
		if !textOnly(h1) {
			return true
		}
		data.FullName = strings.Join(strings.Fields(h1.Text()), " ")
		return false
	})

	return data, nil
}

func textOnly(s *goquery.Selection) bool {
	nodes := s.Contents().Nodes
	if len(nodes) == 0 {
		return false
	}
	for _, n := range nodes {
		if n.Type != html.TextNode {
			return false
		}
	}
	return true
}

// CleanURL cuts a URL scraped from HTML at the first entity or quote.
func CleanURL(raw string) string {
	for _, sep := range []string{"&quot", "&#", `"`, "'"} {
		raw, _, _ = strings.Cut(raw, sep)
	}
	return strings.TrimSpace(raw)
}
