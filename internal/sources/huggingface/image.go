package huggingface

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/hfqr/internal/utils"
)

// DefaultImageContentType is reported when the upstream sends none.
const DefaultImageContentType = "image/png"

var (
	ErrImageURLRequired = errors.New("image URL is required")
	ErrInvalidImageURL  = errors.New("invalid image URL format")
	ErrImageHostBlocked = errors.New("image host not allowed")
	// ErrImageNotFound is returned when the upstream answers 403 or 404.
	ErrImageNotFound = errors.New("image not found upstream")
)

var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(?:png|jpg|jpeg|gif|webp|svg)$`)

// UpstreamError is a non-2xx answer from an image host.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d %s", e.Status, http.StatusText(e.Status))
}

// Image is a relayed upstream image. Body must be closed by the caller.
type Image struct {
	Body        io.ReadCloser
	ContentType string
}

type limitedBody struct {
	io.Reader
	io.Closer
}

// ValidateImageURL cleans raw and checks it names a direct image on an
// allowed host.
func (c *Client) ValidateImageURL(raw string) (*url.URL, error) {
	cleaned := CleanURL(raw)
	if !imageURLPattern.MatchString(cleaned) {
		return nil, ErrInvalidImageURL
	}

	u, err := url.Parse(cleaned)
	if err != nil || u.Host == "" {
		return nil, ErrInvalidImageURL
	}

	if !c.imageHosts.IsEmpty() && !c.imageHosts.Allow(u.Host) {
		return nil, fmt.Errorf("%w: %s", ErrImageHostBlocked, u.Hostname())
	}
	return u, nil
}

// FetchImage validates raw and opens the upstream image.
// The returned body yields at most the configured byte cap.
func (c *Client) FetchImage(ctx context.Context, raw string) (*Image, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrImageURLRequired
	}

	u, err := c.ValidateImageURL(raw)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := c.images.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound:
		utils.DrainClose(resp.Body)
		return nil, ErrImageNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		utils.DrainClose(resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultImageContentType
	}

	return &Image{
		Body:        limitedBody{Reader: io.LimitReader(resp.Body, c.maxImageBytes), Closer: resp.Body},
		ContentType: contentType,
	}, nil
}
