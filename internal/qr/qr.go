// Package qr renders QR codes for profile URLs.
package qr

import (
	"fmt"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 300
	MinSize     = 128
	MaxSize     = 1024
)

// ClampSize maps a requested edge length into [MinSize, MaxSize].
// Zero or negative means DefaultSize.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// PNG renders content as a square PNG of ClampSize(size) pixels in the
// theme's QR colours. A nil theme renders black on white.
func PNG(content string, size int, theme *domain.Theme) ([]byte, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("QR code error: %w", err)
	}

	fg, bg := domain.DefaultForeground, domain.DefaultBackground
	if theme != nil {
		fg, bg = theme.Foreground, theme.Background
	}
	if q.ForegroundColor, err = domain.ParseHexColor(fg); err != nil {
		return nil, err
	}
	if q.BackgroundColor, err = domain.ParseHexColor(bg); err != nil {
		return nil, err
	}

	return q.PNG(ClampSize(size))
}

// Terminal renders content with half-block characters for a terminal.
func Terminal(content string, inverse bool) (string, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("QR code error: %w", err)
	}
	return q.ToSmallString(inverse), nil
}
