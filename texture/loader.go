package texture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultURL is the equirectangular earth map wrapped onto the globe.
	DefaultURL = "https://upload.wikimedia.org/wikipedia/commons/8/83/Equirectangular_projection_SW.jpg"
	// FallbackColor paints the globe when no texture is available.
	FallbackColor = "#2266cc"

	maxTextureBytes = 32 << 20
)

// Texture is a fetched and decoded surface image.
type Texture struct {
	URL         string
	ContentType string
	Width       int
	Height      int
	Data        []byte
}

// Outcome labels for fetch results.
const (
	OutcomeLoaded   = "loaded"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
	OutcomeCanceled = "canceled"
)

// Loader fetches the surface texture. Each call is a single attempt.
type Loader struct {
	url      string
	maxBytes int64
	client   *http.Client
	breaker  *Breaker
	logger   *zap.Logger
	observe  func(outcome string)
}

func NewLoader(url string, timeout time.Duration, breaker *Breaker, logger *zap.Logger) *Loader {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		url:      url,
		maxBytes: maxTextureBytes,
		client:   &http.Client{Timeout: timeout},
		breaker:  breaker,
		logger:   logger,
	}
}

// SetObserver installs a callback that receives the outcome of every attempt.
func (l *Loader) SetObserver(fn func(outcome string)) {
	l.observe = fn
}

// URL returns the texture source.
func (l *Loader) URL() string {
	return l.url
}

// Fetch downloads and decodes the texture once. No retry is attempted.
func (l *Loader) Fetch(ctx context.Context) (*Texture, error) {
	fetch := func() (*Texture, error) { return l.fetch(ctx) }

	var (
		tex *Texture
		err error
	)
	if l.breaker != nil {
		tex, err = l.breaker.Execute(fetch)
	} else {
		tex, err = fetch()
	}

	switch {
	case err == nil:
		l.report(OutcomeLoaded)
	case errors.Is(err, ErrCircuitOpen):
		l.report(OutcomeSkipped)
	case ctx.Err() != nil:
		l.report(OutcomeCanceled)
	default:
		l.report(OutcomeFailed)
	}
	return tex, err
}

func (l *Loader) fetch(ctx context.Context) (*Texture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build texture request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch texture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture fetch returned status %d", resp.StatusCode)
	}

	if resp.ContentLength > l.maxBytes {
		return nil, fmt.Errorf("texture is %d bytes, limit is %d", resp.ContentLength, l.maxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read texture body: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("texture exceeds %d bytes", l.maxBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/" + format
	}

	return &Texture{
		URL:         l.url,
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Data:        data,
	}, nil
}

func (l *Loader) report(outcome string) {
	if l.observe != nil {
		l.observe(outcome)
	}
}
