// Package imageload resolves the natural pixel width of images referenced by
// URL. Only the image header is decoded. Widths are cached, so a repeated
// lookup resolves synchronously.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheSize is the number of widths kept in memory.
	DefaultCacheSize = 128

	// DefaultFetchTimeout bounds an HTTP fetch when no client is given.
	DefaultFetchTimeout = 30 * time.Second
)

var (
	// ErrUnsupportedScheme is returned for URLs that are neither http(s) nor local paths.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	// ErrUnexpectedStatus is returned when an HTTP fetch does not answer 200.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// Options configures a Loader.
type Options struct {
	// CacheSize bounds the width cache. Default: DefaultCacheSize.
	CacheSize int

	// HTTPClient fetches http and https URLs. Its Timeout bounds fetches
	// that outlive every caller. Default: a client with DefaultFetchTimeout.
	HTTPClient *http.Client

	// Fs serves file URLs and bare paths. Default: the OS filesystem.
	Fs afero.Fs

	Logger *slog.Logger
}

// Loader fetches and caches image widths.
type Loader struct {
	client *http.Client
	fs     afero.Fs
	cache  *lru.Cache[string, int]
	group  singleflight.Group
	log    *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts Options) (*Loader, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	cache, err := lru.New[string, int](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create width cache: %w", err)
	}

	return &Loader{
		client: opts.HTTPClient,
		fs:     opts.Fs,
		cache:  cache,
		log:    opts.Logger.With("component", "imageload"),
	}, nil
}

// Cached returns the width of rawURL if it has already been resolved.
func (l *Loader) Cached(rawURL string) (int, bool) {
	return l.cache.Get(rawURL)
}

// Width resolves the natural width of the image at rawURL. Concurrent calls
// for the same URL share one fetch. The shared fetch is detached from ctx:
// a caller that gives up returns ctx.Err() while the fetch completes and
// fills the cache for the remaining callers.
func (l *Loader) Width(ctx context.Context, rawURL string) (int, error) {
	if w, ok := l.cache.Get(rawURL); ok {
		return w, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(rawURL, func() (any, error) {
		w, err := l.fetchWidth(fetchCtx, rawURL)
		if err != nil {
			return 0, err
		}
		l.cache.Add(rawURL, w)
		return w, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Load resolves the width of rawURL and hands the result to fn. When the
// width is cached, fn runs before Load returns; otherwise it runs on another
// goroutine. fn is not called after the returned Subscription is cancelled.
func (l *Loader) Load(ctx context.Context, rawURL string, fn func(width int, err error)) *Subscription {
	if w, ok := l.cache.Get(rawURL); ok {
		fn(w, nil)
		return resolvedSubscription()
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		defer cancel()

		w, err := l.Width(ctx, rawURL)
		if err != nil {
			l.log.DebugContext(ctx, "image width unavailable", "url", rawURL, "error", err)
		}

		sub.mu.Lock()
		defer sub.mu.Unlock()
		if sub.cancelled.Load() {
			return
		}
		fn(w, err)
	}()

	return sub
}

func (l *Loader) fetchWidth(ctx context.Context, rawURL string) (int, error) {
	rc, err := l.open(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()

	cfg, format, err := image.DecodeConfig(rc)
	if err != nil {
		return 0, fmt.Errorf("decode image header %s: %w", rawURL, err)
	}

	l.log.DebugContext(ctx, "image width resolved", "url", rawURL, "format", format, "width", cfg.Width)
	return cfg.Width, nil
}

func (l *Loader) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse image url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, rawURL, resp.StatusCode)
		}
		return resp.Body, nil
	case "file":
		return l.openFile(u.Path)
	case "":
		return l.openFile(rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (l *Loader) openFile(path string) (io.ReadCloser, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	return f, nil
}

// Subscription is a handle on a pending Load.
type Subscription struct {
	cancel    context.CancelFunc
	done      chan struct{}
	mu        sync.Mutex
	cancelled atomic.Bool
}

func resolvedSubscription() *Subscription {
	done := make(chan struct{})
	close(done)
	return &Subscription{cancel: func() {}, done: done}
}

// Cancel aborts the fetch. Once Cancel returns, the callback either already
// ran or never will.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	s.cancelled.Store(true)
	s.mu.Unlock()
	s.cancel()
}

// Cancelled reports whether Cancel was called.
func (s *Subscription) Cancelled() bool {
	return s.cancelled.Load()
}

// Done is closed once the load finished, successfully or not.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the load finished.
func (s *Subscription) Wait() {
	<-s.done
}
