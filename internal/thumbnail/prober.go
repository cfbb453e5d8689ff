package thumbnail

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// ErrExhausted is returned when every quality in the cascade failed.
var ErrExhausted = errors.New("no thumbnail available at any quality")

// Prober reports whether an image URL serves a real image. Implementations
// must be safe for concurrent use.
type Prober interface {
	Probe(ctx context.Context, url string) bool
}

// HTTPProber probes image URLs over HTTP.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates an HTTPProber with the given per-request timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		client: &http.Client{Timeout: timeout},
	}
}

// Probe checks the URL with a HEAD request, falling back to GET for servers
// that reject HEAD. Only a 2xx answer counts as success; the image host
// answers 404 for quality variants that were never generated.
func (p *HTTPProber) Probe(ctx context.Context, url string) bool {
	ok, err := p.request(ctx, http.MethodHead, url)
	if err != nil {
		ok, err = p.request(ctx, http.MethodGet, url)
		if err != nil {
			return false
		}
	}
	return ok
}

func (p *HTTPProber) request(ctx context.Context, method, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// Resolve drives a fresh cascade for the video id until one quality loads or
// all are exhausted, probing strictly in cascade order.
func Resolve(ctx context.Context, prober Prober, id string) (string, error) {
	cascade := NewCascade(id)

	for {
		url, ok := cascade.Candidate()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		cascade.Report(prober.Probe(ctx, url))
	}

	if cascade.State() == Resolved {
		return cascade.ResolvedURL(), nil
	}
	return "", ErrExhausted
}

// ResolveAll resolves thumbnails for several video ids concurrently with a
// bounded worker pool. The result maps each id to its resolved URL; ids
// whose cascade exhausted are absent from the map.
func ResolveAll(ctx context.Context, prober Prober, ids []string, concurrency int) map[string]string {
	if len(ids) == 0 {
		return map[string]string{}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]string, len(ids))
	jobs := make(chan int, len(ids))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				url, err := Resolve(ctx, prober, ids[idx])
				if err == nil {
					results[idx] = url
				}
			}
		}()
	}

	for i := range ids {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	resolved := make(map[string]string)
	for i, url := range results {
		if url != "" {
			resolved[ids[i]] = url
		}
	}
	return resolved
}
