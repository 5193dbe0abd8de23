// Package links resolves redirecting article URLs and shortens them. Every
// failure falls back to the input URL.
package links

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/deusflow/clipping/internal/cache"
	"github.com/deusflow/clipping/internal/logger"
)

const userAgent = "Mozilla/5.0 (compatible; clipping/1.0)"

// Resolver follows redirects to the final article URL.
type Resolver struct {
	client *resty.Client
	memo   *cache.Memo
}

func NewResolver(timeout time.Duration) *Resolver {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &Resolver{client: client, memo: cache.New()}
}

// Resolve returns the URL reached after redirects, or link itself on any
// network error or non-success status.
func (r *Resolver) Resolve(ctx context.Context, link string) string {
	if !isHTTP(link) {
		return link
	}
	return r.memo.Do(link, func(link string) string {
		resp, err := r.client.R().SetContext(ctx).Get(link)
		if err != nil {
			logger.Warn("link resolve failed", "url", link, "err", err)
			return link
		}
		if !resp.IsSuccess() || resp.RawResponse == nil || resp.RawResponse.Request == nil {
			logger.Warn("link resolve failed", "url", link, "status", resp.StatusCode())
			return link
		}
		return resp.RawResponse.Request.URL.String()
	})
}

// Shortener calls a TinyURL-style endpoint: GET <endpoint>?url=<link>
// answering the short URL as plain text.
type Shortener struct {
	client   *resty.Client
	endpoint string
	memo     *cache.Memo
}

func NewShortener(endpoint string, timeout time.Duration) *Shortener {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &Shortener{client: client, endpoint: endpoint, memo: cache.New()}
}

// Shorten returns the short URL, or link itself on any failure.
func (s *Shortener) Shorten(ctx context.Context, link string) string {
	if !isHTTP(link) {
		return link
	}
	return s.memo.Do(link, func(link string) string {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParam("url", link).
			Get(s.endpoint)
		if err != nil {
			logger.Warn("link shorten failed", "url", link, "err", err)
			return link
		}
		short := strings.TrimSpace(resp.String())
		if resp.StatusCode() != http.StatusOK || !isHTTP(short) {
			logger.Warn("link shorten failed", "url", link, "status", resp.StatusCode())
			return link
		}
		return short
	})
}

func isHTTP(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}
