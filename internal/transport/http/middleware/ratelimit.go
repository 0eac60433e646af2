package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"recognition/internal/transport/http/api"
	"recognition/internal/transport/http/shared"
)

type RateLimitKeyFunc func(r *http.Request) string

// windowCounter counts hits per key inside fixed windows.
type windowCounter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	key     RateLimitKeyFunc
	windows map[string]*window
}

type window struct {
	hits    int
	resetAt time.Time
}

type windowHit struct {
	key       string
	hits      int
	remaining int
	resetIn   time.Duration
}

func (h windowHit) exceeded(limit int) bool {
	return h.hits > limit
}

const maxTrackedKeys = 10000

func newWindowCounter(limit int, span time.Duration, key RateLimitKeyFunc) *windowCounter {
	if key == nil {
		key = actorOrIPKey
	}
	return &windowCounter{limit: limit, window: span, key: key, windows: make(map[string]*window)}
}

func (c *windowCounter) hit(key string, now time.Time) windowHit {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.windows) >= maxTrackedKeys {
		for k, w := range c.windows {
			if now.After(w.resetAt) {
				delete(c.windows, k)
			}
		}
	}
	w := c.windows[key]
	if w == nil || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(c.window)}
		c.windows[key] = w
	}
	w.hits++
	return windowHit{
		key:       key,
		hits:      w.hits,
		remaining: max(c.limit-w.hits, 0),
		resetIn:   w.resetAt.Sub(now),
	}
}

// allow records the request and writes the quota headers. It answers 429 and
// returns false once the key is over its limit.
func (c *windowCounter) allow(w http.ResponseWriter, r *http.Request) bool {
	if c.limit <= 0 {
		return true
	}
	key := c.key(r)
	if key == "" {
		key = clientIPKey(r)
	}
	h := c.hit(key, time.Now())
	resetSec := ceilSeconds(h.resetIn)

	header := w.Header()
	header.Set("X-RateLimit-Limit", strconv.Itoa(c.limit))
	header.Set("X-RateLimit-Remaining", strconv.Itoa(h.remaining))
	header.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))
	if !h.exceeded(c.limit) {
		return true
	}

	header.Set("Retry-After", strconv.Itoa(max(resetSec, 1)))
	slog.Warn("rate limit exceeded",
		"key", h.key,
		"method", r.Method,
		"path", r.URL.Path,
		"limit", c.limit,
		"window", c.window.String(),
	)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// RateLimit applies a fixed window per signed-in user, or per client IP for
// anonymous requests.
func RateLimit(limit int, span time.Duration) func(http.Handler) http.Handler {
	counter := newWindowCounter(limit, span, actorOrIPKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if counter.allow(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// SensitiveMutationRateLimit adds tighter windows on top of RateLimit: auth
// attempts get a quarter of the base limit, counted both per IP and per
// username; destructive or review-producing mutations get half, per actor.
func SensitiveMutationRateLimit(baseLimit int, span time.Duration) func(http.Handler) http.Handler {
	authLimit := max(baseLimit/4, 1)
	counters := map[sensitiveScope][]*windowCounter{
		sensitiveScopeAuth: {
			newWindowCounter(authLimit, span, clientIPKey),
			newWindowCounter(authLimit, span, AuthFieldOrIPKey("username")),
		},
		sensitiveScopeActor: {
			newWindowCounter(max(baseLimit/2, 1), span, actorOrIPKey),
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, counter := range counters[sensitiveRateScope(r)] {
				if !counter.allow(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthFieldOrIPKey keys auth attempts by the account named in the JSON body,
// falling back to the client IP.
func AuthFieldOrIPKey(field string) RateLimitKeyFunc {
	field = strings.TrimSpace(field)
	if field == "" {
		field = "username"
	}
	return func(r *http.Request) string {
		if value := peekJSONString(r, field); value != "" {
			return field + ":" + strings.ToLower(value)
		}
		return clientIPKey(r)
	}
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.UserID
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	return shared.ClientIP(r)
}

const peekLimit = 64 << 10

// peekJSONString reads one string field from a JSON body and restores the
// body so the handler can decode it again.
func peekJSONString(r *http.Request, field string) string {
	if r == nil || r.Body == nil {
		return ""
	}
	if !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, peekLimit))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return ""
	}
	var value string
	if json.Unmarshal(fields[field], &value) != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

type sensitiveScope string

const (
	sensitiveScopeNone  sensitiveScope = ""
	sensitiveScopeAuth  sensitiveScope = "auth"
	sensitiveScopeActor sensitiveScope = "actor"
)

type sensitiveRoute struct {
	method string
	prefix string
	suffix string
	scope  sensitiveScope
}

var sensitiveRoutes = []sensitiveRoute{
	{method: http.MethodPost, prefix: "/auth/login", scope: sensitiveScopeAuth},
	{method: http.MethodPost, prefix: "/auth/signup", scope: sensitiveScopeAuth},
	{method: http.MethodDelete, prefix: "/goals/", scope: sensitiveScopeActor},
	{method: http.MethodDelete, prefix: "/reviews/", scope: sensitiveScopeActor},
	{method: http.MethodPost, prefix: "/department/employees/", suffix: "/reviews", scope: sensitiveScopeActor},
	{method: http.MethodPost, prefix: "/goals/", suffix: "/journal", scope: sensitiveScopeActor},
}

func (s sensitiveRoute) matches(method, path string) bool {
	if method != s.method || !strings.HasPrefix(path, s.prefix) {
		return false
	}
	if s.suffix == "" {
		// exact match for auth endpoints, prefix match for item paths
		return strings.HasSuffix(s.prefix, "/") || path == s.prefix
	}
	return strings.HasSuffix(path, s.suffix)
}

func sensitiveRateScope(r *http.Request) sensitiveScope {
	if r == nil {
		return sensitiveScopeNone
	}
	method := strings.ToUpper(r.Method)
	path := apiRelativePath(r.URL.Path)
	for _, route := range sensitiveRoutes {
		if route.matches(method, path) {
			return route.scope
		}
	}
	return sensitiveScopeNone
}

func apiRelativePath(path string) string {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/api/v1")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
