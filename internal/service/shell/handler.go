package shell

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/oshokin/analog-timer/internal/logger"
)

var errBadUpstream = errors.New("upstream must be an absolute http(s) URL")

// Handler answers GET and HEAD requests from the active cached version and
// forwards everything else to the upstream.
type Handler struct {
	// cache resolves request paths to installed files.
	cache *Cache
	// upstream receives cache misses; nil answers them with 404.
	upstream http.Handler
}

// NewHandler creates a cache-first handler. An empty upstream disables forwarding.
func NewHandler(cache *Cache, upstream string) (*Handler, error) {
	h := &Handler{cache: cache}

	if upstream == "" {
		return h, nil
	}

	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("parse upstream: %w", err)
	}

	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("%q: %w", upstream, errBadUpstream)
	}

	h.upstream = httputil.NewSingleHostReverseProxy(target)

	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		if h.serveCached(w, r) {
			return
		}
	}

	if h.upstream != nil {
		h.upstream.ServeHTTP(w, r)

		return
	}

	http.NotFound(w, r)
}

// serveCached writes the cached file for the request path and reports whether it did.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request) bool {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = IndexFile
	}

	filePath, ok := h.cache.Lookup(name)
	if !ok {
		return false
	}

	file, err := os.Open(filePath) //nolint:gosec // Path comes from the active manifest.
	if err != nil {
		logger.WarnKV(r.Context(), "Cached asset unreadable", "file", name, "error", err)

		return false
	}

	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return false
	}

	http.ServeContent(w, r, name, info.ModTime(), file)

	return true
}

// NewRouter mounts the API under /api/ and the shell handler everywhere else.
func NewRouter(handler http.Handler, api *API) *http.ServeMux {
	mux := http.NewServeMux()
	api.Register(mux)
	mux.Handle("/", handler)

	return mux
}
