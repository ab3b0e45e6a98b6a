package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAMiddleware serves a built single page application from staticPath for
// every path that is not an API, health or metrics route. Unknown paths get
// index.html so client-side routing works. An empty staticPath disables it.
func SPAMiddleware(next http.Handler, staticPath string) http.Handler {
	if staticPath == "" {
		return next
	}
	indexPath := filepath.Join(staticPath, "index.html")
	files := http.FileServer(http.Dir(staticPath))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") ||
			r.URL.Path == "/healthz" ||
			r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		if r.URL.Path == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}

		// Clean before joining so ".." cannot leave staticPath
		path := filepath.Join(staticPath, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, indexPath)
			return
		}

		files.ServeHTTP(w, r)
	})
}
