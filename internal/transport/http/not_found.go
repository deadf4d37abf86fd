package http

import (
	"fmt"
	"net/http"
)

// NotFoundHandler answers requests no route matched, including known paths
// called with an unsupported method.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
}
