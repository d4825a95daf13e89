package api

import (
	"net/http"
	"strconv"

	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// parsePage reads page/limit query parameters, falling back to defaults for
// missing or malformed values. Bounds are clamped by Page.Normalize.
func parsePage(r *http.Request) store.Page {
	page := store.DefaultPage()
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Number = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Limit = n
		}
	}
	page.Normalize()
	return page
}

// intQuery reads an integer query parameter, or def when absent or malformed.
func intQuery(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// flagQuery reports whether a boolean query parameter is set to "1". Any
// other value, including absence, reads as false.
func flagQuery(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "1"
}
