package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	Health     http.HandlerFunc
	Facets     http.HandlerFunc
	Filter     http.HandlerFunc
	Connectors http.HandlerFunc
	Inject     http.HandlerFunc
	MapSocket  http.HandlerFunc
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Facets != nil {
		mux.Handle("/facets", method(http.MethodGet, routes.Facets))
	}
	if routes.Filter != nil {
		mux.Handle("/filter", method(http.MethodPost, routes.Filter))
	}
	if routes.Connectors != nil {
		mux.Handle("/connectors", method(http.MethodGet, routes.Connectors))
	}
	if routes.Inject != nil {
		mux.Handle("/inject", method(http.MethodPost, routes.Inject))
	}
	if routes.MapSocket != nil {
		mux.Handle("/ws", method(http.MethodGet, routes.MapSocket))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
