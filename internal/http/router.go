package httpserver

import "net/http"

// Routes defines HTTP endpoints.
type Routes struct {
	History http.Handler
	Status  http.Handler
	Health  http.Handler
	Stream  http.HandlerFunc
}

// NewRouter sets up HTTP routing.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.History != nil {
		mux.Handle("/api/history", method(http.MethodGet, routes.History.ServeHTTP))
	}
	if routes.Status != nil {
		mux.Handle("/api/status", method(http.MethodGet, routes.Status.ServeHTTP))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health.ServeHTTP))
	}
	if routes.Stream != nil {
		mux.Handle("/ws/data", method(http.MethodGet, routes.Stream))
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
