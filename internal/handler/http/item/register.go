package item

import (
	"net/http"

	itemUC "item-monitor/internal/usecase/item"
)

// Middleware wraps a handler, e.g. with write rate limiting.
type Middleware func(http.Handler) http.Handler

// Register registers all item-related HTTP handlers with the given mux.
// Write routes (create, update, delete) pass through the supplied write
// middleware; a nil middleware registers them unwrapped.
func Register(mux *http.ServeMux, svc *itemUC.Service, write Middleware) {
	if write == nil {
		write = func(next http.Handler) http.Handler { return next }
	}

	mux.Handle("GET    /data", ListHandler{svc})
	mux.Handle("GET    /data/", GetHandler{svc})

	mux.Handle("POST   /data", write(CreateHandler{svc}))
	mux.Handle("PUT    /data/", write(UpdateHandler{svc}))
	mux.Handle("DELETE /data/", write(DeleteHandler{svc}))
}
