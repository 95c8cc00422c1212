package item

import (
	"errors"
	"net/http"

	"item-monitor/internal/handler/http/pathutil"
	"item-monitor/internal/handler/http/respond"
	itemUC "item-monitor/internal/usecase/item"
)

type DeleteHandler struct{ Svc *itemUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/data/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, itemUC.ErrInvalidItemID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, itemUC.ErrItemNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
