package item

import (
	"errors"
	"net/http"

	"item-monitor/internal/handler/http/pathutil"
	"item-monitor/internal/handler/http/respond"
	itemUC "item-monitor/internal/usecase/item"
)

type GetHandler struct{ Svc *itemUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/data/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	it, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, itemUC.ErrInvalidItemID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, itemUC.ErrItemNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(it))
}
