package item

import (
	"net/http"

	"item-monitor/internal/handler/http/respond"
	itemUC "item-monitor/internal/usecase/item"
)

type ListHandler struct{ Svc *itemUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, 0, len(items))
	for _, it := range items {
		out = append(out, toDTO(it))
	}

	respond.JSON(w, http.StatusOK, out)
}
