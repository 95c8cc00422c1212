package item

import (
	"encoding/json"
	"errors"
	"net/http"

	"item-monitor/internal/domain/entity"
	"item-monitor/internal/handler/http/pathutil"
	"item-monitor/internal/handler/http/respond"
	itemUC "item-monitor/internal/usecase/item"
)

type UpdateHandler struct{ Svc *itemUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/data/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	it, err := h.Svc.Update(r.Context(), itemUC.UpdateInput{ID: id, Name: req.Name})
	if err != nil {
		code := http.StatusInternalServerError
		var verr *entity.ValidationError
		switch {
		case errors.Is(err, itemUC.ErrInvalidItemID):
			code = http.StatusBadRequest
		case errors.Is(err, itemUC.ErrItemNotFound):
			code = http.StatusNotFound
		case errors.As(err, &verr):
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(it))
}
