package item

import (
	"encoding/json"
	"errors"
	"net/http"

	"item-monitor/internal/domain/entity"
	"item-monitor/internal/handler/http/respond"
	itemUC "item-monitor/internal/usecase/item"
)

type CreateHandler struct{ Svc *itemUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	it, err := h.Svc.Create(r.Context(), itemUC.CreateInput{Name: req.Name})
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(it))
}
