package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/AnshuShetty/HotelManagementBackend/internal/contact/service"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	httputil "github.com/AnshuShetty/HotelManagementBackend/pkg/http"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

func NewContactHandler(service service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var message model.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Submit(r.Context(), &message); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, message); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

func (h *ContactHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	offset := 0
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	messages, total, err := h.service.GetAll(r.Context(), limit, int64(offset))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, messages, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ContactHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/contact", h.Submit)
	router.GET("/api/v1/contact", h.GetAll)
}
