package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/AnshuShetty/HotelManagementBackend/internal/bookings/service"
	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	httputil "github.com/AnshuShetty/HotelManagementBackend/pkg/http"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.BookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Book(r.Context(), &input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := h.pagination(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, int64(offset))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := h.pagination(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MyBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.MyBookings(r.Context(), limit, int64(offset))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MyBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "MyBookings", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Cancel(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) AttachReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var input model.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AttachReview", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	review, err := h.service.AttachReview(r.Context(), id, &input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AttachReview", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "AttachReview", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) CountForRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("id")

	count, err := h.service.CountConfirmedForRoom(r.Context(), roomID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CountForRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"room_id": roomID, "confirmed_bookings": count}); err != nil {
		h.log.Error("failed to write success response", "handler", "CountForRoom", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) pagination(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr))
		}
	}

	offset := 0
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr))
		}
	}

	return limit, offset, nil
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Book)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/me", h.MyBookings)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
	router.POST("/api/v1/bookings/id/:id/review", h.AttachReview)
	router.GET("/api/v1/bookings/room/:id/count", h.CountForRoom)
}
