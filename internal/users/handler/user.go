package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AnshuShetty/HotelManagementBackend/internal/users/service"
	httputil "github.com/AnshuShetty/HotelManagementBackend/pkg/http"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	payload, err := h.service.Register(r.Context(), &input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, payload); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	payload, err := h.service.Login(r.Context(), &input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, payload); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.service.Me(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Me", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/register", h.Register)
	router.POST("/api/v1/auth/login", h.Login)
	router.GET("/api/v1/users/me", h.Me)
}
