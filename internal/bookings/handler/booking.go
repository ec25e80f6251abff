package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cinebook/internal/bookings/service"
	httputil "cinebook/pkg/http"
	"cinebook/pkg/logger"
	"cinebook/pkg/model"
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

type CreateBookingResponse struct {
	Message string               `json:"message"`
	Booking model.BookingRequest `json:"booking"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, CreateBookingResponse{
		Message: "Booking created successfully",
		Booking: req,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// ListAll is the admin view of every aggregate; the requesting user comes in
// as a query parameter and is authorized by the service.
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID := r.URL.Query().Get("userid")

	aggregates, err := h.service.ListAll(r.Context(), requestingUserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, aggregates); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "error", err)
	}
}

func (h *BookingHandler) GetByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	aggregate, err := h.service.GetByUser(r.Context(), ps.ByName("userid"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByUser", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, aggregate); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByUser", "error", err)
	}
}

func (h *BookingHandler) GetDetailedByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	detailed, err := h.service.GetDetailedByUser(r.Context(), ps.ByName("userid"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetDetailedByUser", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, detailed); err != nil {
		h.log.Error("failed to write success response", "handler", "GetDetailedByUser", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")
	movieID := ps.ByName("movieid")
	date := ps.ByName("date")

	if err := h.service.DeleteBooking(r.Context(), userID, movieID, date); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Booking deleted successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "error", err)
	}
}

func (h *BookingHandler) DeleteAll(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	if err := h.service.DeleteAllByUser(r.Context(), userID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "All bookings deleted for user "+userID); err != nil {
		h.log.Error("failed to write message response", "handler", "DeleteAll", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings", h.ListAll)
	router.GET("/bookings/:userid", h.GetByUser)
	router.GET("/bookings/:userid/detailed", h.GetDetailedByUser)
	router.DELETE("/bookings/:userid", h.DeleteAll)
	router.DELETE("/bookings/:userid/:movieid/:date", h.Delete)
}
