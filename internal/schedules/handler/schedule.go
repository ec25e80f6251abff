package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cinebook/internal/schedules/service"
	httputil "cinebook/pkg/http"
	"cinebook/pkg/logger"
	"cinebook/pkg/model"
)

type ScheduleHandler struct {
	service service.ScheduleService
	log     *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

func (h *ScheduleHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	screenings, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, screenings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *ScheduleHandler) GetByMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	screenings, err := h.service.GetByMovie(r.Context(), ps.ByName("movieid"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByMovie", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, screenings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByMovie", "error", err)
	}
}

func (h *ScheduleHandler) GetByMovieAndDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	screening, err := h.service.GetByMovieAndDate(r.Context(), ps.ByName("movieid"), ps.ByName("date"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByMovieAndDate", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, screening); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByMovieAndDate", "error", err)
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var screening model.Screening
	if err := json.NewDecoder(r.Body).Decode(&screening); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &screening); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, screening); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("movieid"), ps.ByName("date")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Screening deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "error", err)
	}
}

func (h *ScheduleHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/schedule", h.GetAll)
	router.GET("/schedule/:movieid", h.GetByMovie)
	router.GET("/schedule/:movieid/:date", h.GetByMovieAndDate)
	router.POST("/schedule", h.Create)
	router.DELETE("/schedule/:movieid/:date", h.Delete)
}
