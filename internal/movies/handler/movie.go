package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"cinebook/internal/movies/service"
	apperrors "cinebook/pkg/errors"
	httputil "cinebook/pkg/http"
	"cinebook/pkg/logger"
	"cinebook/pkg/model"
)

type MovieHandler struct {
	service service.MovieService
	log     *logger.Logger
}

func NewMovieHandler(service service.MovieService, log *logger.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log,
	}
}

func (h *MovieHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	movies, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, movies); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *MovieHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movie, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, movie); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *MovieHandler) GetByTitle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	movie, err := h.service.GetByTitle(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByTitle", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, movie); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByTitle", "error", err)
	}
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var movie model.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	// The path id is authoritative, whatever the body says.
	movie.ID = ps.ByName("id")

	if err := h.service.Create(r.Context(), &movie); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, movie); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *MovieHandler) UpdateRating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rating, err := strconv.ParseFloat(ps.ByName("rate"), 64)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("rate must be a number")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateRating", "error", writeErr)
		}
		return
	}

	movie, err := h.service.UpdateRating(r.Context(), ps.ByName("id"), rating)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateRating", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, movie); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateRating", "error", err)
	}
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	movie, err := h.service.Delete(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, movie); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *MovieHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/movies", h.GetAll)
	router.GET("/movies/:id", h.GetByID)
	router.GET("/moviesbytitle", h.GetByTitle)
	router.POST("/movies/:id", h.Create)
	router.PUT("/movies/:id/:rate", h.UpdateRating)
	router.DELETE("/movies/:id", h.Delete)
}
