package handler

import (
	"context"
	"net/http"

	"github.com/fitpass/gym-checkin-system/internal/adapter/http/handler/dto"
	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/fitpass/gym-checkin-system/pkg/validator"
)

type GymService interface {
	Create(ctx context.Context, req *models.GymCreateRequest) (*models.Gym, error)
	Search(ctx context.Context, query string, page int) ([]models.Gym, error)
	FetchNearby(ctx context.Context, point models.Coordinate) ([]models.Gym, error)
}

type Gym struct {
	gyms GymService
	l    logger.Logger
}

func NewGym(service GymService, l logger.Logger) *Gym {
	return &Gym{
		gyms: service,
		l:    l,
	}
}

// Create godoc
// @Summary      Register a new gym
// @Tags         Gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.CreateGymRequest  true  "New gym"
// @Success      201      {object}  map[string]any
// @Failure      422      {object}  map[string]string
// @Router       /gyms [post]
func (h *Gym) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "gym_create")

	req := &dto.CreateGymRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.l.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateNewGym(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	gym, err := h.gyms.Create(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create gym", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"gym": gym}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Search godoc
// @Summary      Search gyms by title
// @Tags         Gyms
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  true   "Title substring"
// @Param        page  query     int     false  "Page number (1-indexed)"
// @Success      200   {object}  map[string]any
// @Router       /gyms/search [get]
func (h *Gym) Search(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "gym_search")

	qs := r.URL.Query()

	v := validator.New()
	query := readString(qs, "q", "")
	page := readInt(qs, "page", 1, v)

	v.Check(query != "", "q", "must be provided")
	models.NewFilters(page).Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	gyms, err := h.gyms.Search(ctx, query, page)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to search gyms", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"gyms": gyms}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Nearby godoc
// @Summary      List gyms close to a point
// @Tags         Gyms
// @Produce      json
// @Security     BearerAuth
// @Param        latitude   query     number  true  "Latitude"
// @Param        longitude  query     number  true  "Longitude"
// @Success      200        {object}  map[string]any
// @Router       /gyms/nearby [get]
func (h *Gym) Nearby(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "gym_nearby")

	qs := r.URL.Query()

	v := validator.New()
	latitude := readFloat(qs, "latitude", v)
	longitude := readFloat(qs, "longitude", v)

	if v.Valid() {
		dto.ValidateCoordinate(v, latitude, longitude)
	}
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	gyms, err := h.gyms.FetchNearby(ctx, models.Coordinate{Latitude: latitude, Longitude: longitude})
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to fetch nearby gyms", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"gyms": gyms}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
