package handler

import (
	"context"
	"net/http"

	"github.com/fitpass/gym-checkin-system/internal/adapter/http/handler/dto"
	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/fitpass/gym-checkin-system/pkg/validator"
	"github.com/google/uuid"
)

type CheckInService interface {
	CheckIn(ctx context.Context, userID, gymID uuid.UUID, userLat, userLng float64) (*models.CheckIn, error)
	Validate(ctx context.Context, checkInID uuid.UUID) (*models.CheckIn, error)
	History(ctx context.Context, userID uuid.UUID, page int) ([]models.CheckIn, models.Metadata, error)
	Metrics(ctx context.Context, userID uuid.UUID) (int, error)
}

type CheckIn struct {
	checkIns CheckInService
	l        logger.Logger
}

func NewCheckIn(service CheckInService, l logger.Logger) *CheckIn {
	return &CheckIn{
		checkIns: service,
		l:        l,
	}
}

// Create godoc
// @Summary      Check in at a gym
// @Description  Accepts a check-in when the member is within 100 meters of the gym and has not checked in today.
// @Tags         CheckIns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gym_id   path      string                   true  "Gym ID"
// @Param        request  body      dto.CreateCheckInRequest true  "Member position"
// @Success      201      {object}  map[string]any
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /gyms/{gym_id}/check-ins [post]
func (h *CheckIn) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "checkin_create")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	gymID, err := readUUIDParam(r, "gym_id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	req := &dto.CreateCheckInRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.l.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateNewCheckIn(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	checkIn, err := h.checkIns.CheckIn(ctx, user.ID, gymID, req.Latitude, req.Longitude)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create check-in", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"check_in": checkIn}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Validate godoc
// @Summary      Validate a check-in
// @Description  Admin confirmation that the member is at the gym. Only possible within 20 minutes of creation.
// @Tags         CheckIns
// @Produce      json
// @Security     BearerAuth
// @Param        checkin_id  path      string  true  "Check-in ID"
// @Success      200         {object}  map[string]any
// @Failure      404         {object}  map[string]string
// @Failure      409         {object}  map[string]string
// @Failure      422         {object}  map[string]string
// @Router       /check-ins/{checkin_id}/validate [post]
func (h *CheckIn) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "checkin_validate")

	checkInID, err := readUUIDParam(r, "checkin_id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	checkIn, err := h.checkIns.Validate(ctx, checkInID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to validate check-in", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"check_in": checkIn}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// History godoc
// @Summary      List the authenticated member's check-ins
// @Tags         CheckIns
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (1-indexed)"
// @Success      200   {object}  map[string]any
// @Router       /users/me/check-ins [get]
func (h *CheckIn) History(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "checkin_history")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	v := validator.New()
	page := readInt(r.URL.Query(), "page", 1, v)
	models.NewFilters(page).Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	checkIns, metadata, err := h.checkIns.History(ctx, user.ID, page)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list check-ins", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"check_ins": checkIns,
		"metadata":  metadata,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Metrics godoc
// @Summary      Total check-in count for the authenticated member
// @Tags         CheckIns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Router       /users/me/check-ins/metrics [get]
func (h *CheckIn) Metrics(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "checkin_metrics")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	count, err := h.checkIns.Metrics(ctx, user.ID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to count check-ins", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"check_ins_count": count}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
