package handlers

import (
	"errors"
	"net/http"

	"heater_dashboard/internal/service"
	"heater_dashboard/internal/ui"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusWaiting = "waiting"

	errNoState         = "no device state yet"
	errSyncInFlight    = "sync already in progress"
	errSyncDiscarded   = "sync discarded after focus loss"
	errSyncFailed      = "failed to sync with device"
	errUnknownView     = "unknown view"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// focusRequest toggles periodic syncing.
type focusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// FocusRequest is an exported model for Swagger docs of the focus payload.
type FocusRequest struct {
	// false pauses periodic syncs, true resumes them with an immediate sync
	Active bool `json:"active" example:"false"`
}

// @Summary      Health check
// @Description  Reports liveness, whether a device state has been synced and the count of consecutive failed syncs.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	status := statusOK
	if h.services.Dashboard.State() == nil {
		status = statusWaiting
	}
	resp := gin.H{
		"status":   status,
		"active":   h.services.Dashboard.Active(),
		"failures": h.services.Dashboard.Failures(),
	}
	if err := h.services.Dashboard.LastError(); err != nil {
		resp["last_error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Get device status
// @Description  Latest merged device snapshot with its history, newest record first.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.ClientState
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st := h.services.Dashboard.State()
	if st == nil {
		resp := gin.H{"error": errNoState, "failures": h.services.Dashboard.Failures()}
		if err := h.services.Dashboard.LastError(); err != nil {
			resp["last_error"] = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Refresh device status
// @Description  Runs one sync now. Answers 409 when a sync is already running.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.ClientState
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/status/refresh [post]
func (h *Handler) refreshStatus(c *gin.Context) {
	st, err := h.services.Dashboard.Refresh(c.Request.Context())
	switch {
	case errors.Is(err, service.ErrSyncInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": errSyncInFlight})
		return
	case errors.Is(err, service.ErrStaleResult):
		c.JSON(http.StatusConflict, gin.H{"error": errSyncDiscarded})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusBadGateway, errSyncFailed+": "+err.Error(), "refresh_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get formatted view
// @Description  Control updates for the overview, or for the settings dialog with dialog=settings.
// @Tags         dashboard
// @Produce      json
// @Param        dialog  query  string  false  "Dialog to fill"  Enums(overview,settings)
// @Success      200  {object}  ui.View
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/view [get]
func (h *Handler) getView(c *gin.Context) {
	view, err := ui.BuildNamed(c.Query("dialog"), h.services.Dashboard.State())
	switch {
	case errors.Is(err, ui.ErrNoState):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNoState})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": errUnknownView})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Set focus
// @Description  Pauses or resumes periodic syncs, like a browser tab losing or regaining focus.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body  FocusRequest  true  "Focus payload"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/focus [post]
func (h *Handler) setFocus(c *gin.Context) {
	var req focusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.services.Dashboard.SetActive(c.Request.Context(), *req.Active)
	c.JSON(http.StatusOK, gin.H{"active": h.services.Dashboard.Active()})
}
