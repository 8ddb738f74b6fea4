package handlers

import (
	"errors"
	"io"
	"net/http"

	"heater_dashboard/internal/ui"

	"github.com/gin-gonic/gin"
)

const (
	errUnknownAction = "unknown action"
	errCommandFailed = "failed to reach device"
)

// ActionRequest is an exported model for Swagger docs of the action payload.
// Only the fields the action needs are read.
type ActionRequest struct {
	Low  float64 `json:"low,omitempty" example:"95"`
	High float64 `json:"high,omitempty" example:"105"`
	Kp   float64 `json:"kp,omitempty" example:"2.5"`
	Ki   float64 `json:"ki,omitempty" example:"0.1"`
	Kd   float64 `json:"kd,omitempty" example:"1.2"`
}

// @Summary      List actions
// @Tags         actions
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/v1/actions [get]
func (h *Handler) listActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": h.services.Commands.Actions()})
}

// @Summary      Dispatch action
// @Description  Runs the command bound to a dashboard button. A device rejection answers 200 with success=false.
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        id    path  string         true   "Button id"  Enums(overview-toggleEnable,setting-apply-temperature,setting-apply-pid,setting-toggle-countdown,setting-save,setting-restart)
// @Param        body  body  ActionRequest  false  "Dialog inputs"
// @Success      200  {object}  models.CommandResult
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/actions/{id} [post]
func (h *Handler) dispatchAction(c *gin.Context) {
	var params ui.Params
	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	id := c.Param("id")
	res, err := h.services.Commands.Dispatch(c.Request.Context(), id, params)
	switch {
	case errors.Is(err, ui.ErrUnknownAction):
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownAction})
		return
	case errors.Is(err, ui.ErrMissingParam):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ui.ErrNoState):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNoState})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusBadGateway, errCommandFailed, "action_failed", err, "action", id)
		return
	}
	c.JSON(http.StatusOK, res)
}
