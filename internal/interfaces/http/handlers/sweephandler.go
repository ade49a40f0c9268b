package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"allaccess/internal/application/pass/usecases"
	"allaccess/internal/shared/logger"
	"allaccess/internal/shared/utils"
)

// SweepHandler handles HTTP requests for the expiration sweep
type SweepHandler struct {
	sweepUC *usecases.SweepExpiredUseCase
	logger  logger.Interface
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(sweepUC *usecases.SweepExpiredUseCase, logger logger.Interface) *SweepHandler {
	return &SweepHandler{
		sweepUC: sweepUC,
		logger:  logger,
	}
}

// RunSweep handles POST /sweep
// Triggers one expiration sweep run, same as the daily schedule.
func (h *SweepHandler) RunSweep(c *gin.Context) {
	result, err := h.sweepUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("sweep run failed", "error", err)
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
