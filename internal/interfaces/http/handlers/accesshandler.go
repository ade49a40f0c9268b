package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"allaccess/internal/application/pass/usecases"
	"allaccess/internal/shared/logger"
	"allaccess/internal/shared/utils"
)

// AccessHandler handles HTTP requests for download access decisions
type AccessHandler struct {
	checkUC  *usecases.CheckAccessUseCase
	recordUC *usecases.RecordDownloadUseCase
	logger   logger.Interface
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(
	checkUC *usecases.CheckAccessUseCase,
	recordUC *usecases.RecordDownloadUseCase,
	logger logger.Interface,
) *AccessHandler {
	return &AccessHandler{
		checkUC:  checkUC,
		recordUC: recordUC,
		logger:   logger,
	}
}

// CheckAccess handles GET /access/check
// Answers "may this customer download this file" without recording anything.
// Query parameters:
//   - customer_id: the requesting customer (0 means anonymous)
//   - download_id: the product being downloaded
//   - price_id: the price variation being downloaded (optional)
//   - enforce_quota: also require remaining quota (optional)
//   - product_id: only consider passes from this pass product (optional)
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	customerID, err := utils.ParseUintQuery(c, "customer_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	downloadID, err := utils.ParseUintQuery(c, "download_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if downloadID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "download_id is required")
		return
	}

	priceID, err := utils.ParseUintQuery(c, "price_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	restrictTo, err := utils.ParseUintQuery(c, "product_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.checkUC.Execute(c.Request.Context(), usecases.CheckAccessCommand{
		CustomerID:        customerID,
		DownloadID:        downloadID,
		PriceID:           priceID,
		EnforceQuota:      c.Query("enforce_quota") == "true",
		RestrictToProduct: restrictTo,
	})
	if err != nil {
		h.logger.Errorw("access check failed",
			"customer_id", customerID, "download_id", downloadID, "error", err)
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RecordDownloadRequest represents the request to record a download
type RecordDownloadRequest struct {
	CustomerID uint `json:"customer_id" validate:"required"`
	DownloadID uint `json:"download_id" validate:"required"`
	PriceID    uint `json:"price_id"`
}

// RecordDownload handles POST /downloads
// The fulfillment trigger: a quota-enforced access check, then one download
// attributed to the winning pass.
func (h *AccessHandler) RecordDownload(c *gin.Context) {
	var req RecordDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record download", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.recordUC.Execute(c.Request.Context(), usecases.RecordDownloadCommand{
		CustomerID: req.CustomerID,
		DownloadID: req.DownloadID,
		PriceID:    req.PriceID,
	})
	if err != nil {
		h.logger.Errorw("failed to record download",
			"customer_id", req.CustomerID, "download_id", req.DownloadID, "error", err)
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
