package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"allaccess/internal/application/pass/usecases"
	"allaccess/internal/shared/logger"
	"allaccess/internal/shared/utils"
)

// PassHandler handles HTTP requests for pass lifecycle operations
type PassHandler struct {
	activateUC     *usecases.ActivatePassesForOrderUseCase
	orderDeletedUC *usecases.OrderDeletedUseCase
	listUC         *usecases.ListCustomerPassesUseCase
	getUC          *usecases.GetPassUseCase
	expireUC       *usecases.ExpirePassUseCase
	upgradeUC      *usecases.UpgradePassUseCase
	setParamsUC    *usecases.SetCustomerParamsUseCase
	logger         logger.Interface
}

// NewPassHandler creates a new pass handler
func NewPassHandler(
	activateUC *usecases.ActivatePassesForOrderUseCase,
	orderDeletedUC *usecases.OrderDeletedUseCase,
	listUC *usecases.ListCustomerPassesUseCase,
	getUC *usecases.GetPassUseCase,
	expireUC *usecases.ExpirePassUseCase,
	upgradeUC *usecases.UpgradePassUseCase,
	setParamsUC *usecases.SetCustomerParamsUseCase,
	logger logger.Interface,
) *PassHandler {
	return &PassHandler{
		activateUC:     activateUC,
		orderDeletedUC: orderDeletedUC,
		listUC:         listUC,
		getUC:          getUC,
		expireUC:       expireUC,
		upgradeUC:      upgradeUC,
		setParamsUC:    setParamsUC,
		logger:         logger,
	}
}

// ActivateForOrder handles POST /orders/:id/passes
// Runs the activation trigger for every pass line item of a paid order.
func (h *PassHandler) ActivateForOrder(c *gin.Context) {
	orderID, err := utils.ParseUintParam(c, "id", "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	outcomes, err := h.activateUC.Execute(c.Request.Context(), usecases.ActivatePassesForOrderCommand{
		OrderID: orderID,
	})
	if err != nil {
		h.logger.Errorw("failed to activate passes for order", "order_id", orderID, "error", err)
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"outcomes": outcomes,
	})
}

// OrderDeleted handles DELETE /orders/:id/passes
// Runs the order-deletion trigger: the customer id must come from the
// caller because the order row is already gone.
func (h *PassHandler) OrderDeleted(c *gin.Context) {
	orderID, err := utils.ParseUintParam(c, "id", "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	customerID, err := utils.ParseUintQuery(c, "customer_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if customerID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "customer_id is required")
		return
	}

	removed, err := h.orderDeletedUC.Execute(c.Request.Context(), usecases.OrderDeletedCommand{
		OrderID:    orderID,
		CustomerID: customerID,
	})
	if err != nil {
		h.logger.Errorw("failed to clean up deleted order",
			"order_id", orderID, "customer_id", customerID, "error", err)
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"removed": removed,
	})
}

// ListCustomerPasses handles GET /customers/:id/passes
func (h *PassHandler) ListCustomerPasses(c *gin.Context) {
	customerID, err := utils.ParseUintParam(c, "id", "customer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	passes, err := h.listUC.Execute(c.Request.Context(), usecases.ListCustomerPassesCommand{
		CustomerID: customerID,
	})
	if err != nil {
		h.logger.Errorw("failed to list customer passes", "customer_id", customerID, "error", err)
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"passes": passes,
	})
}

// GetPass handles GET /passes/:id
func (h *PassHandler) GetPass(c *gin.Context) {
	dto, err := h.getUC.Execute(c.Request.Context(), usecases.GetPassCommand{
		PassID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

// ExpirePassRequest represents the request to expire a pass
type ExpirePassRequest struct {
	OverrideTimeWindow  bool `json:"override_time_window"`
	OverrideActiveCheck bool `json:"override_active_check"`
}

// ExpirePass handles POST /passes/:id/expire
func (h *PassHandler) ExpirePass(c *gin.Context) {
	var req ExpirePassRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for expire pass", "error", err)
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	dto, err := h.expireUC.Execute(c.Request.Context(), usecases.ExpirePassCommand{
		PassID:              c.Param("id"),
		OverrideTimeWindow:  req.OverrideTimeWindow,
		OverrideActiveCheck: req.OverrideActiveCheck,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

// UpgradePassRequest represents the request to upgrade a pass
type UpgradePassRequest struct {
	ToPassID string `json:"to_pass_id" validate:"required"`
}

// UpgradePass handles POST /passes/:id/upgrade
func (h *PassHandler) UpgradePass(c *gin.Context) {
	var req UpgradePassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for upgrade pass", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	dto, err := h.upgradeUC.Execute(c.Request.Context(), usecases.UpgradePassCommand{
		FromPassID: c.Param("id"),
		ToPassID:   req.ToPassID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

// SetCustomerParamsRequest represents the request to override a pass's grant
// parameters, or to revert to the activation snapshot.
type SetCustomerParamsRequest struct {
	UseActivationParams bool `json:"use_activation_params"`

	StartTime        *time.Time `json:"start_time"`
	DurationNumber   int        `json:"duration_number" validate:"min=0"`
	DurationUnit     string     `json:"duration_unit" validate:"omitempty,oneof=never year month week day"`
	DownloadLimit    int        `json:"download_limit" validate:"min=0"`
	LimitPeriod      string     `json:"limit_period" validate:"omitempty,oneof=per_day per_week per_month per_year per_period"`
	AllCategories    bool       `json:"all_categories"`
	CategoryIDs      []uint     `json:"category_ids"`
	VariationCount   int        `json:"variation_count" validate:"min=0"`
	VariationIndices []int      `json:"variation_indices"`
}

// SetCustomerParams handles PUT /passes/:id/params
func (h *PassHandler) SetCustomerParams(c *gin.Context) {
	var req SetCustomerParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set customer params", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SetCustomerParamsCommand{
		PassID:              c.Param("id"),
		UseActivationParams: req.UseActivationParams,
		DurationNumber:      req.DurationNumber,
		DurationUnit:        req.DurationUnit,
		DownloadLimit:       req.DownloadLimit,
		LimitPeriod:         req.LimitPeriod,
		AllCategories:       req.AllCategories,
		CategoryIDs:         req.CategoryIDs,
		VariationCount:      req.VariationCount,
		VariationIndices:    req.VariationIndices,
	}
	if req.StartTime != nil {
		cmd.StartTime = *req.StartTime
	}

	dto, err := h.setParamsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, mapDomainError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto)
}
