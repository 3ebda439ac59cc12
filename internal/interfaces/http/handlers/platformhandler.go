package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lutrii-inc/lutrii/internal/application/platform/usecases"
	"github.com/lutrii-inc/lutrii/internal/interfaces/http/middleware"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"
)

type PlatformHandler struct {
	initializeUC   *usecases.InitializePlatformUseCase
	updateConfigUC *usecases.UpdatePlatformConfigUseCase
	pauseUC        *usecases.EmergencyPauseUseCase
	getUC          *usecases.GetPlatformUseCase
	logger         logger.Interface
}

func NewPlatformHandler(
	initializeUC *usecases.InitializePlatformUseCase,
	updateConfigUC *usecases.UpdatePlatformConfigUseCase,
	pauseUC *usecases.EmergencyPauseUseCase,
	getUC *usecases.GetPlatformUseCase,
) *PlatformHandler {
	return &PlatformHandler{
		initializeUC:   initializeUC,
		updateConfigUC: updateConfigUC,
		pauseUC:        pauseUC,
		getUC:          getUC,
		logger:         logger.NewLogger(),
	}
}

type InitializePlatformRequest struct {
	SettlementMint   string `json:"settlement_mint" binding:"required"`
	DailyVolumeLimit uint64 `json:"daily_volume_limit" binding:"required,gt=0"`
	FeeBasisPoints   uint16 `json:"fee_basis_points" binding:"required"`
}

func (h *PlatformHandler) Initialize(c *gin.Context) {
	var req InitializePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for platform initialization", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.initializeUC.Execute(c.Request.Context(), usecases.InitializePlatformCommand{
		Authority:        middleware.CallerAddress(c),
		SettlementMint:   req.SettlementMint,
		DailyVolumeLimit: req.DailyVolumeLimit,
		FeeBasisPoints:   req.FeeBasisPoints,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, result)
}

type UpdatePlatformConfigRequest struct {
	FeeBasisPoints   *uint16 `json:"fee_basis_points"`
	MinFee           *uint64 `json:"min_fee"`
	MaxFee           *uint64 `json:"max_fee"`
	DailyVolumeLimit *uint64 `json:"daily_volume_limit"`
}

func (h *PlatformHandler) UpdateConfig(c *gin.Context) {
	var req UpdatePlatformConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for platform config update", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.updateConfigUC.Execute(c.Request.Context(), usecases.UpdatePlatformConfigCommand{
		Authority:        middleware.CallerAddress(c),
		FeeBasisPoints:   req.FeeBasisPoints,
		MinFee:           req.MinFee,
		MaxFee:           req.MaxFee,
		DailyVolumeLimit: req.DailyVolumeLimit,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *PlatformHandler) Pause(c *gin.Context) {
	h.setPause(c, true)
}

func (h *PlatformHandler) Unpause(c *gin.Context) {
	h.setPause(c, false)
}

func (h *PlatformHandler) setPause(c *gin.Context, pause bool) {
	err := h.pauseUC.Execute(c.Request.Context(), usecases.EmergencyPauseCommand{
		Authority: middleware.CallerAddress(c),
		Pause:     pause,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"emergency_pause": pause})
}

func (h *PlatformHandler) Get(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}
