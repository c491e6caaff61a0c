package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizmania/quiz-service/internal/services"
	"github.com/quizmania/quiz-service/internal/utils"
)

type StatsHandler struct {
	BaseHandler
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService, logger utils.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  NewBaseHandler(logger),
		statsService: statsService,
	}
}

// GetUserStats returns the aggregated quiz history for one user.
// @Summary User statistics
// @Tags stats
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /user/stats/{email} [get]
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	email := c.Param("email")

	stats, err := h.statsService.UserStats(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status: true,
		Data:   stats,
	})
}

// GetAdminStats returns the system-wide overview.
// @Summary Admin statistics
// @Tags stats
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /admin/stats [get]
func (h *StatsHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.statsService.AdminStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status: true,
		Data:   stats,
	})
}

// ExportAdminStats streams the admin overview as an xlsx workbook.
// @Summary Export admin statistics
// @Tags stats
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /admin/stats/export [get]
func (h *StatsHandler) ExportAdminStats(c *gin.Context) {
	f, err := h.statsService.ExportAdminStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("admin-stats-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		utils.LoggerFromContext(c, h.logger).Error("failed to stream export", "error", err)
	}
}
