package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sciops/workorder-gin/internal/service"
)

// StatisticsController serves the dashboard chart data.
type StatisticsController struct {
	statistics service.StatisticsService
}

// NewStatisticsController creates a statistics controller.
func NewStatisticsController(statistics service.StatisticsService) *StatisticsController {
	return &StatisticsController{statistics: statistics}
}

// ByKind counts work orders per kind
// @Summary      Work orders by kind
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/by-kind [get]
func (c *StatisticsController) ByKind(ctx *gin.Context) {
	results, err := c.statistics.CountByKind()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to compute statistics", err.Error())
		return
	}
	Success(ctx, results)
}

// ByStatus counts work orders per status
// @Summary      Work orders by status
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/by-status [get]
func (c *StatisticsController) ByStatus(ctx *gin.Context) {
	results, err := c.statistics.CountByStatus()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to compute statistics", err.Error())
		return
	}
	Success(ctx, results)
}

// ByMonth counts work orders per request month
// @Summary      Work orders by month
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/by-month [get]
func (c *StatisticsController) ByMonth(ctx *gin.Context) {
	results, err := c.statistics.CountByMonth()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to compute statistics", err.Error())
		return
	}
	Success(ctx, results)
}

// Summary totals the open/closed split
// @Summary      Completion summary
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/summary [get]
func (c *StatisticsController) Summary(ctx *gin.Context) {
	summary, err := c.statistics.CompletionSummary()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to compute statistics", err.Error())
		return
	}
	Success(ctx, summary)
}
