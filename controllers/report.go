// controllers/report.go
package controllers

import (
	"net/http"

	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct {
	revenue *services.RevenueService
}

func NewReportController(revenue *services.RevenueService) *ReportController {
	return &ReportController{revenue: revenue}
}

// GetRevenue returns done-appointment revenue bucketed by local day, week or month
func (rc *ReportController) GetRevenue(c *gin.Context) {
	var query services.RevenueQuery
	if !bindQuery(c, &query) {
		return
	}

	buckets, err := rc.revenue.Revenue(c.Request.Context(), query)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": buckets})
}

// GetAnalyticsSummary compares this month's revenue with last month's
func (rc *ReportController) GetAnalyticsSummary(c *gin.Context) {
	summary, err := rc.revenue.Summary(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
