package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the read-side aggregation views.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers routes related to budget reporting.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/departments", h.getDepartmentTotals)
		dashboard.GET("/alerts", h.getBudgetAlerts)
		dashboard.GET("/categories", h.getCategoryTotals)
	}
}

// refMonth reads the optional ?month=YYYY-MM query parameter, defaulting to
// the current month.
func refMonth(c *gin.Context) (time.Time, bool) {
	raw := c.Query("month")
	if raw == "" {
		return time.Now().UTC(), true
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, false
	}
	return month, true
}

func (h *dashboardHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	month, ok := refMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must use the YYYY-MM format"})
		return
	}

	resp, err := h.dashboardService.GetDashboard(c.Request.Context(), actorID, month)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *dashboardHandler) getDepartmentTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	month, ok := refMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must use the YYYY-MM format"})
		return
	}

	spends, err := h.dashboardService.TotalsByDepartment(c.Request.Context(), month)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": spends})
}

func (h *dashboardHandler) getBudgetAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	month, ok := refMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must use the YYYY-MM format"})
		return
	}

	threshold := 0.0
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a number in (0, 1]"})
			return
		}
		threshold = parsed
	}

	alerts, err := h.dashboardService.BudgetAlerts(c.Request.Context(), month, threshold)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *dashboardHandler) getCategoryTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	const layout = "2006-01-02"
	from, err := time.Parse(layout, c.DefaultQuery("from", time.Now().UTC().AddDate(0, -1, 0).Format(layout)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must use the YYYY-MM-DD format"})
		return
	}
	to, err := time.Parse(layout, c.DefaultQuery("to", time.Now().UTC().Format(layout)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must use the YYYY-MM-DD format"})
		return
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be before to"})
		return
	}

	spends, err := h.dashboardService.TotalsByCategory(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Debug("Category totals served", slog.Int("bucket_count", len(spends)))
	c.JSON(http.StatusOK, gin.H{"categories": spends})
}
