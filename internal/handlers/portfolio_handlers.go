package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/state"
	"github.com/epeers/fundsight/internal/views"
	"github.com/gin-gonic/gin"
)

const (
	tabPerformance = "performance"
	tabComposition = "composition"

	performancePath = "/performance-metrics"
)

// PortfolioHandler serves the dashboard and the per-investor performance
// views
type PortfolioHandler struct {
	store  *state.Store
	format views.Formatter
	now    func() time.Time
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(store *state.Store, format views.Formatter) *PortfolioHandler {
	return &PortfolioHandler{
		store:  store,
		format: format,
		now:    time.Now,
	}
}

// Dashboard handles GET /
func (h *PortfolioHandler) Dashboard(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	if renderFetchState(c, snap, snap.Portfolio.InvestmentsFetch, "Dashboard", navHome) {
		return
	}

	summary := views.Summarize(snap.Portfolio.Investments)
	data := pageData(snap, "Dashboard", navHome)
	data["Summary"] = summary
	data["TotalValue"] = h.format.Whole(summary.TotalValue)
	data["TotalInitial"] = h.format.Whole(summary.TotalInitial)
	data["TotalGrowth"] = h.format.Whole(summary.TotalGrowth)
	data["FundCount"] = len(snap.Portfolio.Funds)
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// PerformancePage handles GET /performance-metrics?user=&period=&tab=
func (h *PortfolioHandler) PerformancePage(c *gin.Context) {
	if user := c.Query("user"); user != "" {
		h.store.SetSelectedUser(user)
	}
	period := views.ParseBucket(c.Query("period"))
	tab := parseTab(c.Query("tab"))

	snap := loadPortfolio(c, h.store)
	p := snap.Portfolio
	if renderFetchState(c, snap, p.InvestmentsFetch, "Portfolio", navPortfolio) {
		return
	}

	data := pageData(snap, "Portfolio", navPortfolio)
	data["Users"] = userNames(p.Investments)
	data["SelectedUser"] = p.SelectedUser
	data["Greeting"] = greeting(p.SelectedUser)
	data["Period"] = period
	data["Buckets"] = views.Buckets
	data["Tab"] = tab

	var perf *views.Performance
	if inv, ok := p.SelectedInvestment(); ok {
		built := views.BuildPerformance(inv, period, h.now(), h.format)
		perf = &built
	}
	data["Performance"] = perf

	data["FundsError"] = ""
	if tab == tabComposition {
		switch p.FundsFetch.Status {
		case models.StatusFailed:
			data["FundsError"] = p.FundsFetch.Error
		case models.StatusSucceeded:
		default:
			data["FundsError"] = "Loading..."
		}
		data["Flows"] = views.FundFlows(p.Funds)
	}

	c.HTML(http.StatusOK, "performance.html", data)
}

// SelectUser handles POST /performance-metrics/user and returns to the
// performance page keeping the chosen period and tab.
func (h *PortfolioHandler) SelectUser(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBind(&req); err == nil {
		h.store.SetSelectedUser(req.UserName)
	}

	q := url.Values{}
	if period := c.PostForm("period"); period != "" {
		q.Set("period", string(views.ParseBucket(period)))
	}
	if tab := c.PostForm("tab"); tab != "" {
		q.Set("tab", parseTab(tab))
	}
	target := performancePath
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

// GetSummary handles GET /api/v1/summary
// @Summary Portfolio summary
// @Description Totals across every investor: value, invested amount, growth and growth percentage
// @Tags portfolio
// @Produce json
// @Success 200 {object} views.Summary
// @Failure 401 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /summary [get]
func (h *PortfolioHandler) GetSummary(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	if abortFetchState(c, snap.Portfolio.InvestmentsFetch) {
		return
	}
	c.JSON(http.StatusOK, views.Summarize(snap.Portfolio.Investments))
}

// ListInvestments handles GET /api/v1/investments
// @Summary List investments
// @Description Every investor's portfolio snapshot as last fetched
// @Tags portfolio
// @Produce json
// @Success 200 {array} models.Investment
// @Failure 401 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /investments [get]
func (h *PortfolioHandler) ListInvestments(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	if abortFetchState(c, snap.Portfolio.InvestmentsFetch) {
		return
	}
	c.JSON(http.StatusOK, snap.Portfolio.Investments)
}

// GetPerformance handles GET /api/v1/performance
// @Summary Investor performance
// @Description Metric cards, filtered chart series and sector allocation for one investor. Defaults to the selected investor and the 1M period.
// @Tags portfolio
// @Produce json
// @Param user query string false "Investor user name"
// @Param period query string false "1M, 3M, 6M, 1Y, 3Y or MAX"
// @Success 200 {object} views.Performance
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /performance [get]
func (h *PortfolioHandler) GetPerformance(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	p := snap.Portfolio
	if abortFetchState(c, p.InvestmentsFetch) {
		return
	}

	if user := c.Query("user"); user != "" {
		p.SelectedUser = user
	}
	inv, ok := p.SelectedInvestment()
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "no investment for user " + p.SelectedUser,
		})
		return
	}

	period := views.ParseBucket(c.Query("period"))
	c.JSON(http.StatusOK, views.BuildPerformance(inv, period, h.now(), h.format))
}

// UpdateSelection handles PUT /api/v1/selection
// @Summary Select investor
// @Description Change which investor the performance views show. The name is not checked against the loaded list.
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body models.SelectionRequest true "Investor"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /selection [put]
func (h *PortfolioHandler) UpdateSelection(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	h.store.SetSelectedUser(req.UserName)
	c.JSON(http.StatusOK, statusResponse(h.store.Snapshot().Portfolio))
}

func statusResponse(p state.PortfolioState) models.StatusResponse {
	return models.StatusResponse{
		Investments:      p.InvestmentsFetch.Status,
		InvestmentsError: p.InvestmentsFetch.Error,
		Funds:            p.FundsFetch.Status,
		FundsError:       p.FundsFetch.Error,
		SelectedUser:     p.SelectedUser,
	}
}

func parseTab(s string) string {
	if s == tabComposition {
		return tabComposition
	}
	return tabPerformance
}

func userNames(investments []models.Investment) []string {
	names := make([]string, len(investments))
	for i, inv := range investments {
		names[i] = inv.UserName
	}
	return names
}

func greeting(selected string) string {
	if selected == "" {
		return "User"
	}
	return selected
}
