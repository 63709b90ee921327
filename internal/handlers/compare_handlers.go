package handlers

import (
	"net/http"

	"github.com/epeers/fundsight/internal/state"
	"github.com/epeers/fundsight/internal/views"
	"github.com/gin-gonic/gin"
)

// FundsHandler serves the fund list and the fund comparison views
type FundsHandler struct {
	store *state.Store
}

// NewFundsHandler creates a new FundsHandler
func NewFundsHandler(store *state.Store) *FundsHandler {
	return &FundsHandler{
		store: store,
	}
}

// FundsPage handles GET /mutual-funds
func (h *FundsHandler) FundsPage(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	if renderFetchState(c, snap, snap.Portfolio.FundsFetch, "Mutual Funds", navFunds) {
		return
	}

	data := pageData(snap, "Mutual Funds", navFunds)
	data["Funds"] = snap.Portfolio.Funds
	data["Overlap"] = views.FundOverlap(snap.Portfolio.Funds)
	c.HTML(http.StatusOK, "funds.html", data)
}

// ListFunds handles GET /api/v1/funds
// @Summary List funds
// @Description Every mutual fund with its stock holdings
// @Tags funds
// @Produce json
// @Success 200 {array} models.Fund
// @Failure 401 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /funds [get]
func (h *FundsHandler) ListFunds(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	if abortFetchState(c, snap.Portfolio.FundsFetch) {
		return
	}
	c.JSON(http.StatusOK, snap.Portfolio.Funds)
}

// GetFlows handles GET /api/v1/funds/flows
// @Summary Fund composition flows
// @Description Fund to stock edges weighted by holding, with one color per fund
// @Tags funds
// @Produce json
// @Success 200 {object} views.Flows
// @Failure 401 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /funds/flows [get]
func (h *FundsHandler) GetFlows(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	if abortFetchState(c, snap.Portfolio.FundsFetch) {
		return
	}
	c.JSON(http.StatusOK, views.FundFlows(snap.Portfolio.Funds))
}

// GetOverlap handles GET /api/v1/funds/overlap
// @Summary Compare fund holdings
// @Description Stocks held by two or more funds, most shared first
// @Tags funds
// @Produce json
// @Success 200 {array} views.Overlap
// @Failure 401 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /funds/overlap [get]
func (h *FundsHandler) GetOverlap(c *gin.Context) {
	snap := loadPortfolio(c, h.store)
	if abortFetchState(c, snap.Portfolio.FundsFetch) {
		return
	}
	c.JSON(http.StatusOK, views.FundOverlap(snap.Portfolio.Funds))
}
