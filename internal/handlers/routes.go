package handlers

import (
	"fmt"

	"github.com/epeers/fundsight/internal/middleware"
	"github.com/epeers/fundsight/internal/state"
	"github.com/epeers/fundsight/internal/templates"
	"github.com/epeers/fundsight/internal/views"
	"github.com/gin-gonic/gin"
)

// APIBasePath prefixes every JSON endpoint
const APIBasePath = "/api/v1"

// RegisterRoutes installs the pages, the JSON API and the fallback page
// on router.
func RegisterRoutes(router *gin.Engine, store *state.Store, format views.Formatter) error {
	tmpl, err := templates.Load()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	sessionHandler := NewSessionHandler(store)
	portfolioHandler := NewPortfolioHandler(store, format)
	fundsHandler := NewFundsHandler(store)
	adminHandler := NewAdminHandler(store)

	router.GET("/health", adminHandler.Health)

	// Pages
	router.GET("/login", middleware.RedirectIfAuthenticated(store), sessionHandler.LoginPage)
	router.POST("/login", sessionHandler.Login)
	router.POST("/logout", sessionHandler.Logout)

	pages := router.Group("/", middleware.RequireSession(store))
	pages.GET("/", portfolioHandler.Dashboard)
	pages.GET("/performance-metrics", portfolioHandler.PerformancePage)
	pages.POST("/performance-metrics/user", portfolioHandler.SelectUser)
	pages.GET("/mutual-funds", fundsHandler.FundsPage)
	pages.POST("/refresh", adminHandler.RefreshPage)

	// JSON API
	api := router.Group(APIBasePath)
	api.GET("/session", sessionHandler.GetSession)
	api.POST("/session", sessionHandler.CreateSession)
	api.DELETE("/session", sessionHandler.DeleteSession)

	protected := api.Group("/", middleware.RequireSession(store))
	protected.GET("/summary", portfolioHandler.GetSummary)
	protected.GET("/investments", portfolioHandler.ListInvestments)
	protected.GET("/performance", portfolioHandler.GetPerformance)
	protected.PUT("/selection", portfolioHandler.UpdateSelection)
	protected.GET("/funds", fundsHandler.ListFunds)
	protected.GET("/funds/flows", fundsHandler.GetFlows)
	protected.GET("/funds/overlap", fundsHandler.GetOverlap)
	protected.POST("/refresh", adminHandler.Refresh)

	router.NoRoute(NotFound(store))
	return nil
}
