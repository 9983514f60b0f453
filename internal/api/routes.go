package api

import (
	"github.com/gin-gonic/gin"

	"spendly-api/internal/api/handlers"
	"spendly-api/internal/api/middleware"
	"spendly-api/internal/ratelimit"
	"spendly-api/internal/storage"
)

// SetupRouter wires every route onto a fresh engine. Paths are part of the
// public contract; the personal and team expense groups are intentionally
// open, existing clients call them without a token.
func SetupRouter(store storage.Store, rl *ratelimit.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), RequestLogger())

	h := handlers.NewHandler(store)

	api := router.Group("/api")

	api.GET("/test", h.Health)

	authRoutes := api.Group("/auth")
	if rl != nil {
		authRoutes.Use(middleware.AuthRateLimit(rl))
	}
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	expenses := api.Group("/expenses")
	expenses.Use(AuthMiddleware())
	{
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}

	personal := api.Group("/personal-expenses")
	{
		personal.GET("", h.ListPersonalExpenses)
		personal.POST("", h.CreatePersonalExpense)
		personal.PATCH("/:id/approve", h.ApprovePersonalExpense)
		personal.PATCH("/:id/reject", h.RejectPersonalExpense)
	}

	teamExpenses := api.Group("/team-expenses")
	{
		teamExpenses.GET("/", h.ListTeamExpenses)
		teamExpenses.GET("/team/:teamId", h.ListTeamExpensesByTeam)
		teamExpenses.POST("/", h.CreateTeamExpense)
		teamExpenses.PUT("/:id", h.UpdateTeamExpense)
		teamExpenses.DELETE("/:id", h.DeleteTeamExpense)
	}

	teams := api.Group("/teams")
	teams.Use(AuthMiddleware())
	{
		teams.GET("", h.ListTeams)
		teams.POST("", h.CreateTeam)
		teams.PUT("/:id", h.UpdateTeam)
		teams.POST("/:id/members", h.AddTeamMember)
		teams.DELETE("/:id/members/:userId", h.RemoveTeamMember)
	}

	return router
}
