package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/controllers"
	"backend/middlewares"
)

// Deps carries the constructed controllers into the router; everything
// is injected, nothing ambient.
type Deps struct {
	JWTSecret []byte
	Profile   *controllers.ProfileController
	Meals     *controllers.MealController
	Summary   *controllers.SummaryController
	Realtime  *controllers.RealtimeController
	Device    *controllers.DeviceController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public: onboarding issues the device token everything else requires
	r.POST("/onboarding", d.Profile.Onboard)

	auth := r.Group("/")
	auth.Use(middlewares.DeviceAuth(d.JWTSecret))
	{
		user := auth.Group("/user")
		{
			user.GET("/profile", d.Profile.GetProfile)
			user.PUT("/profile", d.Profile.UpdateProfile)
		}

		meals := auth.Group("/meals")
		{
			meals.POST("/analyze", d.Meals.Analyze)
			meals.GET("/draft", d.Meals.GetDraft)
			meals.POST("/draft/items", d.Meals.AddDraftItem)
			meals.PUT("/draft/items/:id", d.Meals.UpdateDraftItem)
			meals.DELETE("/draft/items/:id", d.Meals.RemoveDraftItem)
			meals.PUT("/draft/type", d.Meals.SetDraftType)
			meals.POST("/draft/commit", d.Meals.Commit)
			meals.GET("/today", d.Summary.GetTodayMeals)
		}

		auth.GET("/summary", d.Summary.GetSummary)
		auth.GET("/summary/history", d.Summary.GetHistory)
		auth.GET("/ws/summary", d.Realtime.SummaryWS)
		auth.POST("/device/push", d.Device.RegisterPush)
	}

	return r
}
