package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"backend/services"
	"backend/storage"
)

type SummaryController struct {
	days *services.DayService
}

func NewSummaryController(days *services.DayService) *SummaryController {
	return &SummaryController{days: days}
}

// GetSummary returns the day view for ?date=YYYY-MM-DD, defaulting to
// today. Recomputed on every call.
func (sc *SummaryController) GetSummary(c *gin.Context) {
	date := time.Now()
	if q := c.Query("date"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	summary, err := sc.days.ForDate(c.Request.Context(), date)
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetTodayMeals returns just the meal list of today's summary, most
// recent first.
func (sc *SummaryController) GetTodayMeals(c *gin.Context) {
	summary, err := sc.days.Today(c.Request.Context())
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": summary.Meals})
}

// GetHistory returns per-day summaries for the trailing ?days=N window.
func (sc *SummaryController) GetHistory(c *gin.Context) {
	days := 7
	if q := c.Query("days"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
			return
		}
		days = n
	}

	history, err := sc.days.History(c.Request.Context(), days)
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": history})
}

func (sc *SummaryController) fail(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNoProfile) {
		c.JSON(http.StatusNotFound, gin.H{"error": "onboarding not completed"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
