package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/models"
	"backend/services"
	"backend/utils"
)

type MealController struct {
	assembly *services.AssemblyService
	days     *services.DayService
	images   *utils.ImageStore
	hub      *services.RealtimeHub
	push     *services.PushService // nil when push is unconfigured
}

func NewMealController(
	assembly *services.AssemblyService,
	days *services.DayService,
	images *utils.ImageStore,
	hub *services.RealtimeHub,
	push *services.PushService,
) *MealController {
	return &MealController{assembly: assembly, days: days, images: images, hub: hub, push: push}
}

func draftResponse(d *services.Draft) gin.H {
	items := d.Items()
	return gin.H{
		"type":       d.Type(),
		"type_label": d.Type().Label(),
		"items":      items,
	}
}

// Analyze runs the photo through the recognition collaborator and opens
// a draft from the proposed items.
func (mc *MealController) Analyze(c *gin.Context) {
	var body struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := mc.assembly.StartDraft(c.Request.Context(), body.ImageBase64)
	if errors.Is(err, services.ErrAnalysisFailed) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

func (mc *MealController) GetDraft(c *gin.Context) {
	draft, err := mc.assembly.Draft()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// UpdateDraftItem renames and/or rescales one draft item.
func (mc *MealController) UpdateDraftItem(c *gin.Context) {
	var body struct {
		Name        *string  `json:"name"`
		WeightGrams *float64 `json:"weight_grams"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, err := mc.assembly.Draft()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if body.Name != nil {
		if err := draft.RenameItem(id, *body.Name); err != nil {
			c.JSON(draftEditStatus(err), gin.H{"error": err.Error()})
			return
		}
	}
	if body.WeightGrams != nil {
		if err := draft.SetItemWeight(id, *body.WeightGrams); err != nil {
			c.JSON(draftEditStatus(err), gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

func (mc *MealController) RemoveDraftItem(c *gin.Context) {
	draft, err := mc.assembly.Draft()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := draft.RemoveItem(c.Param("id")); err != nil {
		c.JSON(draftEditStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

func (mc *MealController) AddDraftItem(c *gin.Context) {
	draft, err := mc.assembly.Draft()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	item, err := draft.AddItem()
	if err != nil {
		c.JSON(draftEditStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (mc *MealController) SetDraftType(c *gin.Context) {
	var body struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mealType, err := models.ParseMealType(body.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, err := mc.assembly.Draft()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := draft.SetType(mealType); err != nil {
		c.JSON(draftEditStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// Commit freezes the draft into the ledger, then recomputes today's
// summary for the live dashboard and the over-budget push.
func (mc *MealController) Commit(c *gin.Context) {
	ctx := c.Request.Context()

	draft, err := mc.assembly.Draft()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	imageRef := ""
	if draft.ImageData() != "" {
		imageRef, err = mc.images.StoreMealImage(ctx, draft.ImageData())
		if err != nil {
			// the meal record matters more than the photo
			log.Printf("meal image upload failed: %v", err)
			imageRef = ""
		}
	}

	meal, err := mc.assembly.Commit(ctx, imageRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary, err := mc.days.Today(ctx)
	if err == nil {
		mc.hub.BroadcastSummary(summary)
		wasOver := summary.ConsumedCalories-meal.TotalCalories > summary.TDEE
		if mc.push != nil && summary.OverBudget && !wasOver {
			mc.push.NotifyOverBudget(ctx, summary)
		}
	} else {
		log.Printf("summary refresh after commit failed: %v", err)
	}

	c.JSON(http.StatusCreated, meal)
}

func draftEditStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDraftCommitted):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
