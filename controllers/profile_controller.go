package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backend/models"
	"backend/nutrition"
	"backend/services"
	"backend/storage"
	"backend/utils"
)

type ProfileController struct {
	profiles  *services.ProfileService
	jwtSecret []byte
}

func NewProfileController(profiles *services.ProfileService, jwtSecret []byte) *ProfileController {
	return &ProfileController{profiles: profiles, jwtSecret: jwtSecret}
}

type profileInput struct {
	Name     string  `json:"name" binding:"required"`
	Age      int     `json:"age" binding:"required"`
	Gender   string  `json:"gender" binding:"required"`
	Goal     string  `json:"goal" binding:"required"`
	HeightCm float64 `json:"height_cm" binding:"required"`
	WeightKg float64 `json:"weight_kg" binding:"required"`
}

func (in profileInput) toService() (services.ProfileInput, error) {
	gender, err := models.ParseGender(in.Gender)
	if err != nil {
		return services.ProfileInput{}, err
	}
	goal, err := models.ParseGoal(in.Goal)
	if err != nil {
		return services.ProfileInput{}, err
	}
	return services.ProfileInput{
		Name:     in.Name,
		Age:      in.Age,
		Gender:   gender,
		Goal:     goal,
		HeightCm: in.HeightCm,
		WeightKg: in.WeightKg,
	}, nil
}

func profileResponse(p *models.UserProfile) gin.H {
	resp := gin.H{
		"profile":      p,
		"gender_label": p.Gender.Label(),
		"goal_label":   p.Goal.Label(),
	}
	if bmi, err := nutrition.BMI(p.HeightCm, p.WeightKg); err == nil {
		resp["bmi"] = bmi
		resp["bmi_category"] = nutrition.BMICategory(bmi)
	}
	return resp
}

// Onboard creates the singleton profile and issues the device token.
func (pc *ProfileController) Onboard(c *gin.Context) {
	var in profileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := pc.profiles.Get(c.Request.Context()); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already onboarded; use PUT /user/profile"})
		return
	} else if !errors.Is(err, storage.ErrNoProfile) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	svcIn, err := in.toService()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := pc.profiles.Save(c.Request.Context(), svcIn)
	if err != nil {
		c.JSON(saveStatus(err), gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateDeviceToken(pc.jwtSecret, uuid.NewString())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := profileResponse(profile)
	resp["token"] = token
	c.JSON(http.StatusCreated, resp)
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile, err := pc.profiles.Get(c.Request.Context())
	if errors.Is(err, storage.ErrNoProfile) {
		c.JSON(http.StatusNotFound, gin.H{"error": "onboarding not completed"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}

// UpdateProfile replaces the profile wholesale and re-derives TDEE.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var in profileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svcIn, err := in.toService()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := pc.profiles.Save(c.Request.Context(), svcIn)
	if err != nil {
		c.JSON(saveStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}

// saveStatus maps rejected input to 400 and storage failures to 500.
func saveStatus(err error) int {
	if errors.Is(err, services.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
