package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Oshondoi/wb-service-sub000/config"
	"github.com/Oshondoi/wb-service-sub000/models"
	"github.com/Oshondoi/wb-service-sub000/utils"
)

// GET /api/businesses
func BusinessList(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var rows []models.Business
	if err := config.DB.Where("account_id = ?", aid).Order("id ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Success(c, gin.H{"items": rows})
}

// POST /api/businesses
func BusinessCreate(c *gin.Context) {
	aid, err := currentAccountID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		utils.Error(c, http.StatusBadRequest, "name is required")
		return
	}

	business := models.Business{AccountID: aid, Name: strings.TrimSpace(input.Name)}
	if err := config.DB.Create(&business).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Success(c, gin.H{"item": business})
}
