package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Oshondoi/wb-service-sub000/config"
	"github.com/Oshondoi/wb-service-sub000/models"
	"github.com/Oshondoi/wb-service-sub000/utils"
)

func Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || len(input.Password) < 6 {
		utils.Error(c, http.StatusBadRequest, "email and a password of at least 6 characters are required")
		return
	}

	var existing models.Account
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.Error(c, http.StatusBadRequest, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	account := models.Account{Email: input.Email, Password: string(hash), Name: input.Name}
	if err := config.DB.Create(&account).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := utils.GenerateToken(account.ID, account.Email)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	utils.Success(c, gin.H{"token": token})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var account models.Account
	if err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).
		First(&account).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "unknown email")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "wrong password")
		return
	}

	token, err := utils.GenerateToken(account.ID, account.Email)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	utils.Success(c, gin.H{"token": token})
}
