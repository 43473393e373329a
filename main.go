package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Oshondoi/wb-service-sub000/config"
	"github.com/Oshondoi/wb-service-sub000/middlewares"
	"github.com/Oshondoi/wb-service-sub000/models"
	"github.com/Oshondoi/wb-service-sub000/routes"
	"github.com/Oshondoi/wb-service-sub000/utils"
)

func main() {
	// .env is optional; env vars win either way
	_ = godotenv.Load()

	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.Account{},
		&models.Business{},
		&models.LedgerEntry{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.SecretKey = []byte(s)
	}

	r := gin.Default()
	r.Use(middlewares.RequestID())
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "seller back-office API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
