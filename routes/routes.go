package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Oshondoi/wb-service-sub000/controllers"
	"github.com/Oshondoi/wb-service-sub000/middlewares"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		authed := api.Group("/", middlewares.AuthMiddleware())

		businesses := authed.Group("/businesses")
		{
			businesses.GET("", controllers.BusinessList)
			businesses.POST("", controllers.BusinessCreate)
		}

		debts := authed.Group("/debts")
		{
			debts.GET("", controllers.DebtList)
			debts.GET("/summary", controllers.DebtSummary)
			debts.POST("", controllers.DebtCreate)
			debts.POST("/recalculate", controllers.DebtRecalculate)
			debts.PUT("/:id", controllers.DebtUpdate)
			debts.DELETE("/bulk", controllers.DebtBulkDelete)
			debts.DELETE("/:id", controllers.DebtDelete)
		}
	}
}
