package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storeops/retaildesk/controllers"
	"github.com/storeops/retaildesk/middleware"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1")
	{
		api.POST("/auth/login", controllers.StaffLogin)

		// Returns desk routes, any authenticated staff member
		staff := api.Group("")
		staff.Use(middleware.AuthMiddleware())
		{
			staff.POST("/returns", controllers.CreateReturn)
			staff.GET("/returns", controllers.ListReturns)
			staff.GET("/returns/:id", controllers.GetReturnDetails)
			staff.GET("/store-credits", controllers.ListStoreCredits)
			staff.GET("/store-credits/:id/transactions", controllers.GetStoreCreditTransactions)
		}

		// Review and reporting routes, managers only
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.ManagerMiddleware())
		{
			admin.PUT("/returns/:id/approve", controllers.ApproveReturn)
			admin.PUT("/returns/:id/reject", controllers.RejectReturn)
			admin.PUT("/returns/:id/complete", controllers.CompleteReturn)
			admin.GET("/returns/stats", controllers.GetReturnStats)
			admin.GET("/returns/report/excel", controllers.DownloadReturnsReportExcel)
			admin.GET("/returns/report/pdf", controllers.DownloadReturnsReportPDF)
			admin.POST("/store-credits", controllers.IssueStoreCredit)
			admin.POST("/store-credits/:id/transactions", controllers.RecordStoreCreditTransaction)
		}
	}

	return router
}
