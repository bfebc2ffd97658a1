package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"seazone/server/internal/database"
	"seazone/server/internal/notify"
)

func SetupRoutes(router *gin.Engine, db *database.Database, logger *logrus.Logger, notifier *notify.Queue) {
	handler := NewHandler(db, logger, notifier)

	properties := router.Group("/properties")
	{
		properties.POST("/", handler.CreateProperty)
		properties.GET("/", handler.ListProperties)
		properties.GET("/availability", handler.GetAvailability)
		properties.GET("/:id", handler.GetProperty)
		properties.PUT("/:id", handler.UpdateProperty)
		properties.DELETE("/:id", handler.DeleteProperty)
	}

	reservations := router.Group("/reservations")
	{
		reservations.POST("/", handler.CreateReservation)
		reservations.GET("/", handler.ListReservations)
		reservations.GET("/:id", handler.GetReservation)
		reservations.PUT("/:id", handler.UpdateReservation)
		reservations.DELETE("/:id", handler.CancelReservation)
	}
}
