package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelier-rental-ledger/internal/api_gateway/handler"
	"github.com/atelier-rental-ledger/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	itemHandler *handler.ItemHandler,
	clientHandler *handler.ClientHandler,
	bookingHandler *handler.BookingHandler,
	paymentHandler *handler.PaymentHandler,
	staffHandler *handler.StaffHandler,
	scanHandler *handler.ScanHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.StaffID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Inventory operations
		items := v1.Group("/items")
		{
			items.POST("", itemHandler.Create)
			items.GET("", itemHandler.List)
			items.GET("/qr/:code", itemHandler.GetByQRCode)
			items.GET("/:id", itemHandler.GetByID)
			items.PUT("/:id", itemHandler.Update)
			items.DELETE("/:id", itemHandler.Delete)
			items.POST("/:id/archive", itemHandler.Archive)
			items.GET("/:id/availability", itemHandler.CheckAvailability)
			items.GET("/:id/bookings", bookingHandler.ListByItem)
		}

		// Client registry operations
		clients := v1.Group("/clients")
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/search", clientHandler.FindByPhone)
			clients.GET("/:id", clientHandler.GetByID)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
		}

		// Booking operations
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.Create)
			bookings.GET("", bookingHandler.List)
			bookings.GET("/active", bookingHandler.ListActive)
			bookings.GET("/unpaid", bookingHandler.ListUnpaid)
			bookings.GET("/:id", bookingHandler.GetByID)
			bookings.PUT("/:id", bookingHandler.Update)
			bookings.DELETE("/:id", bookingHandler.Delete)
			bookings.GET("/:id/payments", paymentHandler.ListByBooking)
		}

		// Payment ledger operations
		payments := v1.Group("/payments")
		{
			payments.POST("", paymentHandler.Record)
			payments.GET("", paymentHandler.ListRecent)
			payments.GET("/:id", paymentHandler.GetByID)
			payments.PUT("/:id", paymentHandler.Amend)
			payments.DELETE("/:id", paymentHandler.Void)
		}

		// Staff and shift operations
		staff := v1.Group("/staff")
		{
			staff.POST("", staffHandler.Create)
			staff.GET("", staffHandler.List)
			staff.GET("/:id", staffHandler.GetByID)
			staff.PUT("/:id", staffHandler.Update)
			staff.POST("/:id/check-in", staffHandler.CheckIn)
			staff.POST("/:id/check-out", staffHandler.CheckOut)
			staff.GET("/:id/shifts", staffHandler.ListShiftsByStaff)
		}
		v1.GET("/shifts", staffHandler.ListShifts)

		// QR interest scans
		v1.POST("/scans", scanHandler.Submit)

		// Back-office maintenance
		admin := v1.Group("/admin")
		{
			admin.POST("/reconcile-booking-counts", itemHandler.ReconcileBookingCounts)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
