package router

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/controllers"
	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/kds"
	"github.com/faressmahmoud/DeliciousBites-RMS/middlewares"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Orders       *services.OrderService
	Reservations *services.ReservationService
	Staff        *services.StaffService
	Menu         *database.MenuStore
	Tokens       *utils.TokenManager
	Hub          *kds.Hub
	RateLimiter  *middlewares.RateLimiter
	CORSOrigin   string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.RateLimit())
	}

	orderController := controllers.NewOrderController(d.Orders)
	kitchenController := controllers.NewKitchenController(d.Orders)
	waiterController := controllers.NewWaiterController(d.Orders)
	deliveryController := controllers.NewDeliveryController(d.Orders)
	notificationController := controllers.NewNotificationController(d.Orders)
	adminController := controllers.NewAdminController(d.Orders)
	reservationController := controllers.NewReservationController(d.Reservations)
	userController := controllers.NewUserController(d.Staff)
	menuController := controllers.NewMenuController(d.Menu)
	kdsController := controllers.NewKDSController(d.Hub, d.CORSOrigin)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Real-time channel; role comes from the optional token
	r.GET("/ws", middlewares.WebSocketAuth(d.Tokens), kdsController.KDSHandler)

	// Public routes
	menu := r.Group("/menu")
	{
		menu.GET("", menuController.GetAllMenus)
		menu.GET("/:category", menuController.GetMenusByCategory)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", orderController.CreateOrder)
		orders.GET("/:id", orderController.GetOrder)
		orders.GET("/:id/tracking", orderController.TrackOrder)
		orders.GET("/user/:userId", orderController.GetUserOrders)
	}

	reservations := r.Group("/reservations")
	{
		reservations.POST("", reservationController.CreateReservation)
		reservations.GET("/:id", reservationController.GetReservation)
		reservations.GET("/user/:userId", reservationController.GetUserReservations)
	}

	staff := r.Group("/staff")
	{
		staff.POST("/register", userController.Register)
		staff.POST("/login", userController.Login)
	}

	// Staff routes
	auth := middlewares.AuthMiddleware(d.Tokens)

	session := r.Group("/staff", auth)
	{
		session.POST("/logout", userController.Logout)
		session.GET("/profile", userController.GetProfile)
	}

	kitchen := r.Group("/kitchen", auth, middlewares.RequireRole(models.RoleKitchen))
	{
		kitchen.GET("/orders", kitchenController.GetOrders)
		kitchen.PUT("/orders/:id/status", kitchenController.UpdateOrderStatus)
		kitchen.PUT("/order-items/:itemId/status", kitchenController.UpdateItemStatus)
	}

	waiter := r.Group("/waiter", auth, middlewares.RequireRole(models.RoleWaiter))
	{
		waiter.GET("/orders", waiterController.GetOrders)
		waiter.POST("/orders/:id/mark-served", waiterController.MarkServed)
	}

	delivery := r.Group("/delivery", auth, middlewares.RequireRole(models.RoleDelivery))
	{
		delivery.GET("/orders", deliveryController.GetOrders)
		delivery.GET("/orders/:id", deliveryController.GetOrder)
		delivery.POST("/orders/:id/verify", deliveryController.Verify)
		delivery.POST("/orders/:id/start-delivery", deliveryController.StartDelivery)
		delivery.POST("/orders/:id/deliver", deliveryController.Deliver)
		delivery.POST("/orders/:id/acknowledge", notificationController.Acknowledge)
		delivery.GET("/notifications", notificationController.GetNotifications)
	}

	// Address changes come from delivery staff or from reception taking a phone call.
	r.PUT("/delivery/orders/:id", auth, middlewares.RequireRole(models.RoleDelivery, models.RoleReception), deliveryController.UpdateOrder)

	reception := r.Group("/reservations", auth, middlewares.RequireRole(models.RoleReception))
	{
		reception.GET("", reservationController.GetAllReservations)
		reception.GET("/dine-in", reservationController.GetUpcoming)
		reception.PUT("/:id", reservationController.UpdateReservation)
		reception.DELETE("/:id", reservationController.DeleteReservation)
	}

	admin := r.Group("/admin", auth, middlewares.RequireRole(models.RoleManager))
	{
		admin.GET("/orders", adminController.GetOrders)
		admin.GET("/orders/summary", adminController.GetSummary)
		admin.GET("/orders/:id/history", adminController.GetHistory)
		admin.PUT("/orders/:id/status", adminController.UpdateStatus)
		admin.PUT("/orders/:id/paid", adminController.UpdatePaid)
		admin.POST("/orders/:id/cancel", adminController.CancelOrder)
		admin.GET("/revenue", adminController.GetRevenue)
		admin.GET("/transitions", adminController.GetTransitions)
	}

	return r
}
