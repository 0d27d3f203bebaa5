package routes

import (
	"catering/configs"
	"catering/controllers"
	"catering/middlewares"
	"catering/repository"
	"catering/rules"
	"catering/services"
	"catering/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer is built from.
type Deps struct {
	DB     *gorm.DB
	Config *configs.Config
	Env    *services.RuleEnv
	Hub    *ws.RulesHub // nil disables /ws/rules
	Log    zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(d.Config.CORSOrigins...))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	paymentRepo := repository.NewPaymentRepository(d.DB)
	reservationRepo := repository.NewReservationRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	clientRepo := repository.NewClientRepository(d.DB)
	venueRepo := repository.NewVenueRepository(d.DB)

	var notify func(rules.RuleConfig)
	if d.Hub != nil {
		notify = d.Hub.BroadcastRules
	}

	// Controllers
	authCtrl := controllers.NewAuthController(services.NewAuthService(userRepo, d.Config.JWTSecret, d.Config.JWTTTL))
	menuCtrl := controllers.NewMenuController(services.NewMenuService(menuRepo, d.Env, d.Config.DemoMode))
	paymentCtrl := controllers.NewPaymentController(services.NewPaymentService(paymentRepo, reservationRepo, d.Env))
	reservationCtrl := controllers.NewReservationController(services.NewReservationService(reservationRepo, clientRepo, menuRepo, d.Env))
	reviewCtrl := controllers.NewReviewController(services.NewReviewService(reviewRepo, clientRepo, venueRepo, d.Env))
	dirCtrl := controllers.NewDirectoryController(services.NewDirectoryService(clientRepo, venueRepo, d.Env))
	ruleCtrl := controllers.NewRuleController(services.NewRuleService(d.Env, notify))
	demoCtrl := controllers.NewDemoUserController(services.NewDemoUserService())

	authed := middlewares.AuthMiddleware(d.Config.JWTSecret, rules.RoleClient)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", authed, authCtrl.Me)
	}

	menus := r.Group("/menus", authed)
	{
		menus.GET("", menuCtrl.List)
		menus.GET("/metrics", menuCtrl.Metrics)
		menus.GET("/:id", menuCtrl.Get)
		menus.POST("", menuCtrl.Create)
		menus.PUT("/:id", menuCtrl.Update)
		menus.DELETE("/:id", menuCtrl.Delete)
	}

	payments := r.Group("/payments", authed)
	{
		payments.GET("", paymentCtrl.List)
		payments.GET("/:id", paymentCtrl.Get)
		payments.POST("", paymentCtrl.Create)
		payments.PUT("/:id", paymentCtrl.Update)
		payments.DELETE("/:id", paymentCtrl.Delete)
	}

	reservations := r.Group("/reservations", authed)
	{
		reservations.GET("", reservationCtrl.List)
		reservations.GET("/:id", reservationCtrl.Get)
		reservations.POST("", reservationCtrl.Create)
		reservations.PUT("/:id", reservationCtrl.Update)
		reservations.PATCH("/:id/status", reservationCtrl.UpdateStatus)
		reservations.POST("/:id/cancel", reservationCtrl.Cancel)
		reservations.DELETE("/:id", reservationCtrl.Delete)
	}

	reviews := r.Group("/reviews", authed)
	{
		reviews.GET("", reviewCtrl.List)
		reviews.POST("", reviewCtrl.Create)
		reviews.PUT("/:id", reviewCtrl.Update)
		reviews.DELETE("/:id", reviewCtrl.Delete)
	}

	clients := r.Group("/clients", authed)
	{
		clients.GET("", dirCtrl.Clients)
		clients.GET("/:id", dirCtrl.Client)
		clients.POST("", dirCtrl.CreateClient)
		clients.PUT("/:id", dirCtrl.UpdateClient)
		clients.DELETE("/:id", dirCtrl.DeleteClient)
	}

	venues := r.Group("/venues", authed)
	{
		venues.GET("", dirCtrl.Venues)
		venues.GET("/:id", dirCtrl.Venue)
		venues.POST("", dirCtrl.CreateVenue)
		venues.PUT("/:id", dirCtrl.UpdateVenue)
		venues.DELETE("/:id", dirCtrl.DeleteVenue)
	}

	r.GET("/rules", authed, ruleCtrl.Get)
	r.PUT("/rules", authed, ruleCtrl.Update)

	if d.Hub != nil {
		r.GET("/ws/rules", middlewares.WSAuthMiddleware(d.Config.JWTSecret), d.Hub.HandleWebSocket)
	}

	// standalone in-memory sample, no auth
	api := r.Group("/api")
	{
		api.GET("/users", demoCtrl.List)
		api.POST("/users", demoCtrl.Create)
	}

	r.NoRoute(controllers.NotFound)
}
