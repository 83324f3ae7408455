package routes

import (
	"net/http"
	"time"

	"booko/internal/auth"
	"booko/internal/bookings"
	"booko/internal/movies"
	"booko/internal/notifications"
	"booko/internal/payments"
	"booko/internal/screens"
	"booko/internal/shared/config"
	"booko/internal/shared/database"
	"booko/internal/showtimes"
	"booko/internal/theaters"
	"booko/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer *notifications.Producer // nil when Kafka is disabled

	cacheService    cache.Service
	screenService   screens.Service
	showtimeService showtimes.Service
	bookingService  bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer *notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupMovieRoutes(api)
		r.setupTheaterRoutes(api)
		r.setupScreenRoutes(api)
		r.setupShowtimeRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "booko-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "booko-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo)
	if r.cacheService != nil {
		movieService.SetCacheService(r.cacheService)
	}
	movieController := movies.NewController(movieService)

	movies.SetupMovieRoutes(rg, movieController, r.config)
}

func (r *Router) setupTheaterRoutes(rg *gin.RouterGroup) {
	theaterRepo := theaters.NewRepository(r.db.GetPostgreSQL())
	theaterService := theaters.NewService(theaterRepo)
	theaterController := theaters.NewController(theaterService)

	theaters.SetupTheaterRoutes(rg, theaterController, r.config)
}

func (r *Router) setupScreenRoutes(rg *gin.RouterGroup) {
	screenRepo := screens.NewRepository(r.db.GetPostgreSQL())
	screenService := screens.NewService(screenRepo)
	if r.cacheService != nil {
		screenService.SetCacheService(r.cacheService)
	}
	screenController := screens.NewController(screenService)

	// Showtime availability derives from the screen layout
	r.screenService = screenService

	screens.SetupScreenRoutes(rg, screenController, r.config)
}

func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimeRepo)
	if r.cacheService != nil {
		showtimeService.SetCacheService(r.cacheService)
	}
	if r.screenService != nil {
		showtimeService.SetLayoutProvider(r.screenService)
	}
	showtimeController := showtimes.NewController(showtimeService)

	// The bookings wiring needs the reservation engine
	r.showtimeService = showtimeService

	showtimes.SetupShowtimeRoutes(rg, showtimeController, r.config)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.showtimeService)
	if r.producer != nil {
		bookingService.SetNotifier(r.producer)
	}
	bookingController := bookings.NewController(bookingService)

	// The payments wiring needs status propagation
	r.bookingService = bookingService

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}

func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	gateway := payments.NewSimulatedGateway(r.config.Payment.SuccessRate, r.config.Payment.GatewayLag)
	paymentService := payments.NewService(paymentRepo, r.bookingService, gateway)
	if r.producer != nil {
		paymentService.SetNotifier(r.producer)
	}
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController, r.config)
}
