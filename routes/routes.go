package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"bhojon-backend/handlers"
	"bhojon-backend/middleware"
)

// Pinger reports whether the database answers. *mongo.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type Deps struct {
	Users        *handlers.UserHandler
	Products     *handlers.ProductHandler
	Categories   *handlers.CategoryHandler
	Bookings     *handlers.BookingHandler
	Reservations *handlers.ReservationHandler
	Purchases    *handlers.PurchaseHandler

	DB          Pinger
	RateLimiter *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, d Deps) {
	handlers.RegisterValidators()

	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:   []string{middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.RateLimit())
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "System Server is running")
	})
	r.GET("/health", health(d.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── Users ─────────────────────────────────────────────────────
	r.POST("/api/register", d.Users.Register)
	r.POST("/api/login", d.Users.Login)
	r.GET("/users", d.Users.List)
	r.GET("/users/:email", d.Users.GetByEmail)
	r.PUT("/users/:id", d.Users.UpdateProfile)

	api := r.Group("/api")
	{
		// Catalogue
		api.GET("/products", d.Products.List)
		api.GET("/products/:id", d.Products.Get)
		api.POST("/products", d.Products.Create)
		api.PUT("/products/:id", d.Products.Update)
		api.DELETE("/products/:id", d.Products.Delete)

		api.GET("/categories", d.Categories.List)
		api.GET("/categories/:id", d.Categories.Get)
		api.POST("/categories", d.Categories.Create)
		api.PUT("/categories/:id", d.Categories.Update)
		api.DELETE("/categories/:id", d.Categories.Delete)

		// Orders
		api.GET("/bookings", d.Bookings.List)
		api.POST("/bookings", d.Bookings.Create)

		// Tables
		api.GET("/reservations/check", d.Reservations.Check)
		api.POST("/reservations", d.Reservations.Create)
	}

	// ── Admin ─────────────────────────────────────────────────────
	admin := r.Group("/api/admin")
	{
		admin.GET("/users", d.Users.List)
		admin.PUT("/users/:id", d.Users.AdminUpdate)
		admin.PATCH("/users/:id/role", d.Users.UpdateRole)
		admin.DELETE("/users/:id", d.Users.Delete)

		admin.GET("/bookings", d.Bookings.AdminList)
		admin.PATCH("/bookings/:id", d.Bookings.UpdateStatus)
		admin.DELETE("/bookings/:id", d.Bookings.Delete)
		admin.GET("/stats", d.Bookings.Stats)
		admin.GET("/latest-orders", d.Bookings.Latest)

		admin.GET("/reservations", d.Reservations.AdminList)
		admin.PATCH("/reservations/:id", d.Reservations.UpdateStatus)
		admin.DELETE("/reservations/:id", d.Reservations.Delete)
	}

	// ── Purchases ─────────────────────────────────────────────────
	purchases := r.Group("/purchases")
	{
		purchases.GET("", d.Purchases.List)
		purchases.POST("", d.Purchases.Create)
		purchases.GET("/:id", d.Purchases.Get)
		purchases.PUT("/:id", d.Purchases.Update)
		purchases.PATCH("/:id", d.Purchases.UpdateStatus)
		purchases.DELETE("/:id", d.Purchases.Delete)
	}
}

// health always answers 200; the database field says whether mongo is up.
func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := "connected"
		if db == nil {
			state = "unavailable"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx, readpref.Primary()); err != nil {
				middleware.Logger(c).WithError(err).Warn("health: database ping failed")
				state = "unavailable"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"status":   "healthy",
			"service":  "bhojon-backend",
			"database": state,
		})
	}
}
