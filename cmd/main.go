package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/what2eat/what2eat-api/docs" // Import generated docs
	"github.com/what2eat/what2eat-api/internal/config"
	"github.com/what2eat/what2eat-api/internal/controllers"
	"github.com/what2eat/what2eat-api/internal/database"
	"github.com/what2eat/what2eat-api/internal/middleware"
	"github.com/what2eat/what2eat-api/internal/models"
	"github.com/what2eat/what2eat-api/internal/repositories"
	"github.com/what2eat/what2eat-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db             *gorm.DB
	dishController controllers.DishController
	configuration  *config.Config
)

// @title What to Eat API
// @version 1.0
// @description A CRUD backend for a catalog of dishes organized into collections
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	db = setupDatabase(configuration)

	// Assemble the request pipeline: repository -> service -> controller
	dishRepository := repositories.NewDishRepository(db)
	dishService := services.NewDishService(dishRepository)
	dishController = controllers.NewDishController(dishService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and creates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	conn, err := database.InitDatabase(database.DatabaseConfig{
		Driver:              conf.DBDriver,
		Host:                conf.DBHost,
		Port:                conf.DBPort,
		User:                conf.DBUser,
		Password:            conf.DBPassword,
		Name:                conf.DBName,
		SSLMode:             conf.DBSSLMode,
		Path:                conf.SQLitePath,
		MaxOpenConns:        conf.DBMaxOpenConns,
		MaxIdleConns:        conf.DBMaxIdleConns,
		ConnMaxLifetimeMins: conf.DBConnMaxLifetime,
	})
	checkPanicErr(err)

	// Register the explicit join table before migrating so the composite
	// primary key is created as declared
	checkPanicErr(conn.SetupJoinTable(&models.Collection{}, "Dishes", &models.CollectionDishLink{}))
	checkPanicErr(conn.SetupJoinTable(&models.Dish{}, "Collections", &models.CollectionDishLink{}))
	checkPanicErr(conn.AutoMigrate(&models.Dish{}, &models.Collection{}))

	return conn
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.New()

	// Global middleware: recovery and error mapping wrap everything so
	// every exit path produces a well-formed response
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler(middleware.DefaultStatusMapping()))

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		dishes := v1.Group("/dishes")
		if configuration.AuthEnabled {
			// Reserved auth integration: mutating routes require a token
			// when enabled. Off by default; dish routes stay public.
			dishes.POST("", middleware.JWTAuth([]byte(configuration.JWTSecret)), dishController.CreateDish)
			dishes.PATCH("/:id", middleware.JWTAuth([]byte(configuration.JWTSecret)), dishController.UpdateDish)
			dishes.DELETE("/:id", middleware.JWTAuth([]byte(configuration.JWTSecret)), dishController.DeleteDish)
		} else {
			dishes.POST("", dishController.CreateDish)
			dishes.PATCH("/:id", dishController.UpdateDish)
			dishes.DELETE("/:id", dishController.DeleteDish)
		}
		dishes.GET("", dishController.ListDishes)
		dishes.GET("/:id", dishController.GetDishByID)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "what2eat-api",
	})
}
