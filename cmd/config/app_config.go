package config

import (
	"Recipe-Marketplace/internal/api/handlers"
	"Recipe-Marketplace/internal/api/routes"
	"Recipe-Marketplace/internal/middleware"
	"Recipe-Marketplace/internal/utils"
	"Recipe-Marketplace/internal/utils/mailing"
	"Recipe-Marketplace/internal/utils/storage"
	"Recipe-Marketplace/pkg/geocode"
	"Recipe-Marketplace/pkg/jwt"
	"Recipe-Marketplace/pkg/location"
	"Recipe-Marketplace/pkg/post"
	"Recipe-Marketplace/pkg/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
	"os"
	"strconv"
	"time"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		log.Errorf("error creating logs directory: %v", err)
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Errorf("error opening file: %v", err)
		return nil, err
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	debounceMS, err := strconv.Atoi(utils.GetConfig("GEOCODE_DEBOUNCE_MS"))
	if err != nil || debounceMS < 0 {
		debounceMS = 500
	}
	geocoder := geocode.NewNominatim(utils.GetConfig("GEOCODER_URL"))
	debouncer := geocode.NewDebouncer(time.Duration(debounceMS) * time.Millisecond)
	app.Hooks().OnShutdown(func() error {
		debouncer.Close()
		return file.Close()
	})

	// Repository
	userRepository := user.NewUserRepository(db)
	postRepository := post.NewPostRepository(db)
	locationRepository := location.NewLocationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	postService := post.NewPostService(postRepository, s3, mailing.SendMailReplyTo)
	locationService := location.NewLocationService(
		locationRepository,
		postRepository,
		userRepository,
		geocoder,
		debouncer,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	postHandler := handlers.NewPostHandler(postService, validator)
	mapHandler := handlers.NewMapHandler(locationService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		PostHandler:   postHandler,
		MapHandler:    mapHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
		SessionLoader: userService,
	}
	routesConfig.Setup()
	return app, nil
}
