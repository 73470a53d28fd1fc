package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"campus-backend/bootstrap"
	"campus-backend/config"
	"campus-backend/database"
	"campus-backend/internal/handlers"
	"campus-backend/internal/mailer"
	"campus-backend/internal/repository"
	"campus-backend/internal/routes"
	"campus-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	db := client.Database(cfg.MongoDB)
	if err := bootstrap.EnsureIndexes(db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	postFiles, err := storage.NewSaver(filepath.Join(cfg.UploadDir, "posts"), "/uploads/posts")
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}
	userImages, err := storage.NewSaver(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	mail := mailer.New(cfg.SMTPAddr, cfg.SMTPFrom, cfg.BaseURL)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Static("/uploads", cfg.UploadDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Campus API is running")
	})

	routes.Register(app, routes.Deps{
		Courses: &handlers.CourseHandler{Repo: repository.NewCourseRepository(db)},
		Posts:   &handlers.PostHandler{Repo: repository.NewPostRepository(db), Files: postFiles},
		Users: &handlers.UserHandler{
			Repo:   repository.NewUserRepository(db),
			Images: userImages,
			Mail:   mail,
		},
	})

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := database.Disconnect(client); err != nil {
		log.Printf("disconnect: %v", err)
	}
	log.Println("MongoDB connection closed")
}
