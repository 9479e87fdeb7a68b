package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/nikmarin/jobboard/internal/config"
	"github.com/nikmarin/jobboard/internal/database"
	postgresrepo "github.com/nikmarin/jobboard/internal/repository/postgres"
	"github.com/nikmarin/jobboard/internal/service"
	"github.com/nikmarin/jobboard/internal/token"
	"github.com/nikmarin/jobboard/internal/transport/http/handlers"
	"github.com/nikmarin/jobboard/internal/transport/http/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Token issuer. A missing secret is fatal here, not at first login.
	tokens, err := token.NewIssuer(token.Config{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     cfg.AccessTokenExpiration,
		RefreshTTL:    cfg.RefreshTokenExpiration,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	jobRepo := postgresrepo.NewJobRepo(pool)
	categoryRepo := postgresrepo.NewCategoryRepo(pool)
	commentRepo := postgresrepo.NewCommentRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	jobService := service.NewJobService(jobRepo, userRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	commentService := service.NewCommentService(commentRepo, jobRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, userService)
	profileHandler := handlers.NewProfileHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Auth middleware
	auth := middleware.Auth(tokens)
	optAuth := middleware.OptionalAuth(tokens)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/users", authHandler.Register)
	mux.HandleFunc("POST /api/users/login", authHandler.Login)
	mux.HandleFunc("POST /api/users/refresh", authHandler.Refresh)
	mux.Handle("POST /api/users/logout", auth(http.HandlerFunc(authHandler.Logout)))

	// Current user
	mux.Handle("GET /api/user", auth(http.HandlerFunc(userHandler.Current)))
	mux.Handle("PUT /api/user", auth(http.HandlerFunc(userHandler.Update)))

	// Profiles
	mux.Handle("GET /api/profiles/{username}", optAuth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("POST /api/profiles/{username}/follow", auth(http.HandlerFunc(profileHandler.Follow)))
	mux.Handle("DELETE /api/profiles/{username}/follow", auth(http.HandlerFunc(profileHandler.Unfollow)))

	// Jobs
	mux.Handle("GET /api/jobs", optAuth(http.HandlerFunc(jobHandler.List)))
	mux.Handle("POST /api/jobs", auth(http.HandlerFunc(jobHandler.Create)))
	mux.Handle("GET /api/jobs/{slug}", optAuth(http.HandlerFunc(jobHandler.Get)))
	mux.Handle("PUT /api/jobs/{slug}", auth(http.HandlerFunc(jobHandler.Update)))
	mux.Handle("DELETE /api/jobs/{slug}", auth(http.HandlerFunc(jobHandler.Delete)))
	mux.Handle("POST /api/jobs/{slug}/favorite", auth(http.HandlerFunc(jobHandler.Favorite)))
	mux.Handle("DELETE /api/jobs/{slug}/favorite", auth(http.HandlerFunc(jobHandler.Unfavorite)))

	// Comments
	mux.HandleFunc("GET /api/jobs/{slug}/comments", commentHandler.List)
	mux.Handle("POST /api/jobs/{slug}/comments", auth(http.HandlerFunc(commentHandler.Create)))
	mux.Handle("DELETE /api/jobs/{slug}/comments/{id}", auth(http.HandlerFunc(commentHandler.Delete)))

	// Categories
	mux.HandleFunc("GET /api/categories", categoryHandler.List)
	mux.HandleFunc("GET /api/categories/{slug}", categoryHandler.Get)
	mux.Handle("POST /api/categories", auth(http.HandlerFunc(categoryHandler.Create)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(cfg.CORSOrigin, mux)))
}
