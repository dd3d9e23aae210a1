package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goboard/internal/auth"
	"goboard/internal/config"
	"goboard/internal/database"
	"goboard/internal/mailer"
	"goboard/internal/session"
	"goboard/internal/store"
	"goboard/internal/web"

	"github.com/gorilla/handlers"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Initialization error: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from DB: %v", err)
		}
	}()

	userCol := database.UserCollection(client, cfg.MongoDB)
	topicCol := database.TopicCollection(client, cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, userCol, topicCol); err != nil {
		log.Fatalf("Index setup error: %v", err)
	}

	authSvc := auth.NewService(
		store.NewUsers(userCol),
		auth.NewBcryptHasher(),
		mailer.NewSMTP(cfg.SMTPServer, cfg.SMTPUser, cfg.SMTPPassword),
		cfg.BaseURL,
	)
	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Template error: %v", err)
	}
	handler := web.NewHandler(
		authSvc,
		store.NewTopics(topicCol),
		session.NewManager(cfg.SessionSecret),
		renderer,
		cfg.AdminPassword,
	)

	loggedRouter := handlers.LoggingHandler(os.Stdout, handler.Router())

	addr := ":" + cfg.Port
	srv := &http.Server{
		Handler:      loggedRouter,
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on http://localhost%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting gracefully.")
}
