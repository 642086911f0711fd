package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/pythonwiki/wikimig/internal/authproxy"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	clientID := os.Getenv("GITHUB_CLIENT_ID")
	clientSecret := os.Getenv("GITHUB_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET must be set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := authproxy.NewServer(clientID, clientSecret)
	r := srv.SetupRouter()

	log.Printf("Starting OAuth proxy on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
