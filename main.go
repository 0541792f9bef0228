package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"pereval/database"
	"pereval/routes"
)

func main() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	if err := database.Connect(); err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(requestID())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	routes.Register(r)

	port := getenv("PORT", "8000")
	log.Printf("API listening on :%s", port)
	log.Fatal(r.Run(":" + port))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// requestID stamps every response so a failed submission can be traced in
// the logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
