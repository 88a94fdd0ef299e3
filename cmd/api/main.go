package main

import (
	"os"

	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(); err != nil {
		logger.Error("api server stopped with error", err)
		os.Exit(1)
	}
}
