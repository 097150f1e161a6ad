// @title MediaVault DAM
// @version 0.1
// @description Digital asset management backend with versioned, admin-approved asset revisions.

// @host localhost:8080
// @BasePath /
// @query.collection.format multi
// @schemes http

package main

import (
	"log"

	"mediavault/dam_backend/internal/app"
	"mediavault/dam_backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	app.Run(cfg)
}
