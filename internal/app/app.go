package app

import (
	"log"

	"mediavault/dam_backend/internal/config"
	"mediavault/dam_backend/internal/handler"
	"mediavault/dam_backend/internal/repository"
	"mediavault/dam_backend/internal/service"
	"mediavault/dam_backend/internal/ws"
)

func Run(cfg *config.Config) {
	db, err := repository.NewDB(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	var urlCache repository.URLCacheRepository
	if cfg.RedisAddr != "" {
		urlCache = repository.NewURLCacheRepository(repository.NewRedisClient(cfg.RedisAddr))
	}

	fileStore, err := service.NewS3Service(cfg, urlCache)
	if err != nil {
		log.Fatal(err)
	}

	reviewHub := ws.NewReviewHub()

	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	assetRepo := repository.NewAssetRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	assetService := service.NewAssetService(assetRepo, taxonomyRepo, fileStore)
	assetHandler := handler.NewAssetHandler(assetService)

	versionService := service.NewVersionService(versionRepo, assetRepo, taxonomyRepo, fileStore, reviewHub)
	versionHandler := handler.NewVersionHandler(versionService, reviewHub)

	server := NewServer(userHandler, assetHandler, versionHandler)
	server.Run(cfg.ServerPort)
}
