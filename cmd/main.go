package main

import (
	"context"
	"log"

	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
	"backend/storage"
	"backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ledger := storage.NewGormLedger(db)
	if err := ledger.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()

	images, err := utils.NewImageStore(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.CloudFrontURL)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}

	var push *services.PushService
	if cfg.SNSPlatformARN != "" {
		push, err = services.NewPushService(ctx, db, cfg.AWSRegion, cfg.SNSPlatformARN)
		if err != nil {
			log.Printf("push disabled: %v", err)
		}
	}

	analyzer := services.NewGeminiService(cfg.GeminiAPIKey)
	assembly := services.NewAssemblyService(ledger, analyzer)
	days := services.NewDayService(ledger)
	profiles := services.NewProfileService(ledger)
	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(routes.Deps{
		JWTSecret: cfg.JWTSecret,
		Profile:   controllers.NewProfileController(profiles, cfg.JWTSecret),
		Meals:     controllers.NewMealController(assembly, days, images, hub, push),
		Summary:   controllers.NewSummaryController(days),
		Realtime:  controllers.NewRealtimeController(hub),
		Device:    controllers.NewDeviceController(push),
	})

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
