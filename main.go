package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vmackland-source/TGRoom/config"
	"github.com/vmackland-source/TGRoom/controllers"
	"github.com/vmackland-source/TGRoom/logger"
	"github.com/vmackland-source/TGRoom/routes"
	"github.com/vmackland-source/TGRoom/sender"
	"github.com/vmackland-source/TGRoom/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	orderSvc := services.NewOrderService()

	// Notification channels are optional; a missing channel is skipped at
	// dispatch time rather than failing startup.
	var emailSender sender.EmailSender
	if sg, err := sender.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromEmail); err != nil {
		logger.Log.Warn("email channel disabled", zap.Error(err))
	} else {
		emailSender = sg
	}

	var smsSender sender.SMSSender
	if tw, err := sender.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber); err != nil {
		logger.Log.Warn("SMS channel disabled", zap.Error(err))
	} else {
		smsSender = tw
	}

	notifySvc := services.NewNotificationService(
		emailSender, smsSender,
		cfg.AdminNotifyEmail,
		cfg.SocialAddress, cfg.SocialCodeword,
		logger.Log,
	)

	uploadCtrl := &controllers.UploadController{Logger: logger.Log}
	if uploads, err := services.NewUploadService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder); err != nil {
		logger.Log.Warn("upload relay disabled", zap.Error(err))
	} else {
		uploadCtrl.Uploads = uploads
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	routes.RegisterRoutes(r,
		&controllers.CheckoutController{
			Orders:      orderSvc,
			Stripe:      stripeSvc,
			FrontendURL: cfg.FrontendURL,
			Logger:      logger.Log,
		},
		&controllers.WebhookController{
			Stripe:   stripeSvc,
			Notifier: notifySvc,
			Logger:   logger.Log,
		},
		uploadCtrl,
	)

	logger.Log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("server failed", zap.Error(err))
	}
}
