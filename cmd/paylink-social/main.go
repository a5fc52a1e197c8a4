package main

import (
	"context"
	"time"

	"paylink.io/paylink-social/internal/cache"
	"paylink.io/paylink-social/internal/config"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/internal/databus"
	"paylink.io/paylink-social/internal/discord"
	"paylink.io/paylink-social/internal/http"
	"paylink.io/paylink-social/internal/starter"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

func main() {
	log.Infof("Starting app")
	startApp()
}

func startApp() {
	defer func() {
		if i := recover(); i != nil {
			log.Fatal(errors.ErrorfAndReport("%v", i))
		}
	}()
	log.SetLevel(0)
	config.Read()
	if err := errors.NewSentryReporter(config.Global.SentryDSN); err != nil {
		log.Error(err)
	}
	errors.NewLarkReporter(config.Global.LarkAlarmWebhook, time.Minute)
	ctx := context.Background()
	database.InitPostgres(&config.Global.Postgres)
	defer database.Close(ctx)
	databus.InitDataBus(config.Global.KafkaServer)
	cache.Init(&config.Global.RedisCredential)
	defer cache.Close()

	starter.Start(ctx,
		discord.NewTransferNotifier(),
	)
	defer starter.Stop()

	go http.NewServer()
	discord.SetupBot(ctx, &config.Global.DiscordBot)
}
