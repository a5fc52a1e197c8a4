package database

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"paylink.io/paylink-social/internal/config"
	"paylink.io/paylink-social/pkg/log"
)

var (
	Postgres *gorm.DB
)

func Close(ctx context.Context) {

}

func InitPostgres(conf *config.DBCredential) {
	cli, err := gorm.Open(postgres.Open(conf.Dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatalf("connect to pg:%v", err)
	}
	Postgres = cli

	db, err := cli.DB()
	if err != nil {
		log.Fatalf("get pg conn:%v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("ping to pg:%v", err)
	}
	log.Info("Connected to postgres...")

	err = Postgres.AutoMigrate(
		&UserLinks{},
		&SendLinks{},
		&CreateLinks{},
		&VoteLinks{},
		&TallyLinks{},
	)
	if err != nil {
		log.Fatalf("autoMigrate tables:%v", err)
	}
}
