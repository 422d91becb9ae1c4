package initial

import (
	"fmt"
	"log"
	"os"
	"time"

	"ExpertBridge/internal/config"
	feedEntity "ExpertBridge/internal/modules/feed/domain/entity"
	"ExpertBridge/pkg/zlog"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

func init() {
	conf := config.GetConfig()
	if conf.MysqlConfig.Host == "" {
		zlog.Info("mysql not configured, skipping gorm init")
		return
	}

	dbName := conf.MysqlConfig.DatabaseName
	if dbName == "" {
		dbName = conf.AppName
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User, conf.MysqlConfig.Password, conf.MysqlConfig.Host, conf.MysqlConfig.Port, dbName)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var err error
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		zlog.Fatal(err.Error())
	}

	// Creates missing tables on first boot; content rows themselves are
	// written by the authoring services, not this one.
	err = GormDB.AutoMigrate(
		&feedEntity.Post{},
		&feedEntity.JobPosting{},
		&feedEntity.Vote{},
		&feedEntity.JobApplication{},
		&feedEntity.UserProfile{},
	)
	if err != nil {
		zlog.Fatal(err.Error())
	}
}
