package initial

import (
	"fmt"
	"log"
	"os"
	"time"

	"AssistHub/internal/config"
	assistanceEntity "AssistHub/internal/modules/assistance/domain/entity"
	userEntity "AssistHub/internal/modules/user/domain/entity"
	"AssistHub/pkg/zlog"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

func init() {
	conf := config.GetConfig()
	zlog.Init(conf.LogConfig.LogPath)

	databaseName := conf.MysqlConfig.DatabaseName
	if databaseName == "" {
		databaseName = conf.MainConfig.AppName
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User, conf.MysqlConfig.Password,
		conf.MysqlConfig.Host, conf.MysqlConfig.Port, databaseName)

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
	err = GormDB.AutoMigrate(
		&userEntity.User{},
		&assistanceEntity.AssistanceType{},
		&assistanceEntity.Feature{},
		&assistanceEntity.Course{},
		&assistanceEntity.CommunicationObject{},
		&assistanceEntity.Disconnect{},
	)
	if err != nil {
		zlog.Fatal(err.Error())
	}
}
