package storage

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Gopher0727/DailyQ/internal/models"
)

// InitPostgres 初始化 PostgreSQL 连接
// TranslateError 打开后唯一约束冲突会翻译成 gorm.ErrDuplicatedKey，
// 选题/答题/入组的并发竞争都靠它裁决
func InitPostgres(dsn string, maxIdleConns, maxOpenConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Printf("连接数据库失败: %v", err)
		return nil, err
	}

	// 获取底层 sql.DB 对象以设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("获取 sql.DB 失败: %v", err)
		return nil, err
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)

	// 自动迁移
	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.DailyQuestion{},
		&models.Group{},
		&models.GroupMember{},
		&models.Answer{},
	)
	if err != nil {
		log.Printf("模型迁移失败: %v", err)
		return nil, err
	}
	return db, nil
}

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(host, port, user, password, dbname string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)
}
