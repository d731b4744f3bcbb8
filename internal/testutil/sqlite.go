// Package testutil 提供单元测试共用的内存数据库。
package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"whereabouts/backend/internal/model"
)

// sqliteSchema 与 pkg/database/migrations 的表结构一一对应（sqlite 方言）。
//
// 不用 AutoMigrate：Vendor.Owner / VendorSchedule.Vendor 的外键列与对方主键同名，
// gorm 会把关联推断成 has-one，生成方向相反的外键。
var sqliteSchema = []string{
	`CREATE TABLE owners (
		owner_id         uuid PRIMARY KEY,
		external_subject varchar(128) NOT NULL,
		display_name     varchar(64)  NOT NULL,
		email            varchar(120),
		picture_url      varchar(256),
		created_at       datetime NOT NULL,
		updated_at       datetime NOT NULL,
		CONSTRAINT uk_owners_external_subject UNIQUE (external_subject)
	)`,
	`CREATE TABLE vendors (
		vendor_id  uuid PRIMARY KEY,
		name       varchar(64) NOT NULL,
		link       varchar(120),
		owner_id   uuid NOT NULL REFERENCES owners (owner_id),
		created_at datetime NOT NULL,
		updated_at datetime NOT NULL,
		CONSTRAINT uk_vendors_name UNIQUE (name)
	)`,
	`CREATE INDEX idx_vendors_owner_id ON vendors (owner_id)`,
	`CREATE TABLE vendor_schedules (
		schedule_id uuid PRIMARY KEY,
		vendor_id   uuid NOT NULL REFERENCES vendors (vendor_id) ON DELETE CASCADE,
		start_date  date NOT NULL,
		end_date    date NOT NULL,
		start_time  time NOT NULL,
		end_time    time NOT NULL,
		latitude    real,
		longitude   real,
		address     text,
		created_at  datetime NOT NULL,
		updated_at  datetime NOT NULL
	)`,
	`CREATE INDEX idx_vendor_schedules_vendor_id ON vendor_schedules (vendor_id)`,
	`CREATE INDEX idx_vendor_schedules_date_range ON vendor_schedules (start_date, end_date)`,
}

// NewDB 打开一个开启外键约束的 sqlite 内存库并建表。
//
// 连接池固定为单连接：每个 :memory: 连接都是独立的空库。
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("打开 sqlite 失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("建表失败: %v", err)
		}
	}
	return db
}

// SeedOwner 写入一个摊主
func SeedOwner(t testing.TB, db *gorm.DB, subject, name, email string) *model.Owner {
	t.Helper()
	owner := &model.Owner{
		ExternalSubject: subject,
		DisplayName:     name,
		Email:           email,
	}
	if err := db.WithContext(context.Background()).Create(owner).Error; err != nil {
		t.Fatalf("创建摊主失败: %v", err)
	}
	return owner
}

// Date 构造 UTC 零点
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
