package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsDir = "migrations"
	// migrationsTable 独立的版本表，与同库其他服务的 schema_migrations 互不干扰
	migrationsTable = "whereabouts_schema_migrations"
)

// RunMigrations 将 owners / vendors / vendor_schedules 迁移到最新版本
//
// 启动时调用；已是最新时只记录当前版本。dirty 状态直接报错，需人工 force 后再启动。
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	from, dirty, err := currentVersion(m)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("数据库迁移处于 dirty 状态（version=%d），请修复后重试", from)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("数据库结构已是最新", zap.Uint("version", from))
			return nil
		}
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	to, _, err := currentVersion(m)
	if err != nil {
		return err
	}
	logger.Info("数据库迁移完成", zap.Uint("from", from), zap.Uint("to", to))
	return nil
}

// currentVersion 读取当前版本；全新数据库视为版本 0
func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("读取迁移版本失败: %w", err)
	}
	return version, dirty, nil
}
