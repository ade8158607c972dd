package data

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yunbow/line-faq-bot/src/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var allModels = []interface{}{
	&types.Subscriber{}, &types.FAQEntry{}, &types.Setting{},
}

// ConnectMySQL opens a gorm DB with sane defaults.
func ConnectMySQL(dsn string) (*gorm.DB, error) {
	dsn = ensureParam(dsn, "parseTime", "true")
	if !strings.Contains(dsn, "charset=") {
		dsn = ensureParam(dsn, "charset", "utf8mb4")
		dsn = ensureParam(dsn, "collation", "utf8mb4_unicode_ci")
	}

	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{SlowThreshold: time.Second, LogLevel: logger.Warn, IgnoreRecordNotFoundError: true, Colorful: false},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the bot tables. The FAQ and settings tables are
// recreated when auto-migration fails; subscriber rows are never dropped.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(allModels...)
	if err == nil {
		return nil
	}

	log.Printf("auto-migrate failed (%v) - dropping & recreating faq/settings", err)
	_ = db.Migrator().DropTable("faq", "settings")
	if err := db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("migrate after drop: %w", err)
	}
	return nil
}

func ensureParam(dsn, key, val string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + val
}
