package data

import (
	"fmt"

	"github.com/yunbow/line-faq-bot/src/types"
	"gorm.io/gorm"
)

// Settings is a snapshot of the settings table.
type Settings struct {
	values map[string]string
}

// LoadSettings reads every row of the settings table.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var rows []types.Setting
	if err := db.Find(&rows).Error; err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return NewSettings(rows), nil
}

func NewSettings(rows []types.Setting) Settings {
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Name] = r.Value
	}
	return Settings{values: values}
}

// Get returns the named value, or "" when unset.
func (s Settings) Get(name string) string {
	return s.values[name]
}
