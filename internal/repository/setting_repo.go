package repository

import (
	"errors"

	"go-storage-hub/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	Get(key string) (string, error)
	GetOrDefault(key, fallback string) string
	Set(key, value string, updatedBy string) error
	FindAll() ([]model.SystemSetting, error)
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Get(key string) (string, error) {
	var setting model.SystemSetting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (r *settingRepo) GetOrDefault(key, fallback string) string {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	return value
}

// Set upserts the setting inside a transaction so concurrent writers cannot
// race the read-then-write.
func (r *settingRepo) Set(key, value string, updatedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var setting model.SystemSetting
		err := tx.Set("gorm:query_option", "FOR UPDATE").Where("key = ?", key).First(&setting).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = model.SystemSetting{Key: key, Value: value}
			setting.CreatedBy = updatedBy
			setting.UpdatedBy = updatedBy
			return tx.Create(&setting).Error
		}
		if err != nil {
			return err
		}
		setting.Value = value
		setting.UpdatedBy = updatedBy
		return tx.Save(&setting).Error
	})
}

func (r *settingRepo) FindAll() ([]model.SystemSetting, error) {
	var settings []model.SystemSetting
	err := r.db.Order("key ASC").Find(&settings).Error
	return settings, err
}
