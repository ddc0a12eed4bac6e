package mysql

import (
	"errors"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the caller's domain sentinels.
// Duplicate detection relies on gorm.Config.TranslateError.
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey) && duplicate != nil:
		return duplicate
	}
	return err
}

func allRows(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true})
}

// missingOrChanged resolves a conditional update that touched no rows.
func missingOrChanged(db *gorm.DB, model any, id string, notFound, changed error) error {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return changed
}
