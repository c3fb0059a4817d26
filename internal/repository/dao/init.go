package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&LayoutCanvas{},
		&Table{},
		&OrderGroup{},
		&Order{},
		&OrderItem{},
		&Guest{},
		&Account{},
		&Product{},
	)
	if err != nil {
		return err
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&LayoutCanvas{ID: canvasID}).Error
}
