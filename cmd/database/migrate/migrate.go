package migration

import (
	"Recipe-Marketplace/entities"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

var defaultCategories = []entities.Category{
	{Name: "Library", Position: 1},
	{Name: "Marketplace", Position: 2},
}

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Errorf("error migrating user table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Post{}); err != nil {
		log.Errorf("error migrating post table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserLocation{}); err != nil {
		log.Errorf("error migrating user location table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Errorf("error migrating category table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Slider{}); err != nil {
		log.Errorf("error migrating slider table: %v", err)
		return err
	}

	for _, category := range defaultCategories {
		c := category
		if err := db.Where(entities.Category{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
			log.Errorf("error seeding category %s: %v", c.Name, err)
			return err
		}
	}

	log.Info("database migration complete")
	return nil
}
