package migration

import (
	"pantry-manager/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() backs every primary key default
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		log.Errorf("error creating uuid-ossp extension: %v", err)
		return err
	}

	models := []struct {
		name  string
		model any
	}{
		{"pantry item", &entities.PantryItem{}},
		{"shopping list item", &entities.ShoppingListItem{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"recipe note", &entities.RecipeNote{}},
		{"favorite recipe", &entities.FavoriteRecipe{}},
		{"cooked recipe", &entities.CookedRecipe{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Errorf("error migrating %s table: %v", m.name, err)
			return err
		}
	}

	log.Info("database migration complete")
	return nil
}
