// Package model holds the GORM table mappings.
package model

// All lists every table model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&ProfileModel{},
		&FoodItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&NotificationModel{},
	}
}
