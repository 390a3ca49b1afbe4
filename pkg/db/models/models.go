package models

// All lists every model registered with AutoMigrate at boot.
func All() []any {
	return []any{
		&Category{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Promotion{},
		&Certificate{},
		&User{},
	}
}
