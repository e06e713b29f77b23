package models

// ===========================================================================
// Models Index
// Feeds database.AutoMigrate so tables are created/updated in one place.
// ===========================================================================

// AllModels returns every persisted model.
func AllModels() []interface{} {
	return []interface{}{
		&Account{},      // tenant boundary
		&User{},         // operators (superadmin, admin, agent)
		&Contact{},      // customers
		&Conversation{}, // interaction threads
		&Message{},      // append-only message log
	}
}
