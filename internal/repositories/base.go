package repositories

// ===========================================================================
// Shared repository types
// ===========================================================================

// FindOptions are query options for list methods.
type FindOptions struct {
	// Offset starting position, for pagination
	Offset int

	// Limit maximum number of records
	Limit int

	// OrderBy column to sort on
	OrderBy string

	// OrderDir "asc" or "desc"
	OrderDir string

	// Preloads relations to eager load
	Preloads []string

	// Filters column filters
	Filters map[string]interface{}
}

// SetDefaults fills in unset fields.
func (o *FindOptions) SetDefaults() {
	if o.Limit == 0 {
		o.Limit = 20
	}
	if o.OrderBy == "" {
		o.OrderBy = "created_at"
	}
	if o.OrderDir == "" {
		o.OrderDir = "desc"
	}
}

// GetOrderClause returns the ORDER BY clause.
func (o *FindOptions) GetOrderClause() string {
	return o.OrderBy + " " + o.OrderDir
}
