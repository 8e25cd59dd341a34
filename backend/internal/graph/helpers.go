package graph

// ============================================================================
// Helper Functions
// ============================================================================

func getString(m map[string]any, key string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getBool(m map[string]any, key string) bool {
	val, ok := m[key]
	if !ok || val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}

func getInt64(m map[string]any, key string) int64 {
	val, ok := m[key]
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

// userFromProps builds a User out of node properties or a map projection.
func userFromProps(props map[string]any) *User {
	return &User{
		ID:           getString(props, "id"),
		Name:         getString(props, "name"),
		Email:        getString(props, "email"),
		Slug:         getString(props, "slug"),
		Password:     getString(props, "password"),
		Role:         getString(props, "role"),
		Avatar:       getString(props, "avatar"),
		LocationName: getString(props, "locationName"),
		About:        getString(props, "about"),
		Deleted:      getBool(props, "deleted"),
		Disabled:     getBool(props, "disabled"),
		Verified:     getBool(props, "verified"),
		CreatedAt:    getString(props, "createdAt"),
	}
}
