package contextkeys

// Keys under which request-scoped identity is stored in gin.Context.
// Custom constants rather than bare literals to avoid collisions.
const (
	// OrganizationIDKey holds the tenant resolved from the API key.
	OrganizationIDKey = "organizationID"

	// UserIDKey holds the authenticated admin user id (key issuance only).
	UserIDKey = "userID"
)
