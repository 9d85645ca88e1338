package constant

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusLocked    PropertyStatus = "locked"
	PropertyStatusSold      PropertyStatus = "sold"
)

type UserRole string

const (
	UserRoleBuyer UserRole = "buyer"
	UserRoleOwner UserRole = "owner"
)

type ctxKey int

// UserIDKey carries the authenticated user id in the request context.
const UserIDKey ctxKey = 1
