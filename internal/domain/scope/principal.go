package scope

// User roles. Platform admins are the only principals allowed to
// operate without a business of their own.
const (
	RoleOwner         = "owner"
	RoleStaff         = "staff"
	RolePlatformAdmin = "platform_admin"
)

// Principal is the authenticated caller as every endpoint sees it,
// resolved once by the auth middleware.
type Principal struct {
	UserID     uint
	BusinessID *uint
	Role       string
}

func (p Principal) IsPlatformAdmin() bool {
	return p.Role == RolePlatformAdmin
}
