package middleware

// Role constants to avoid string typos
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleStaff      = "staff"
)

// AccessContext stores the caller's resolved access for one request.
// For tenant-scoped routes it also carries the resolved society, so
// handlers never re-derive the tenant from the URL themselves.
type AccessContext struct {
	UserID         uint
	RoleName       string
	PacsID         uint
	PacsSlug       string
	AssignmentRole string // role on this society; RoleSuperAdmin when bypassing
}

// IsSuperAdmin reports whether the caller holds the platform role
func (ac *AccessContext) IsSuperAdmin() bool {
	return ac.RoleName == RoleSuperAdmin
}

// HasSociety reports whether a tenant was resolved for this request
func (ac *AccessContext) HasSociety() bool {
	return ac.PacsID != 0
}
