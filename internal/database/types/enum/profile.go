package enum

// ProfileRole distinguishes buyers from software vendors.
type ProfileRole string

const (
	ProfileRoleBuyer  ProfileRole = "buyer"
	ProfileRoleVendor ProfileRole = "vendor"
	ProfileRoleAdmin  ProfileRole = "admin"
)

// Valid reports whether the profile role is a known value.
func (p ProfileRole) Valid() bool {
	return p == ProfileRoleBuyer || p == ProfileRoleVendor || p == ProfileRoleAdmin
}
