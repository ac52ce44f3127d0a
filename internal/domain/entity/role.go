package entity

import "slices"

// Role is the account kind fixed at registration.
type Role string

const (
	RoleCustomer Role = "customer" // places orders and accumulates taste preferences
	RoleMerchant Role = "merchant" // owns restaurants and curates their menus
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleMerchant
}

// HasTasteProfile reports whether accounts of this role get a profile at registration.
func (r Role) HasTasteProfile() bool {
	return r == RoleCustomer
}

// Roles is the role set carried in access tokens.
type Roles []Role

func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

func (rs Roles) ToStrings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}

	return out
}

// RolesFromStrings parses token claims, dropping roles this service does not know.
func RolesFromStrings(ss []string) Roles {
	out := make(Roles, 0, len(ss))
	for _, s := range ss {
		if role := Role(s); role.IsValid() {
			out = append(out, role)
		}
	}

	return out
}
