package domain

// Role is the role claim carried by the identity token
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBarber Role = "barber"
	RoleClient Role = "client"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBarber, RoleClient:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64
	Role   Role
}

// SystemActor is used by background jobs that act with admin rights
var SystemActor = Actor{UserID: 0, Role: RoleAdmin}

// IsAdmin returns true for admins and the system actor
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsBarber returns true for barbers
func (a Actor) IsBarber() bool {
	return a.Role == RoleBarber
}

// CanActForBarber returns true if the actor is an admin or the barber linked to barber
func (a Actor) CanActForBarber(barber *Barber) bool {
	if a.IsAdmin() {
		return true
	}
	return barber != nil && a.IsBarber() && barber.UserID == a.UserID
}
