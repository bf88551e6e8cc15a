package role

// Role is the kind of actor driving an operation.
type Role int

const (
	Client Role = iota // 0
	Expert             // 1
	Admin              // 2
)

func (r Role) String() string {
	switch r {
	case Client:
		return "client"
	case Expert:
		return "expert"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r >= Client && r <= Admin
}
