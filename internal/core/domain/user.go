package domain

// Role is the portal role handed out by the identity provider.
type Role string

const (
	RoleInitiator  Role = "initiateur"
	RoleAnalyst    Role = "analyste"
	RoleChallenger Role = "challenger"
	RoleValidator  Role = "validateur"
	RolePM         Role = "pm" // alias of validateur for single-level review chains
	RoleGM         Role = "dg"
	RoleAccountant Role = "comptable"
	RoleAdmin      Role = "admin"
	RoleSystem     Role = "system" // background jobs
)

// Actor is the authenticated caller of a core operation.
type Actor struct {
	UserID  string `json:"userID"`
	Role    Role   `json:"role"`
	Service string `json:"service"` // department/service the user belongs to
}

// IsAdmin reports whether the actor carries the administrative override.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SystemActor is used for transitions initiated by the platform itself.
var SystemActor = Actor{UserID: "system", Role: RoleSystem}
