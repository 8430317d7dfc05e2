package auth

import (
	"github.com/gin-gonic/gin"

	"careconnect/internal/models"
)

type UserType string

const (
	CareSeeker UserType = "care_seeker"
	Caregiver  UserType = "caregiver"
	Admin      UserType = "admin"
)

// ParseUserType maps the persisted user_type string onto a UserType,
// defaulting to CareSeeker for anything unrecognised.
func ParseUserType(s string) UserType {
	switch s {
	case string(Caregiver):
		return Caregiver
	case string(Admin):
		return Admin
	default:
		return CareSeeker
	}
}

// Actor is the authenticated identity attached to every request. All
// authorization decisions are pure functions of the actor and the resource
// being touched, so handlers never compare raw role strings.
type Actor struct {
	UserID uint
	Type   UserType
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin" || a.Type == Admin
}

// CanAccessBooking reports whether the actor may read or mutate a booking:
// its care-seeker, its caregiver, or an admin.
func (a Actor) CanAccessBooking(b *models.Booking) bool {
	return a.IsAdmin() || a.UserID == b.CareSeekerID || a.UserID == b.CaregiverID
}

// CanAccessConversation is participant-only: even admins do not read private
// threads.
func (a Actor) CanAccessConversation(c *models.Conversation) bool {
	return c.HasParticipant(a.UserID)
}

const contextKey = "actor"

// Store stashes the actor in the gin context for downstream handlers.
func Store(c *gin.Context, a Actor) {
	c.Set(contextKey, a)
}

// ActorFrom retrieves the actor placed in the context by the JWT middleware.
// Panics if the route was wired without RequireAuth, which is a programming
// error, not a request error.
func ActorFrom(c *gin.Context) Actor {
	return c.MustGet(contextKey).(Actor)
}
