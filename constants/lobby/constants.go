package lobby_constants

// Capacity bounds for a lobby. The creator always occupies one slot.
const MinSlots = 2
const MaxSlots = 20

// Self-assessed skill range shown on the slider.
const MinSkillLevel = 1
const MaxSkillLevel = 10

// OtherGame is the sentinel option in the game picker that reveals the
// free-text "specify the game" field.
const OtherGame = "Other"

// Genders accepted at registration.
var Genders = []string{"male", "female"}

// Platforms a lobby can be scheduled on.
var Platforms = []string{
	"PC",
	"PlayStation",
	"Xbox",
	"Nintendo Switch",
	"Mobile",
	"Cross-platform",
}
