package types

// AdviceRole identifies the author of a chat message in the career
// advice conversation.
type AdviceRole string

// Advice chat roles
const (
	AdviceRoleUser AdviceRole = "user"
	AdviceRoleBot  AdviceRole = "bot"
)

// AdviceMessage is one entry in the advice chat history.
type AdviceMessage struct {
	Role AdviceRole `json:"role"`
	Text string     `json:"text"`
}

// CareerPath is one suggested direction derived from a resume.
type CareerPath struct {
	Title  string   `json:"title"`
	Reason string   `json:"reason"`
	Next   []string `json:"next"`
}
