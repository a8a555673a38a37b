package models

// Question statuses. A question moves from pending to answered exactly once
// and is never deleted.
const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"
)

// Question is a Q&A forum entry stored in the key-value store.
type Question struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	AskedBy    string `json:"asked_by"`
	Answer     string `json:"answer,omitempty"`
	AnsweredBy string `json:"answered_by,omitempty"`
	CreatedAt  string `json:"created_at"`
	AnsweredAt string `json:"answered_at,omitempty"`
}
