package models

// CourseProgress is one user's progress on one course. Upserted by
// (username, course_id); no history is retained.
type CourseProgress struct {
	CourseID     string `json:"course_id"`
	Progress     int    `json:"progress"`
	Completed    bool   `json:"completed"`
	LastAccessed string `json:"last_accessed"`
}
