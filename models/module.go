package models

// Module difficulties and content types.
var (
	ModuleDifficulties = []string{"Beginner", "Intermediate", "Advanced"}
	ModuleContentTypes = []string{"link", "document", "video"}
)

// Module is an educational module stored in the key-value store.
// Students consume modules read-only; healthcare professionals manage them.
type Module struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
	ContentType string `json:"content_type"`
	ContentURL  string `json:"content_url"`
	UploadedBy  string `json:"uploaded_by"`
	CreatedAt   string `json:"created_at"`
}
