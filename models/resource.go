package models

// ResourceTypes enumerates the accepted library resource types.
var ResourceTypes = []string{"Articles", "Books", "Videos", "PDFs"}

// Resource is a library entry stored in the key-value store.
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	URL         string `json:"url"`
	UploadedBy  string `json:"uploaded_by"`
	CreatedAt   string `json:"created_at"`
}
