package models

// Channel is a community discussion channel. The set is seeded once and the
// posts counter is denormalized, incremented on post creation.
type Channel struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Posts       int    `json:"posts"`
	Members     int    `json:"members"`
}

// Post is a community post inside a channel. The likes and replies counters
// are denormalized alongside the Like and Reply records.
type Post struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Likes     int    `json:"likes"`
	Replies   int    `json:"replies"`
	CreatedAt string `json:"created_at"`
}

// Reply is a child record of a post.
type Reply struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// Like marks that a user liked a post. Stored under the composite key
// "<postID>-<username>"; toggling removes or re-inserts the entry.
type Like struct {
	PostID    string `json:"post_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// LikeKey builds the composite membership key for the like set.
func LikeKey(postID, username string) string {
	return postID + "-" + username
}

// DefaultChannels is the seed channel set used by the init endpoints.
func DefaultChannels() []Channel {
	return []Channel{
		{ID: 1, Name: "General Discussion", Description: "General sexual health topics"},
		{ID: 2, Name: "Relationships", Description: "Healthy relationships and communication"},
		{ID: 3, Name: "STI Prevention", Description: "STI awareness and prevention"},
		{ID: 4, Name: "Mental Health", Description: "Mental health and sexuality"},
		{ID: 5, Name: "LGBTQ+ Support", Description: "Safe space for LGBTQ+ students"},
	}
}
