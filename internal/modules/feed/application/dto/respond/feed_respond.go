package respond

type AuthorSummary struct {
	Uuid     string `json:"uuid"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
	Headline string `json:"headline,omitempty"`
}

type ContentSummary struct {
	Uuid            string        `json:"uuid"`
	ContentType     string        `json:"content_type"`
	Title           string        `json:"title"`
	Summary         string        `json:"summary,omitempty"`
	Author          AuthorSummary `json:"author"`
	CreatedAt       string        `json:"created_at"`
	RelevanceScore  float64       `json:"relevance_score"`
	VotedByCaller   bool          `json:"voted_by_caller,omitempty"`
	AppliedByCaller bool          `json:"applied_by_caller,omitempty"`
}

type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	NextCursor  string `json:"next_cursor,omitempty"`
	// UsedFallbackEmbedding is returned in offset mode whenever the ranking did
	// not use the caller's stored interest embedding, so the client can replay
	// the same vector on later pages.
	UsedFallbackEmbedding []float32 `json:"used_fallback_embedding,omitempty"`
}

type FeedRespond struct {
	Items    []ContentSummary `json:"items"`
	PageInfo PageInfo         `json:"page_info"`
}
