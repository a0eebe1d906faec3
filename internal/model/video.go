package model

// Video is a feed or search item from the video metadata provider.
type Video struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ChannelTitle string `json:"channelTitle,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
	ViewCount    string `json:"viewCount,omitempty"`
	Duration     string `json:"duration,omitempty"`
	IsSponsored  bool   `json:"isSponsored,omitempty"`
}

// FeedResponse is one page of the trending feed.
type FeedResponse struct {
	Videos  []Video `json:"videos"`
	HasMore bool    `json:"hasMore"`
	Page    int     `json:"page"`
	Total   int     `json:"total"`
	Region  string  `json:"region"`
}

// SearchResponse is the API response for a video search.
type SearchResponse struct {
	Query  string  `json:"query"`
	Region string  `json:"region"`
	Videos []Video `json:"videos"`
}
