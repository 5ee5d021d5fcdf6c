package models

type Article struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Subtitle     string      `json:"subtitle"`
	Introduction string      `json:"introduction"`
	Conclusion   string      `json:"conclusion"`
	Tags         []string    `json:"tags"`
	Author       *Person     `json:"author,omitempty"`
	Thumbnail    *Media      `json:"thumbnail"`
	Paragraphs   []Paragraph `json:"paragraphs"`
	CreatedAt    string      `json:"createdAt,omitempty"`
	UpdatedAt    string      `json:"updatedAt,omitempty"`
}

type Paragraph struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	Content   string `json:"content"`
	Image     *Media `json:"image"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
