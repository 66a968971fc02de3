package book

import "time"

// Book is the outcome of one generation request. The PDF at Path is written
// once and never modified by the service.
type Book struct {
	ChildName      string    `json:"childName"`
	Path           string    `json:"path"`
	FileName       string    `json:"fileName"`
	DownloadURL    string    `json:"downloadUrl"`
	Story          string    `json:"story"`
	StorySource    string    `json:"storySource"`
	CharacterImage string    `json:"characterImage"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PreviewLength is the number of story characters echoed back to the caller.
const PreviewLength = 500

// Preview returns the first n characters of the story followed by "...".
// The ellipsis is appended even when the story is shorter than n.
func Preview(story string, n int) string {
	r := []rune(story)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
