package models

import "strings"

// ReadingLevel selects the story template length and complexity.
type ReadingLevel string

const (
	ReadingLevelSimple   ReadingLevel = "simple"
	ReadingLevelMedium   ReadingLevel = "medium"
	ReadingLevelAdvanced ReadingLevel = "advanced"
)

// ReadingLevels lists the accepted reading levels in template order.
func ReadingLevels() []ReadingLevel {
	return []ReadingLevel{ReadingLevelSimple, ReadingLevelMedium, ReadingLevelAdvanced}
}

// Valid reports whether l is one of ReadingLevels.
func (l ReadingLevel) Valid() bool {
	switch l {
	case ReadingLevelSimple, ReadingLevelMedium, ReadingLevelAdvanced:
		return true
	}
	return false
}

// Profile describes the child a book is written for. It lives for one request only.
type Profile struct {
	ChildName     string       `json:"childName" binding:"required,max=100"`
	ChildAge      int          `json:"childAge" binding:"required,gt=0"`
	Interests     []string     `json:"interests"`
	FavoriteThing string       `json:"favoriteThing"`
	FearToAvoid   string       `json:"fearToAvoid,omitempty"`
	ReadingLevel  ReadingLevel `json:"readingLevel" binding:"required,oneof=simple medium advanced"`
	// Photo is accepted for API compatibility and never read.
	Photo string `json:"photo,omitempty"`
}

// Interest returns the i-th interest, or "" when it is missing or blank.
func (p *Profile) Interest(i int) string {
	if p == nil || i < 0 || i >= len(p.Interests) {
		return ""
	}
	if strings.TrimSpace(p.Interests[i]) == "" {
		return ""
	}
	return p.Interests[i]
}
