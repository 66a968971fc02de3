// Package prompt renders the reading-level story request sent to the text model.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adventuresof/adventuresof/backend/go-services/internal/models"
)

// ErrUnknownReadingLevel is returned when no template exists for the profile's reading level.
var ErrUnknownReadingLevel = errors.New("unknown reading level")

const (
	defaultInterest1 = "adventure"
	defaultInterest2 = "friendship"
	defaultInterest3 = "discovery"
	defaultFear      = "nothing scary"
)

var defaultTemplates = map[models.ReadingLevel]string{
	models.ReadingLevelSimple:   "Write a simple 8-page children's story about {name}, age {age}, who goes on an adventure with their favorite thing: {favorite}. Include elements of {interest1}, {interest2}. Keep sentences short, under 10 words. Avoid: {fear}. Format each page as a short paragraph.",
	models.ReadingLevelMedium:   "Write an engaging 12-page children's story about {name}, age {age}, who goes on an adventure to find their favorite thing: {favorite}. Include elements of {interest1}, {interest2}, {interest3}. Use age-appropriate vocabulary for {age} year olds. Avoid: {fear}. Format each page as a paragraph.",
	models.ReadingLevelAdvanced: "Write an exciting chapter-book style story (3 chapters, ~1000 words) about {name}, age {age}, who goes on a quest to help others using their knowledge of {interest1}, {interest2}, {interest3}. Their favorite thing is {favorite}. Write for a {age} year old. Avoid: {fear}.",
}

// Builder holds one template per reading level.
type Builder struct {
	templates map[models.ReadingLevel]string
}

// NewBuilder returns a Builder with the built-in adventure templates.
func NewBuilder() *Builder {
	t := make(map[models.ReadingLevel]string, len(defaultTemplates))
	for k, v := range defaultTemplates {
		t[k] = v
	}
	return &Builder{templates: t}
}

// Template returns the raw template for a reading level.
func (b *Builder) Template(level models.ReadingLevel) (string, bool) {
	t, ok := b.templates[level]
	return t, ok
}

// Build substitutes the profile into the template for its reading level.
// {age} is replaced everywhere; every other placeholder only at its first occurrence.
func (b *Builder) Build(p *models.Profile) (string, error) {
	if p == nil {
		return "", fmt.Errorf("build prompt: nil profile")
	}
	tmpl, ok := b.templates[p.ReadingLevel]
	if !ok {
		return "", fmt.Errorf("build prompt: %w: %q", ErrUnknownReadingLevel, p.ReadingLevel)
	}

	i1, i2, i3 := Interests(p)
	fear := p.FearToAvoid
	if strings.TrimSpace(fear) == "" {
		fear = defaultFear
	}

	out := strings.Replace(tmpl, "{name}", p.ChildName, 1)
	out = strings.ReplaceAll(out, "{age}", strconv.Itoa(p.ChildAge))
	out = strings.Replace(out, "{favorite}", p.FavoriteThing, 1)
	out = strings.Replace(out, "{interest1}", i1, 1)
	out = strings.Replace(out, "{interest2}", i2, 1)
	out = strings.Replace(out, "{interest3}", i3, 1)
	out = strings.Replace(out, "{fear}", fear, 1)
	return out, nil
}

// Interests resolves the three interest slots. The second and third slots fall
// back to the first interest before their own defaults.
func Interests(p *models.Profile) (string, string, string) {
	first := p.Interest(0)
	i1 := first
	if i1 == "" {
		i1 = defaultInterest1
	}
	i2 := firstNonEmpty(p.Interest(1), first, defaultInterest2)
	i3 := firstNonEmpty(p.Interest(2), first, defaultInterest3)
	return i1, i2, i3
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
