package story

import (
	"strings"

	"github.com/adventuresof/adventuresof/backend/go-services/internal/models"
)

const fallbackTemplate = `Chapter 1: The Beginning

Once upon a time, there was a brave young explorer named {name}.

{name} loved {interest} more than anything in the whole wide world. Every day, {name} would dream of exciting adventures.

One sunny morning, {name} woke up to find a mysterious map on the bedroom floor. It showed a path to a magical place where {favorite} grew on trees!

"Wow!" exclaimed {name}. "I have to find this place!"

Chapter 2: The Journey

{name} packed a small bag with snacks and set off on the adventure of a lifetime.

Along the way, {name} met friendly animals who wanted to help. A wise owl pointed the way, and a playful squirrel shared acorns.

Through forests and over hills, {name} kept walking. The map showed they were getting closer!

Chapter 3: The Discovery

At last, {name} reached the magical place. It was even more beautiful than in the dreams!

And there, in the center of a sparkling meadow, grew the most amazing {favorite} {name} had ever seen.

{name} smiled widest than ever before. The adventure had been worth every step.

From that day on, {name} knew that the best adventures happen when you're brave enough to try.

The End.

---

This story was made for {name} with love.`

// Fallback writes the local three-chapter story. The text depends only on the
// child's name, first interest and favorite thing, so it is stable for testing.
func Fallback(p *models.Profile) string {
	interest := p.Interest(0)
	if interest == "" {
		interest = "adventure"
	}
	r := strings.NewReplacer(
		"{name}", p.ChildName,
		"{interest}", interest,
		"{favorite}", p.FavoriteThing,
	)
	return r.Replace(fallbackTemplate)
}
