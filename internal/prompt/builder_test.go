package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/adventuresof/adventuresof/backend/go-services/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestsFallbackChain(t *testing.T) {
	i1, i2, i3 := Interests(&models.Profile{})
	assert.Equal(t, "adventure", i1)
	assert.Equal(t, "friendship", i2)
	assert.Equal(t, "discovery", i3)

	i1, i2, i3 = Interests(&models.Profile{Interests: []string{"painting"}})
	assert.Equal(t, "painting", i1)
	assert.Equal(t, "painting", i2)
	assert.Equal(t, "painting", i3)

	i1, i2, i3 = Interests(&models.Profile{Interests: []string{"painting", "space"}})
	assert.Equal(t, "painting", i1)
	assert.Equal(t, "space", i2)
	assert.Equal(t, "painting", i3)

	i1, i2, i3 = Interests(&models.Profile{Interests: []string{"a", "b", "c", "d"}})
	assert.Equal(t, []string{"a", "b", "c"}, []string{i1, i2, i3})
}

func TestBuildMediumSubstitutesEveryPlaceholder(t *testing.T) {
	b := NewBuilder()
	p := &models.Profile{
		ChildName:     "Mia",
		ChildAge:      5,
		Interests:     []string{"dinosaurs"},
		FavoriteThing: "a blue teddy bear",
		ReadingLevel:  models.ReadingLevelMedium,
	}
	out, err := b.Build(p)
	require.NoError(t, err)
	assert.NotContains(t, out, "{")
	assert.Equal(t, 2, strings.Count(out, "5"), "age is substituted at every occurrence")
	assert.Contains(t, out, "story about Mia, age 5")
	assert.Contains(t, out, "favorite thing: a blue teddy bear")
	assert.Contains(t, out, "Include elements of dinosaurs, dinosaurs, dinosaurs.")
	assert.Contains(t, out, "Avoid: nothing scary.")
}

func TestBuildEmptyInterestsAndFear(t *testing.T) {
	b := NewBuilder()
	out, err := b.Build(&models.Profile{
		ChildName:    "Leo",
		ChildAge:     9,
		FearToAvoid:  "spiders",
		ReadingLevel: models.ReadingLevelAdvanced,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "knowledge of adventure, friendship, discovery.")
	assert.Contains(t, out, "Write for a 9 year old.")
	assert.Contains(t, out, "Avoid: spiders.")
}

func TestBuildSimpleUsesTwoInterests(t *testing.T) {
	out, err := NewBuilder().Build(&models.Profile{
		ChildName:    "Ava",
		ChildAge:     4,
		Interests:    []string{"trains", "cats", "stars"},
		ReadingLevel: models.ReadingLevelSimple,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Include elements of trains, cats.")
	assert.NotContains(t, out, "stars")
}

func TestBuildUnknownReadingLevel(t *testing.T) {
	_, err := NewBuilder().Build(&models.Profile{ChildName: "Mia", ChildAge: 5, ReadingLevel: "expert"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownReadingLevel))
}

func TestTemplatesCoverEveryReadingLevel(t *testing.T) {
	b := NewBuilder()
	for _, l := range models.ReadingLevels() {
		tmpl, ok := b.Template(l)
		require.True(t, ok, string(l))
		assert.Contains(t, tmpl, "{name}")
	}
}
