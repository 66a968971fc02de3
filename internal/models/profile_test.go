package models

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

func TestReadingLevelValid(t *testing.T) {
	for _, l := range ReadingLevels() {
		require.True(t, l.Valid(), string(l))
	}
	require.False(t, ReadingLevel("expert").Valid())
	require.False(t, ReadingLevel("").Valid())
}

func TestProfileInterest(t *testing.T) {
	p := &Profile{Interests: []string{"dinosaurs", "  ", "space"}}
	require.Equal(t, "dinosaurs", p.Interest(0))
	require.Equal(t, "", p.Interest(1))
	require.Equal(t, "space", p.Interest(2))
	require.Equal(t, "", p.Interest(3))
	require.Equal(t, "", (*Profile)(nil).Interest(0))
}

func TestProfileBindingValidation(t *testing.T) {
	ok := &Profile{ChildName: "Mia", ChildAge: 5, ReadingLevel: ReadingLevelSimple}
	require.NoError(t, binding.Validator.ValidateStruct(ok))
	require.NoError(t, binding.Validator.ValidateStruct(&Profile{ChildName: strings.Repeat("é", 100), ChildAge: 5, ReadingLevel: ReadingLevelSimple}))

	cases := map[string]*Profile{
		"missing name":  {ChildAge: 5, ReadingLevel: ReadingLevelSimple},
		"missing age":   {ChildName: "Mia", ReadingLevel: ReadingLevelSimple},
		"negative age":  {ChildName: "Mia", ChildAge: -1, ReadingLevel: ReadingLevelSimple},
		"unknown level": {ChildName: "Mia", ChildAge: 5, ReadingLevel: "expert"},
		"missing level": {ChildName: "Mia", ChildAge: 5},
		"name too long": {ChildName: strings.Repeat("a", 101), ChildAge: 5, ReadingLevel: ReadingLevelSimple},
	}
	for name, p := range cases {
		require.Error(t, binding.Validator.ValidateStruct(p), name)
	}
}
