package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedText_GetFallsBackToBase(t *testing.T) {
	text := LocalizedText{UZ: "Salom", RU: "", EN: "Hello"}

	assert.Equal(t, "Hello", text.Get(LangEN))
	assert.Equal(t, "Salom", text.Get(LangRU))
	assert.Equal(t, "Salom", text.Get(Language("de")))
}

func TestLocalizedText_FillMissing(t *testing.T) {
	filled := LocalizedText{UZ: "Salom"}.FillMissing()
	assert.Equal(t, SameText("Salom"), filled)
	assert.True(t, filled.Complete())

	fromEN := LocalizedText{EN: "Hello"}.FillMissing()
	assert.Equal(t, LocalizedText{UZ: "Hello", RU: "Hello", EN: "Hello"}, fromEN)
}

func TestLocalizedText_Set(t *testing.T) {
	var text LocalizedText
	text.Set(LangUZ, "a")
	text.Set(LangRU, "b")
	text.Set(LangEN, "c")
	assert.Equal(t, LocalizedText{UZ: "a", RU: "b", EN: "c"}, text)
}
