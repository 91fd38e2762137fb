package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "Ecole", StripAccents("Écolé"))
	assert.Equal(t, "", StripAccents(""))
	assert.Equal(t, "plain ascii", StripAccents("plain ascii"))
	// Characters with no ASCII decomposition are dropped entirely.
	assert.Equal(t, "", StripAccents("日本語"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "the ecole dupont", NormalizeName("Thé Écolé  Dupont"))
	assert.Equal(t, "alex kim", NormalizeName("Alex Kim"))
	assert.Equal(t, "o brien mary jane", NormalizeName("O'Brien, Mary-Jane"))
	assert.Equal(t, "", NormalizeName(""))
	assert.Equal(t, "", NormalizeName("  ---  "))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "hello there", NormalizeText("Hello,   THERE!"))
	assert.Equal(t, "cafe on 5th", NormalizeText("Café on 5th"))
	assert.Equal(t, "", NormalizeText(""))
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"Hello there",
		"Thé Écolé  Dupont",
		"  mixed   CASE with-punct.uation!  ",
		"numbers 123 and\ttabs",
		"",
	}
	for _, s := range inputs {
		once := NormalizeText(s)
		assert.Equal(t, once, NormalizeText(once), "input %q", s)
	}
}
