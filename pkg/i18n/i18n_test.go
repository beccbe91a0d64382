package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalize(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	assert.Equal(t, "You don't have enough permissions", tr.Localize("", "Forbidden", "x"))
	assert.Equal(t, "Category not found", tr.Localize("en-US,en;q=0.9", "CategoryNotFound", "x"))
	assert.Equal(t, "Kategori tidak ditemukan", tr.Localize("id-ID,id;q=0.9", "CategoryNotFound", "x"))
	// unsupported language falls back to English
	assert.Equal(t, "Topping not found", tr.Localize("ja", "ToppingNotFound", "x"))
	assert.Equal(t, "fallback", tr.Localize("en", "NoSuchMessage", "fallback"))
}

func TestLoadExtraLocale(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "active.fr.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"CategoryNotFound":"Catégorie introuvable"}`), 0o644))
	require.NoError(t, tr.Load(file))

	assert.Equal(t, "Catégorie introuvable", tr.Localize("fr", "CategoryNotFound", "x"))
}
