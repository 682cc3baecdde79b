package controller

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iSuccessHUB/assetshield-app-sub000/utils"
)

func TestBrandingPatchColumnsSparse(t *testing.T) {
	patch := BrandingPatch{
		PrimaryColor: utils.Pointer("#000000"),
		HeroTitle:    utils.Pointer("New Title"),
	}

	cols := patch.Columns()
	assert.Len(t, cols, 2)
	assert.Equal(t, "#000000", cols["primary_color"])
	assert.Equal(t, "New Title", cols["hero_title"])
	assert.NotContains(t, cols, "secondary_color")
	assert.NotContains(t, cols, "logo_url")
}

func TestBrandingPatchColumnsEmpty(t *testing.T) {
	patch := BrandingPatch{}
	assert.Empty(t, patch.Columns())
}

func TestBrandingPatchExplicitEmptyStringClears(t *testing.T) {
	patch := BrandingPatch{LogoURL: utils.Pointer("")}

	cols := patch.Columns()
	require.Contains(t, cols, "logo_url")
	assert.Equal(t, "", cols["logo_url"])
}

func TestBrandingPatchFromJSON(t *testing.T) {
	var patch BrandingPatch
	require.NoError(t, json.Unmarshal([]byte(`{"accent_color":"#ff0000"}`), &patch))

	cols := patch.Columns()
	assert.Len(t, cols, 1)
	assert.Equal(t, "#ff0000", cols["accent_color"])
}
