package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

func TestCategoriesCmd_Guide(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "categories")

	require.NoError(t, err)
	assert.Contains(t, out, "All")
	assert.Contains(t, out, "결제")
	assert.Contains(t, out, domain.SubCategoryPalette[0])
	assert.Contains(t, out, domain.SubCategoryPalette[1])
}

func TestCategoriesCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "categories", "--json", "-d", "manual")
	require.NoError(t, err)

	var got []categoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "전체", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
	assert.Empty(t, got[1].Color)
}
