package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

func TestDetailCmd_NothingSelected(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd(t, "detail")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoDetail))
	assert.Contains(t, err.Error(), domain.MsgNoDetail)
}

func TestSelectCmd_ThenDetail(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "select", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Sub Category: 결제")
	assert.Contains(t, out, "세부 내용: 카드 등록 방법")
	assert.Contains(t, out, "사용 목적: 결제 수단")
	assert.Contains(t, out, "Path: 설정 > 결제 > 카드")

	id := configStore.GetString(keyCLISession)
	assert.NotEmpty(t, id)

	out, err = runCmd(t, "detail")
	require.NoError(t, err)
	assert.Contains(t, out, "Item: 카드")
	assert.Equal(t, id, configStore.GetString(keyCLISession))
}

func TestSelectCmd_InvalidIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd(t, "select", "first")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSelectCmd_OutOfRange(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd(t, "select", "99")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCLISessionID_WithoutConfig(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configStore = nil

	assert.Equal(t, "cli", cliSessionID())
}
