package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/colorchanger/pkg/adapters/file"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesAttributeRecord(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	s := domain.NewSessionState()
	s.CurrentInputHandlerID = "tok"

	require.NoError(t, store.Save(context.Background(), "abc", &s))

	data, err := os.ReadFile(filepath.Join(dir, "abc.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"state": "ROLL_CALL",
		"device_ids": ["Device ID Listings"],
		"button_count": 0,
		"is_roll_call_complete": false,
		"expecting_skill_confirmation": false,
		"expecting_end_skill_confirmation": false,
		"current_input_handler_id": "tok"
	}`, string(data))
}

func TestFileStore_RejectsPathSessionIDs(t *testing.T) {
	store := file.New(t.TempDir())
	s := domain.NewSessionState()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", &s))
	assert.Error(t, store.Save(ctx, "../escape", &s))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
