package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	playing := func() *domain.SessionState {
		s := domain.NewSessionState()
		s.Phase = domain.PhasePlay
		s.DeviceIDs = append(s.DeviceIDs, "device-a", "device-b")
		s.ButtonCount = 2
		s.IsRollCallComplete = true
		s.CurrentInputHandlerID = "amzn1.echo-api.request.1"
		s.UserColor = domain.ColorGreen
		return &s
	}

	t.Run("Save and Load", func(t *testing.T) {
		state := playing()

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, *state, *loaded)
		assert.NoError(t, loaded.Validate())
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		state := playing()
		require.NoError(t, store.Save(ctx, sessionID, state))

		state.Phase = domain.PhaseExit
		state.ExpectingEndSkillConfirmation = true
		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseExit, loaded.Phase)
		assert.True(t, loaded.ExpectingEndSkillConfirmation)
	})

	t.Run("Loaded State Is Detached", func(t *testing.T) {
		state := playing()
		require.NoError(t, store.Save(ctx, sessionID, state))
		state.DeviceIDs[1] = "mutated"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "device-a", loaded.DeviceIDs[1])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		fresh := domain.NewSessionState()
		err := store.Save(ctx, sessionID, &fresh)
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete of a missing session should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		s1, s2 := domain.NewSessionState(), domain.NewSessionState()
		require.NoError(t, store.Save(ctx, id1, &s1))
		require.NoError(t, store.Save(ctx, id2, &s2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
