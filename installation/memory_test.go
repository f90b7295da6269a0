package installation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndFindBot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	inst := &Installation{
		TeamID:      "T1",
		UserID:      "U1",
		BotToken:    "xoxb-123",
		BotUserID:   "B1",
		InstalledAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, inst))

	got, err := store.FindBot(ctx, "", "T1")
	require.NoError(t, err)
	require.Equal(t, "xoxb-123", got.BotToken)

	_, err = store.FindBot(ctx, "", "T-unknown")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FindInstaller(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Installation{TeamID: "T1", UserID: "U1", InstallerUserToken: "xoxp-abc"}))

	got, err := store.FindInstaller(ctx, "", "T1", "U1")
	require.NoError(t, err)
	require.Equal(t, "xoxp-abc", got.InstallerUserToken)

	_, err = store.FindInstaller(ctx, "", "T1", "U-unknown")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &Installation{TeamID: "T1", UserID: "U1"}))

	require.NoError(t, store.DeleteAll(ctx, "", "T1"))

	_, err := store.FindBot(ctx, "", "T1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindInstaller(ctx, "", "T1", "U1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SaveIsolatesCallerMutation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	inst := &Installation{TeamID: "T1", BotToken: "xoxb-1"}
	require.NoError(t, store.Save(ctx, inst))

	inst.BotToken = "mutated-after-save"

	got, err := store.FindBot(ctx, "", "T1")
	require.NoError(t, err)
	require.Equal(t, "xoxb-1", got.BotToken)
}
