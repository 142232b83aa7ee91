package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/keydeck/internal/profile"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestOpenFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "keydeck.log")

	log, closer, err := OpenFile(path, "info")
	require.NoError(t, err)
	log.Info("first")
	require.NoError(t, closer.Close())

	log, closer, err = OpenFile(path, "info")
	require.NoError(t, err)
	log.Info("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestStoreListener_Fields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	require.NoError(t, err)

	listen := StoreListener(log, nil)
	listen(profile.Event{Kind: profile.EventBindingAdded, Profile: "Profile #1", Detail: "Jump"})
	listen(profile.Event{
		Kind:    profile.EventIntentRejected,
		Intent:  profile.IntentCloseProfile,
		Profile: "Default",
		Err:     profile.ErrProtected,
	})

	out := buf.String()
	assert.Contains(t, out, `profile="Profile #1"`)
	assert.Contains(t, out, "kind=binding_added")
	assert.Contains(t, out, "detail=Jump")
	assert.Contains(t, out, "intent rejected")
	assert.Contains(t, out, `error="protected profile"`)
	assert.Contains(t, out, "intent=close_profile")
}

type brokenStore struct{ calls int }

func (b *brokenStore) CheckConsistency() error {
	b.calls++
	return errors.New("key 'w' of 'Forward' has no owner entry")
}

func TestStoreListener_ConsistencyOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	require.NoError(t, err)
	check := &brokenStore{}

	StoreListener(log, check)(profile.Event{Kind: profile.EventProfileSwitched})
	assert.Zero(t, check.calls)

	log.SetLevel(logrus.DebugLevel)
	StoreListener(log, check)(profile.Event{Kind: profile.EventProfileSwitched})
	assert.Equal(t, 1, check.calls)
	assert.Contains(t, buf.String(), "registry mirror broken")
}

func TestStoreListener_RealStore(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug")
	require.NoError(t, err)

	store := profile.NewStore(nil)
	store.Subscribe(StoreListener(log, store))

	_, err = store.AddExtraProfile()
	require.ErrorIs(t, err, profile.ErrDisabled)
	assert.NotContains(t, buf.String(), "registry mirror broken")
	assert.Contains(t, buf.String(), "kind=intent_rejected")
}
