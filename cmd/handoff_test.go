package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scripthub/catalog"
)

func storeWithHandoff(t *testing.T, title, body string) *memStore {
	t.Helper()
	store := newMemStore()
	raw, err := catalog.EncodeHandoff(catalog.ScriptEntry{Title: title, Body: body})
	require.NoError(t, err)
	require.NoError(t, store.Set(catalog.HandoffKey, raw))
	return store
}

func TestTakeHandoffToStdout(t *testing.T) {
	store := storeWithHandoff(t, "Infinite Jump", "print('jump')")
	var out, errOut bytes.Buffer

	require.NoError(t, takeHandoff(store, handoffOptions{check: true}, &out, &errOut))
	assert.Equal(t, "print('jump')\n", out.String())
	assert.Empty(t, errOut.String())

	_, found, _ := store.Get(catalog.HandoffKey)
	assert.False(t, found, "slot is cleared after reading")

	out.Reset()
	require.NoError(t, takeHandoff(store, handoffOptions{check: true}, &out, &errOut))
	assert.Empty(t, out.String(), "a second take finds nothing")
	assert.Contains(t, errOut.String(), "No script waiting")
}

func TestTakeHandoffSyntaxWarning(t *testing.T) {
	store := storeWithHandoff(t, "Broken", "local x = ")
	var out, errOut bytes.Buffer

	require.NoError(t, takeHandoff(store, handoffOptions{check: true}, &out, &errOut))
	assert.Equal(t, "local x = \n", out.String(), "body is still delivered")
	assert.Contains(t, errOut.String(), "warning:")

	store = storeWithHandoff(t, "Broken", "local x = ")
	out.Reset()
	errOut.Reset()
	require.NoError(t, takeHandoff(store, handoffOptions{check: false}, &out, &errOut))
	assert.Empty(t, errOut.String())
}

func TestTakeHandoffMalformedSlot(t *testing.T) {
	tests := map[string]string{
		"not json":        "not json",
		"missing content": `{"name":"x"}`,
		"wrong type":      `{"name":"x","content":42}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			store := newMemStore()
			require.NoError(t, store.Set(catalog.HandoffKey, raw))
			var out, errOut bytes.Buffer

			require.NoError(t, takeHandoff(store, handoffOptions{check: true}, &out, &errOut))
			assert.Empty(t, out.String())
			_, found, _ := store.Get(catalog.HandoffKey)
			assert.False(t, found, "unusable slot is still cleared")
		})
	}
}

func TestTakeHandoffToFile(t *testing.T) {
	store := storeWithHandoff(t, "Auto Farm", "print('farm')\n")
	path := filepath.Join(t.TempDir(), "farm.lua")
	var out, errOut bytes.Buffer

	require.NoError(t, takeHandoff(store, handoffOptions{outPath: path, check: true}, &out, &errOut))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Loaded Auto Farm into")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "print('farm')\n", string(data))
}
