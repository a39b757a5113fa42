//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamcc/gatestream/u24"
	"github.com/streamcc/gatestream/wire"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	creditsPath := filepath.Join(dir, CreditsFile)
	outputsPath := filepath.Join(dir, OutputsFile)

	v := u24.NewVector()
	v.Set(0, 0)
	v.Set(1, 0)
	v.Set(2, 7)
	v.Set(3, u24.Max)

	outputs := []wire.ID{2, 3, 9}

	require.NoError(t, Save(creditsPath, outputsPath, v, outputs))

	gotCredits, gotOutputs, ok := TryLoad(creditsPath, outputsPath)
	require.True(t, ok)
	require.Equal(t, outputs, gotOutputs)
	for i := 0; i < v.Len(); i++ {
		require.Equal(t, v.Get(i), gotCredits.Get(i))
	}
}

func TestTryLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, _, ok := TryLoad(filepath.Join(dir, "nope1"), filepath.Join(dir, "nope2"))
	require.False(t, ok)
}
