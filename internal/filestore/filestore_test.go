package filestore_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuittipankki/internal/filestore"
)

func TestStore_SaveOpenRemove(t *testing.T) {
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save("kuitti.pdf", strings.NewReader("file bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".pdf"))
	assert.NotContains(t, ref, "kuitti")

	f, err := s.Open(ref)
	require.NoError(t, err)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "file bytes", string(data))

	require.NoError(t, s.Remove(ref))

	_, err = s.Open(ref)
	assert.Error(t, err)

	// Removing again is fine.
	assert.NoError(t, s.Remove(ref))
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open("../etc/passwd")
	assert.ErrorIs(t, err, filestore.ErrInvalidReference)

	err = s.Remove("a/b.pdf")
	assert.ErrorIs(t, err, filestore.ErrInvalidReference)
}

func TestStore_StripsSuspiciousExtensions(t *testing.T) {
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save("weird.P D%F", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, ref, " ")
	assert.NotContains(t, ref, "%")
}
