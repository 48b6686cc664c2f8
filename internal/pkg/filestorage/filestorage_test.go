package filestorage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestDetectAndValidate(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	ct, r, err := DetectAndValidate(bytes.NewReader(pdf), DocumentTypes)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, pdf, body)

	ct, _, err = DetectAndValidate(bytes.NewReader(pngHeader), DocumentTypes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestDetectAndValidate_Rejects(t *testing.T) {
	_, _, err := DetectAndValidate(strings.NewReader("#!/bin/sh\necho hi\n"), DocumentTypes)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
}

func TestLocalStorage_SaveURLDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/")
	require.NoError(t, err)

	ctx := context.Background()
	obj, err := ls.Save(ctx, "certificates/12", "Clearance.PDF", strings.NewReader("%PDF-1.4"), 8, "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Key, "certificates/12/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".pdf"))
	assert.Equal(t, int64(8), obj.Size)

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	u, err := ls.URL(ctx, obj.Key)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/"+obj.Key, u)

	require.NoError(t, ls.Delete(ctx, obj.Key))
	require.NoError(t, ls.Delete(ctx, obj.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = ls.URL(context.Background(), "../etc/passwd")
	assert.Error(t, err)
	assert.Error(t, ls.Delete(context.Background(), "a/../../b"))
}

func TestObjectKey(t *testing.T) {
	assert.True(t, strings.HasPrefix(objectKey("../../x", "a.png"), "x/"))
	assert.NotContains(t, objectKey("", "a.png"), "/")
}
