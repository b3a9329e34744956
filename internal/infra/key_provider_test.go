package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKeyProvider(t *testing.T) {
	tests := []struct {
		name   string
		testFn func(t *testing.T, provider *FileKeyProvider)
	}{
		{
			name: "no key file",
			testFn: func(t *testing.T, provider *FileKeyProvider) {
				assert.False(t, provider.KeyExists())
				_, err := provider.GetKey()
				assert.Error(t, err)
			},
		},
		{
			name: "stored key round trips with 0600 permissions",
			testFn: func(t *testing.T, provider *FileKeyProvider) {
				key, err := GenerateKey()
				require.NoError(t, err)
				require.NoError(t, provider.StoreKey(key))

				info, err := os.Stat(provider.keyPath)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

				got, err := provider.GetKey()
				require.NoError(t, err)
				assert.Equal(t, key, got)
			},
		},
		{
			name: "rejects wrong key size",
			testFn: func(t *testing.T, provider *FileKeyProvider) {
				err := provider.StoreKey([]byte("tooshort"))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid key size")
			},
		},
		{
			name: "corrupted key file",
			testFn: func(t *testing.T, provider *FileKeyProvider) {
				require.NoError(t, os.MkdirAll(filepath.Dir(provider.keyPath), 0700))
				require.NoError(t, os.WriteFile(provider.keyPath, []byte("!!not-base64!!"), 0600))
				_, err := provider.GetKey()
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFn(t, NewFileKeyProvider(t.TempDir()))
		})
	}
}

func TestEnsureKey(t *testing.T) {
	provider := NewFileKeyProvider(t.TempDir())

	first, err := EnsureKey(provider)
	require.NoError(t, err)
	assert.Len(t, first, keySize)

	second, err := EnsureKey(provider)
	require.NoError(t, err)
	assert.Equal(t, first, second, "second call must reuse the stored key")
}
