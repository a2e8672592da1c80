package artifacts_test

import (
	"mailprov/pkg/artifacts"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "verify_missing_user001@example.com.png", want: "verify_missing_user001_example.com.png"},
		{in: "../../etc/passwd", want: "..-..-etc-passwd"},
		{in: "login timeout.png", want: "login-timeout.png"},
		{in: "  ", want: "artifact"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, artifacts.SanitizeName(tt.in))
		})
	}
}

func TestStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debug")
	store, err := artifacts.New(dir)
	require.NoError(t, err)
	require.Equal(t, dir, store.Dir())

	path, err := store.Save("verify_missing_user001@example.com.png", []byte("png"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "verify_missing_user001_example.com.png"), path)

	// same name overwrites
	_, err = store.Save("verify_missing_user001@example.com.png", []byte("png2"))
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "png2", string(b))
}
