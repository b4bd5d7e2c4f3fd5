package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if !strings.HasSuffix(dataDir, ".replayview") {
		t.Fatalf("unexpected data dir: %s", dataDir)
	}

	cases := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{name: "config", fn: ConfigPath, want: "config.toml"},
		{name: "token", fn: TokenPath, want: "token"},
		{name: "cache", fn: CachePath, want: "cache.db"},
		{name: "ui log", fn: UILogPath, want: "ui.log"},
	}
	for _, tc := range cases {
		path, err := tc.fn()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !strings.HasSuffix(path, filepath.Join(".replayview", tc.want)) {
			t.Fatalf("unexpected %s path: %s", tc.name, path)
		}
	}
}
