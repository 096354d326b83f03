package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify", "--json", "https://huggingface.co/datasets/reubencf/cards")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	var link domain.ParsedLink
	if err := json.Unmarshal([]byte(out), &link); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, out)
	}
	if link.Kind != domain.KindDataset || link.Username != "reubencf" || link.ResourceName != "cards" {
		t.Errorf("got %+v", link)
	}

	if _, err := run(t, "classify", "https://example.com/x"); err == nil {
		t.Error("classify should fail on a foreign host")
	}
}

func TestProfileCommand(t *testing.T) {
	hub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reubencf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`<h1>Reuben</h1><img src="https://cdn-avatars.huggingface.co/u/reuben.jpg">`))
	}))
	defer hub.Close()

	out, err := run(t, "profile", "--base-url", hub.URL, "https://huggingface.co/reubencf/tiny-model")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	for _, want := range []string{"name:    Reuben", "avatar:  https://cdn-avatars.huggingface.co/u/reuben.jpg", "profile: https://huggingface.co/reubencf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "profile", "--base-url", hub.URL, "someone-else")
	if err != nil {
		t.Fatalf("profile should not fail on a missing page: %v", err)
	}
	if !strings.Contains(out, "showing defaults") || !strings.Contains(out, domain.DefaultAvatarURL) {
		t.Errorf("expected the default profile:\n%s", out)
	}
}

func TestQRCommand(t *testing.T) {
	t.Run("terminal", func(t *testing.T) {
		out, err := run(t, "qr", "reubencf")
		if err != nil {
			t.Fatalf("qr failed: %v", err)
		}
		if !strings.Contains(out, "https://huggingface.co/reubencf") || !strings.ContainsAny(out, "█▀▄") {
			t.Errorf("unexpected terminal output:\n%s", out)
		}
	})

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "qr.png")
		if _, err := run(t, "qr", "--png", path, "--size", "200", "--theme", "rose", "reubencf"); err != nil {
			t.Fatalf("qr failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("png not written: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Error("file is not a PNG")
		}
	})
}

func TestThemesCommand(t *testing.T) {
	out, err := run(t, "themes")
	if err != nil {
		t.Fatalf("themes failed: %v", err)
	}
	for _, id := range []string{"sunflower", "emerald", "indigo", "rose", "sunset"} {
		if !strings.Contains(out, id) {
			t.Errorf("builtin theme %s missing:\n%s", id, out)
		}
	}

	file := filepath.Join(t.TempDir(), "themes.yaml")
	yaml := `- id: Mono
  name: Mono
  gradient: ["#000000", "#333333"]
- id: broken
  gradient: ["#zzz", "#000"]
`
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err = run(t, "themes", "--json", "--theme-file", file)
	if err != nil {
		t.Fatalf("themes with file failed: %v", err)
	}
	var themes []domain.Theme
	if err := json.Unmarshal([]byte(out), &themes); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, out)
	}
	if len(themes) != 1 || themes[0].ID != "mono" {
		t.Errorf("themes = %+v, want only mono", themes)
	}
}
