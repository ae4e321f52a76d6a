package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		description string
		body        string
		edit        func(c *Config)
	}{
		{
			description: "empty file keeps defaults",
			body:        "",
			edit:        func(c *Config) {},
		},
		{
			description: "partial sections override only their keys",
			body: `
[assist]
visible_item_count = 5

[dict]
path = "words.txt"
`,
			edit: func(c *Config) {
				c.Assist.VisibleItemCount = 5
				c.Dict.Path = "words.txt"
			},
		},
		{
			description: "wrong types are salvaged per key",
			body: `
[assist]
hover_lock_ms = "fast"
hide_delay_ms = 350

[server]
max_limit = 12
reload_every = true
`,
			edit: func(c *Config) {
				c.Assist.HideDelayMs = 350
				c.Server.MaxLimit = 12
			},
		},
		{
			description: "unknown sections are ignored",
			body: `
[cli]
default_limit = 3

[other]
x = 1
`,
			edit: func(c *Config) {
				c.CLI.DefaultLimit = 3
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := LoadConfig(writeConfig(t, tc.body))
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			want := DefaultConfig()
			tc.edit(want)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("LoadConfig() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadConfigUnparseable(t *testing.T) {
	got, err := LoadConfig(writeConfig(t, "[assist\nvisible_item_count = = 3"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultConfig()) {
		t.Errorf("broken file should give defaults, got %+v", got)
	}
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	got, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultConfig()) {
		t.Errorf("InitConfig() = %+v", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(reloaded, got) {
		t.Errorf("saved defaults did not load back: %+v", reloaded)
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_limit = 7\n")
	got, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPriority: %v", err)
	}
	if used != path {
		t.Errorf("path = %q, want %q", used, path)
	}
	if got.CLI.DefaultLimit != 7 {
		t.Errorf("DefaultLimit = %d, want 7", got.CLI.DefaultLimit)
	}
}

func TestUpdate(t *testing.T) {
	path := writeConfig(t, "")
	c := DefaultConfig()
	limit := 8
	if err := c.Update(path, &limit, nil, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Server.MaxLimit != 8 || got.Server.MaxBuffer != DefaultConfig().Server.MaxBuffer {
		t.Errorf("server after update = %+v", got.Server)
	}
}

func TestAssistDurations(t *testing.T) {
	a := AssistConfig{HoverLockMs: 100, HideDelayMs: 250}
	if a.HoverLock() != 100*time.Millisecond || a.HideDelay() != 250*time.Millisecond {
		t.Errorf("durations = %v, %v", a.HoverLock(), a.HideDelay())
	}
}
