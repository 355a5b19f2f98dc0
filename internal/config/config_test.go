package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{name: "valid duration", key: "TEST_DUR", value: "30s", def: time.Minute, want: 30 * time.Second},
		{name: "invalid falls back to default", key: "TEST_DUR", value: "bogus", def: time.Minute, want: time.Minute},
		{name: "unset falls back to default", key: "TEST_DUR_MISSING", value: "", def: 5 * time.Second, want: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			if got := mustDuration(tt.key, tt.def); got != tt.want {
				t.Errorf("mustDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` "https://app.example.com" , http://localhost:3000 ,, `)
	want := []string{"https://app.example.com", "http://localhost:3000"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAndTrim()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "credentials hidden", in: "postgres://user:secret@db:5432/bookmarks", want: "postgres://***@db:5432/bookmarks"},
		{name: "no credentials untouched", in: "redis://localhost:6379/0", want: "redis://localhost:6379/0"},
		{name: "not a url fully redacted", in: "secret", want: "***REDACTED***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactURL(tt.in); got != tt.want {
				t.Errorf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadPanicsWithoutRequiredVars(t *testing.T) {
	os.Unsetenv("BOOKMARKD_DATABASE_URL")
	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic when BOOKMARKD_DATABASE_URL is missing")
		}
	}()
	Load()
}
