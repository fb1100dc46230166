package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/vsforge/gram/gen"
)

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create_new_settings",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				t.Helper()

				if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				t.Helper()

				if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "settings.json")

			if tt.setup != nil {
				tt.setup(t, path)
			}

			var cli struct {
				Strict   bool   `help:"strict"`
				LogLevel string `default:"info" help:"level"`
			}

			parser, err := kong.New(&cli, kong.Vars{
				SettingsIdentifier: path,
			})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), ktx)

			cmd := &Init{Force: tt.force}

			err = cmd.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading settings: %v", err)
			}

			var doc map[string]any
			if err := (gen.Codec{Strict: true}).Decode(data, &doc); err != nil {
				t.Fatalf("settings file is not valid JSON: %v", err)
			}

			if doc["log-level"] != "info" {
				t.Errorf("log-level = %v, want info", doc["log-level"])
			}
		})
	}
}
