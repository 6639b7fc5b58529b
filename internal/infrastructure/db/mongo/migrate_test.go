package mongo

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationURL(t *testing.T) {
	cases := []struct {
		uri, db, want string
		wantErr       bool
	}{
		{"mongodb://localhost:27017", "interviews", "mongodb://localhost:27017/interviews", false},
		{"mongodb://u:p@db:27017/admin?authSource=admin", "interviews", "mongodb://u:p@db:27017/interviews?authSource=admin", false},
		{"mongodb://localhost:27017/interviews", "", "mongodb://localhost:27017/interviews", false},
		{"mongodb://localhost:27017", "", "", true},
		{"postgres://localhost/x", "x", "", true},
	}
	for _, tc := range cases {
		got, err := migrationURL(tc.uri, tc.db)
		if tc.wantErr {
			if err == nil {
				t.Errorf("migrationURL(%q, %q): expected error", tc.uri, tc.db)
			}
			continue
		}
		if err != nil {
			t.Errorf("migrationURL(%q, %q): unexpected error: %v", tc.uri, tc.db, err)
			continue
		}
		if got != tc.want {
			t.Errorf("migrationURL(%q, %q) = %q, want %q", tc.uri, tc.db, got, tc.want)
		}
	}
}

func TestEmbeddedMigrations_PairedAndValid(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		data, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		var cmds []map[string]any
		if err := json.Unmarshal(data, &cmds); err != nil {
			t.Errorf("%s: not a JSON command array: %v", name, err)
		}
		switch {
		case strings.HasSuffix(name, ".up.json"):
			ups[strings.TrimSuffix(name, ".up.json")] = true
		case strings.HasSuffix(name, ".down.json"):
			downs[strings.TrimSuffix(name, ".down.json")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("expected at least one migration")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("migration %s has no down file", v)
		}
	}
}

func TestEmbeddedMigrations_ActiveHostIndexIsPartialUnique(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/000002_sessions_indexes.up.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var cmds []struct {
		Indexes []struct {
			Name    string         `json:"name"`
			Unique  bool           `json:"unique"`
			Partial map[string]any `json:"partialFilterExpression"`
		} `json:"indexes"`
	}
	if err := json.Unmarshal(data, &cmds); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, idx := range cmds[0].Indexes {
		if idx.Name == "uniq_active_host" {
			if !idx.Unique || idx.Partial["status"] != "active" {
				t.Errorf("unexpected index definition: %+v", idx)
			}
			return
		}
	}
	t.Fatal("uniq_active_host index not found")
}
