package postgres

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cat", "cat"},
		{"100%", `100\%`},
		{"my_file", `my\_file`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.input); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	if tables.Folders != "test_folders" {
		t.Errorf("Folders = %q, want test_folders", tables.Folders)
	}
	if tables.Assets != "test_assets" {
		t.Errorf("Assets = %q, want test_assets", tables.Assets)
	}
}
