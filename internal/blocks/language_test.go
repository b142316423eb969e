package blocks

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", PlainText},
		{"   ", PlainText},
		{"py", "python"},
		{"JS", "javascript"},
		{"sh", "bash"},
		{"shell", "bash"},
		{"yml", "yaml"},
		{" rs ", "rust"},
		{"cpp", "c++"},
		{"Dockerfile", "docker"},
		{"python", "python"},
		{"haskell", "haskell"},
		{"Elixir", "elixir"},
	}
	for _, tc := range tests {
		if got := NormalizeLanguage(tc.in); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
