package cache

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			name:  "single segment",
			parts: []string{"session"},
			want:  "session",
		},
		{
			name:  "multiple segments",
			parts: []string{"trading", "positions", "acct-7"},
			want:  "trading:positions:acct-7",
		},
		{
			name:  "trims separators and spaces",
			parts: []string{":trading:", "  metrics ", "cpu:"},
			want:  "trading:metrics:cpu",
		},
		{
			name:  "drops empty segments",
			parts: []string{"", "app", "", "counter"},
			want:  "app:counter",
		},
		{
			name:  "no segments",
			parts: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.parts...); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestKeyWithParams(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		params map[string]string
		want   string
	}{
		{
			name: "no params",
			base: "quotes",
			want: "quotes",
		},
		{
			name:   "single param",
			base:   "quotes",
			params: map[string]string{"sym": "ETH"},
			want:   "quotes:sym=ETH",
		},
		{
			name:   "params sorted",
			base:   "quotes",
			params: map[string]string{"venue": "x", "sym": "ETH", "depth": "10"},
			want:   "quotes:depth=10:sym=ETH:venue=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyWithParams(tt.base, tt.params); got != tt.want {
				t.Errorf("KeyWithParams() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyWithParams_Deterministic(t *testing.T) {
	params := map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"}
	first := KeyWithParams("base", params)
	for i := 0; i < 50; i++ {
		if got := KeyWithParams("base", params); got != first {
			t.Fatalf("iteration %d: got %q, want %q", i, got, first)
		}
	}
}
