package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=postgres://x", "-a", "localhost"},
			allowed: []string{"-d"},
			want:    []string{"-d=postgres://x"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-s", "secret"},
			allowed: []string{"-c", "-s"},
			want:    []string{"-c", "-s", "secret"},
		},
		{
			name:    "order and repeats preserved",
			args:    []string{"-a", ":1", "-c", "one.json", "-a", ":2"},
			allowed: []string{"-a", "-c"},
			want:    []string{"-a", ":1", "-c", "one.json", "-a", ":2"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJSONConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/blogd.json", JSONConfigPath([]string{"-c", "/etc/blogd.json"}))
	assert.Equal(t, "/etc/blogd.json", JSONConfigPath([]string{"-a", ":1", "-config", "/etc/blogd.json"}))
	assert.Equal(t, "2.json", JSONConfigPath([]string{"-c", "1.json", "-config=2.json"}))
	assert.Empty(t, JSONConfigPath([]string{"-x", "1"}))
}
