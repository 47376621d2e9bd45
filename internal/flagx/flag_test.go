package flagx

import (
	"os"
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
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.yaml", "-a", "http://localhost:8000/api"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.yaml"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "x"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-d", "-l", "debug"},
			allowed: []string{"-d", "-l"},
			want:    []string{"-d", "-l", "debug"},
		},
		{
			name:    "value that looks like a flag in equals form",
			args:    []string{"-config=--weird.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=--weird.json"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-a", "one", "-a", "two"},
			allowed: []string{"-a"},
			want:    []string{"-a", "one", "-a", "two"},
		},
		{
			name:    "empty args",
			args:    []string{},
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

func TestConfigFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/etc/feed.yaml"}
		assert.Equal(t, "/etc/feed.yaml", ConfigFile())
	})

	t.Run("long -config", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", "http://x/api", "-config", "/etc/feed.json"}
		assert.Equal(t, "/etc/feed.json", ConfigFile())
	})

	t.Run("none", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1"}
		assert.Empty(t, ConfigFile())
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "2.json", configFileFrom([]string{"-c", "1.json", "-config", "2.json"}))
	})
}
