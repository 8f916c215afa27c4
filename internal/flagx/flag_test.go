package flagx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	clientFlags := []string{"-a", "-s", "-l", "-t"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate values",
			args:    []string{"-a", "http://campus.local/api", "-c", "campus.yaml", "-l", "ru"},
			allowed: clientFlags,
			want:    []string{"-a", "http://campus.local/api", "-l", "ru"},
		},
		{
			name:    "equals form",
			args:    []string{"-s=/tmp/campus.db", "-config=campus.yaml", "-t=5s"},
			allowed: clientFlags,
			want:    []string{"-s=/tmp/campus.db", "-t=5s"},
		},
		{
			name:    "config flags only",
			args:    []string{"-a", "x", "-config=campus.json", "-c", "campus.yaml"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=campus.json", "-c", "campus.yaml"},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-l"},
			allowed: clientFlags,
			want:    []string{"-l"},
		},
		{
			name:    "next flag is not taken as value",
			args:    []string{"-a", "-l", "kz"},
			allowed: clientFlags,
			want:    []string{"-a", "-l", "kz"},
		},
		{
			name:    "positional and unknown dropped",
			args:    []string{"positional", "-x", "1", "--verbose=true"},
			allowed: clientFlags,
			want:    []string{},
		},
		{
			name:    "repeated flag kept in order",
			args:    []string{"-l", "en", "-l", "ru"},
			allowed: clientFlags,
			want:    []string{"-l", "en", "-l", "ru"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: clientFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/campus.yaml"}, "/etc/campus.yaml"},
		{"long", []string{"-config", "campus.json"}, "campus.json"},
		{"equals among client flags", []string{"-a", "http://api", "-config=campus.json", "-l", "ru"}, "campus.json"},
		{"absent", []string{"-a", "http://api", "-t", "5s"}, ""},
		{"last wins", []string{"-c", "one.json", "-config", "two.yaml"}, "two.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}
