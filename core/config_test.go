package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults",
			want: Config{
				Env: "DEV", Build: "dev", AppName: "Gradebook", Debug: true,
				DataDir: ".", GradesFile: "Grades.dat", PolicyFile: "policy.dat",
			},
		},
		{
			name: "test env",
			env:  map[string]string{"ENV": "test"},
			want: Config{
				Env: "TEST", Build: "dev", AppName: "Gradebook", Debug: true, TestMode: true,
				DataDir: ".", GradesFile: "Grades.dat", PolicyFile: "policy.dat",
			},
		},
		{
			name: "prefixed overrides",
			env: map[string]string{
				"ENV":              "prod",
				"PROD_DEBUG":       "false",
				"PROD_DATA_DIR":    "/var/lib/gradebook",
				"PROD_GRADES_FILE": "grades.json",
				"DEV_POLICY_FILE":  "ignored.json",
			},
			want: Config{
				Env: "PROD", Build: "dev", AppName: "Gradebook",
				DataDir: "/var/lib/gradebook", GradesFile: "grades.json", PolicyFile: "policy.dat",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			conf, err := NewConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.want, *conf)
		})
	}
}

func TestConfig_paths(t *testing.T) {
	conf := Config{DataDir: "/data", GradesFile: "Grades.dat", PolicyFile: "/etc/gradebook/policy.dat"}
	assert.Equal(t, filepath.Join("/data", "Grades.dat"), conf.GradesPath())
	assert.Equal(t, "/etc/gradebook/policy.dat", conf.PolicyPath())
}
