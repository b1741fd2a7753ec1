package config

import (
	"flag"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "Test1 addr and dsn", args: []string{"cmd", "-a", ":9090", "-d", "postgres://x"},
			expected: &Config{EndpointAddr: ":9090", DatabaseDSN: "postgres://x"}},
		{name: "Test2 S3 settings", args: []string{"cmd", "-b", "photos", "-g", "eu-central-1", "-e", "http://minio:9000/"},
			expected: &Config{S3Bucket: "photos", S3Region: "eu-central-1", S3BaseEndpoint: "http://minio:9000/"}},
		{name: "Test3 secret", args: []string{"cmd", "-s", "hush"},
			expected: &Config{SecretKey: "hush"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
