package config

import (
	"flag"
	"os"

	"github.com/dkomarov/garagehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the entry store (e.g., "http://127.0.0.1:8080")
//	-b string   S3 bucket used for photo URL rendering
//	-g string   S3 region used for photo URL rendering
//	-d string   directory for session state
//
// The function filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-g", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpoint, "a", cfg.ServerEndpoint, "base URL of the entry store")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for photo URLs")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region for photo URLs")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "session state directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
