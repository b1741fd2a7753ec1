package config

import (
	"encoding/json"
	"os"

	"github.com/dkomarov/garagehub/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep their current (default) values.
type JsonConfig struct {
	ServerEndpoint *string `json:"server_endpoint"`
	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	DataDir        *string `json:"data_dir"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is given the function is a no-op; read or
// unmarshal errors panic (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpoint != nil {
		cfg.ServerEndpoint = *jc.ServerEndpoint
	}
	if jc.S3Bucket != nil {
		cfg.S3Bucket = *jc.S3Bucket
	}
	if jc.S3Region != nil {
		cfg.S3Region = *jc.S3Region
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
}
