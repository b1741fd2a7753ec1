package config

import (
	"encoding/json"
	"os"

	"github.com/dkomarov/garagehub/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep their current (default) values.
type JsonConfig struct {
	EndpointAddr   *string `json:"endpoint_addr"`
	DatabaseDSN    *string `json:"database_dsn"`
	SecretKey      *string `json:"secret_key"`
	S3RootUser     *string `json:"s3_root_user"`
	S3RootPassword *string `json:"s3_root_password"`
	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is given the function is a no-op; read or
// unmarshal errors panic.
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

	if jc.EndpointAddr != nil {
		cfg.EndpointAddr = *jc.EndpointAddr
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.S3RootUser != nil {
		cfg.S3RootUser = *jc.S3RootUser
	}
	if jc.S3RootPassword != nil {
		cfg.S3RootPassword = *jc.S3RootPassword
	}
	if jc.S3Bucket != nil {
		cfg.S3Bucket = *jc.S3Bucket
	}
	if jc.S3Region != nil {
		cfg.S3Region = *jc.S3Region
	}
	if jc.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *jc.S3BaseEndpoint
	}
}
