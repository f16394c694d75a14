package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/todovault/internal/flagx"
	"github.com/dmitrijs2005/todovault/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP     string         `json:"endpoint_addr_http"`
	SecretKey            string         `json:"secret_key"`
	RepositoryBackend    string         `json:"repository_backend"`
	DatabaseDSN          string         `json:"database_dsn"`
	DynamoTable          string         `json:"dynamo_table"`
	DynamoByUserIndex    string         `json:"dynamo_by_user_index"`
	DynamoEndpoint       string         `json:"dynamo_endpoint"`
	AWSRegion            string         `json:"aws_region"`
	S3RootUser           string         `json:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	LinkValidityDuration timex.Duration `json:"link_validity_duration"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.SecretKey = c.SecretKey
	config.RepositoryBackend = c.RepositoryBackend
	config.DatabaseDSN = c.DatabaseDSN
	config.DynamoTable = c.DynamoTable
	config.DynamoByUserIndex = c.DynamoByUserIndex
	config.DynamoEndpoint = c.DynamoEndpoint
	config.AWSRegion = c.AWSRegion
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.LinkValidityDuration = time.Duration(c.LinkValidityDuration.Duration)
}
