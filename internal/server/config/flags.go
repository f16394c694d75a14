package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/todovault/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   token HMAC secret key
//	-k string   repository backend ("dynamo", "postgres", "memory")
//	-d string   PostgreSQL DSN
//	-t string   DynamoDB table name
//	-i string   DynamoDB owner index name
//	-y string   DynamoDB endpoint override (DynamoDB Local)
//	-g string   AWS region (DynamoDB and S3 clients)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l int      presigned link validity, minutes
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The link validity flag is accepted as an integer in minutes and then
//     converted to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-k", "-d", "-t", "-i", "-y", "-u", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.RepositoryBackend, "k", config.RepositoryBackend, "repository backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DynamoTable, "t", config.DynamoTable, "DynamoDB table")
	fs.StringVar(&config.DynamoByUserIndex, "i", config.DynamoByUserIndex, "DynamoDB owner index")
	fs.StringVar(&config.DynamoEndpoint, "y", config.DynamoEndpoint, "DynamoDB endpoint override")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	linkValidityDuration := fs.Int("l", int(config.LinkValidityDuration.Minutes()), "link_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LinkValidityDuration = time.Duration(*linkValidityDuration) * time.Minute
}
