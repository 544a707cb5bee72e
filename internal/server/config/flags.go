package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/flagx"
)

// parseFlags overlays command-line flags.
//
//	-a string   gRPC bind address
//	-m string   metrics bind address ("" disables)
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-f string   file store backend: s3 | minio
//	-u string   object storage user
//	-p string   object storage password
//	-b string   bucket
//	-g string   region
//	-e string   object storage endpoint
//	-x int      presigned URL validity, minutes
//	-q string   Redis URL ("" disables push)
//	-l string   log level
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{
		"-a", "-m", "-d", "-s", "-t", "-r", "-f", "-u", "-p", "-b", "-g", "-e", "-x", "-q", "-l",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "metrics address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (minutes)")
	refreshMinutes := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (minutes)")

	fs.StringVar(&config.FileStoreBackend, "f", config.FileStoreBackend, "file store backend (s3|minio)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "object storage user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "object storage password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "object storage endpoint")

	presignMinutes := fs.Int("x", int(config.PresignExpiry.Minutes()), "presigned URL validity (minutes)")

	fs.StringVar(&config.RedisURL, "q", config.RedisURL, "redis URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// minute flags only override when given, so finer JSON/env values survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
		case "x":
			config.PresignExpiry = time.Duration(*presignMinutes) * time.Minute
		}
	})
}
