package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "JOBPORTAL_"

const defaultEnvFile = ".env"

// parseEnv overlays JOBPORTAL_* variables. Values from the dotenv file
// (given with -env, else ./.env if it exists) are read first; the real
// process environment wins over the file. The file is never exported into
// the process environment.
func parseEnv(config *Config, args []string) {
	vars := map[string]string{}

	path := flagx.EnvFileFlags(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		vars = fileVars
	case explicit || !errors.Is(err, fs.ErrNotExist):
		panic(err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := vars[envPrefix+key]
		return v, ok
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("METRICS_ADDR", &config.MetricsAddr)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("SECRET_KEY", &config.SecretKey)
	dur("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	dur("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
	str("FILE_STORE", &config.FileStoreBackend)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	dur("PRESIGN_EXPIRY", &config.PresignExpiry)
	str("REDIS_URL", &config.RedisURL)
	str("LOG_LEVEL", &config.LogLevel)
}
