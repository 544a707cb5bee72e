package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("process environment", func(t *testing.T) {
		t.Setenv("JOBPORTAL_GRPC_ADDR", ":6000")
		t.Setenv("JOBPORTAL_ACCESS_TOKEN_TTL", "2m")
		t.Setenv("JOBPORTAL_REDIS_URL", "redis://localhost:6379/1")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg, nil)

		assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
		assert.Equal(t, "cvs", cfg.S3Bucket)
	})

	t.Run("dotenv file, process env wins", func(t *testing.T) {
		path := writeTempFile(t, "", "app.env",
			"JOBPORTAL_SECRET_KEY=from-file\nJOBPORTAL_S3_REGION=eu-west-1\nJOBPORTAL_FILE_STORE=minio\n")
		t.Setenv("JOBPORTAL_SECRET_KEY", "from-env")

		cfg := &Config{}
		parseEnv(cfg, []string{"-env", path})

		assert.Equal(t, "from-env", cfg.SecretKey)
		assert.Equal(t, "eu-west-1", cfg.S3Region)
		assert.Equal(t, FileStoreMinio, cfg.FileStoreBackend)
	})

	t.Run("explicit missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseEnv(&Config{}, []string{"-env", "/nonexistent/x.env"}) })
	})

	t.Run("bad duration panics", func(t *testing.T) {
		t.Setenv("JOBPORTAL_PRESIGN_EXPIRY", "soon")
		require.Panics(t, func() { parseEnv(&Config{}, nil) })
	})
}
