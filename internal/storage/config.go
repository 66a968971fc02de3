package storage

import "os"

// MinIOConfig holds the connection settings for the optional book archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
}

// LoadMinIOConfig loads MinIO config from environment
func LoadMinIOConfig() *MinIOConfig {
	return &MinIOConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:    getEnv("MINIO_BUCKET", "adventures-of-books"),
		Region:    getEnv("MINIO_REGION", "us-east-1"),
	}
}

// Enabled reports whether an archive endpoint was configured.
func (c *MinIOConfig) Enabled() bool {
	return c != nil && c.Endpoint != ""
}

func getEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
