package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", cfg.AppPort)
	}
	if cfg.ModelPath == "" {
		t.Fatal("ModelPath default missing")
	}
	if cfg.MinioEndpoint != "" {
		t.Fatalf("MinioEndpoint = %q, want empty by default", cfg.MinioEndpoint)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MODEL_PATH", "/srv/models/aq.json.gz")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppPort != "9000" {
		t.Fatalf("AppPort = %q, want 9000", cfg.AppPort)
	}
	if cfg.ModelPath != "/srv/models/aq.json.gz" {
		t.Fatalf("ModelPath = %q", cfg.ModelPath)
	}
}

func TestLoadConfigIncompleteMinio(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minioadmin")
	// secret key, bucket and object left unset

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for incomplete minio configuration")
	}
}

func TestLoadConfigCompleteMinio(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minioadmin")
	t.Setenv("MINIO_SECRET_KEY", "minioadmin")
	t.Setenv("MINIO_BUCKET", "models")
	t.Setenv("MINIO_OBJECT", "air_quality_ensemble.json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinioBucket != "models" || cfg.MinioObject != "air_quality_ensemble.json" {
		t.Fatalf("minio settings not applied: %+v", cfg)
	}
}
