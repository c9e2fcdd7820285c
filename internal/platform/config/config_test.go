package config

import "testing"

func validConfig() Config {
	return Config{
		DatabaseURL:        "postgres://localhost/staffhub",
		Environment:        "development",
		OfficeStart:        "09:00:00",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateRejectsBadOfficeStart(t *testing.T) {
	cfg := validConfig()
	cfg.OfficeStart = "9am"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed OFFICE_START_TIME")
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.RunSeed = false
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
}
