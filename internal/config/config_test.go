package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("BOT_TOKEN", "test_bot_token")
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", "this_is_a_test_secret_key_with_32_chars_minimum")
	os.Setenv("ADMIN_PASSWORD", "admin_password")
	t.Cleanup(func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("JWT_SECRET_KEY")
		os.Unsetenv("ADMIN_PASSWORD")
	})
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BotToken != "test_bot_token" {
		t.Errorf("BotToken = %q, want %q", cfg.BotToken, "test_bot_token")
	}

	if cfg.SumScore != 100 {
		t.Errorf("SumScore = %d, want 100", cfg.SumScore)
	}

	if cfg.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", cfg.Attempts)
	}

	if cfg.QueueEnabled {
		t.Error("QueueEnabled = true, want false by default")
	}
}

func TestLoadConfig_QueueSettings(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("QUEUE_ENABLED", "true")
	os.Setenv("QUEUE_NAME", "test_queue")
	defer func() {
		os.Unsetenv("QUEUE_ENABLED")
		os.Unsetenv("QUEUE_NAME")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !cfg.QueueEnabled {
		t.Error("QueueEnabled = false, want true")
	}
	if cfg.QueueName != "test_queue" {
		t.Errorf("QueueName = %q, want %q", cfg.QueueName, "test_queue")
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing BOT_TOKEN",
			envVars: map[string]string{
				"DB_PASSWORD":    "password",
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
				"ADMIN_PASSWORD": "admin_password",
			},
		},
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"BOT_TOKEN":      "token",
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
				"ADMIN_PASSWORD": "admin_password",
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"BOT_TOKEN":      "token",
				"DB_PASSWORD":    "password",
				"ADMIN_PASSWORD": "admin_password",
			},
		},
		{
			name: "Missing ADMIN_PASSWORD",
			envVars: map[string]string{
				"BOT_TOKEN":      "token",
				"DB_PASSWORD":    "password",
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error for missing required field, got nil")
			}
		})
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := &Config{
		BotToken:      "token",
		DBPassword:    "password",
		JWTSecret:     "short",
		AdminPassword: "admin_password",
		SumScore:      100,
		Attempts:      3,
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}

func TestValidate_GameSettings(t *testing.T) {
	tests := []struct {
		name     string
		sumScore int
		attempts int
		wantErr  bool
	}{
		{
			name:     "Valid settings",
			sumScore: 100,
			attempts: 3,
			wantErr:  false,
		},
		{
			name:     "Zero sum score",
			sumScore: 0,
			attempts: 3,
			wantErr:  true,
		},
		{
			name:     "Negative attempts",
			sumScore: 100,
			attempts: -1,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				BotToken:      "token",
				DBPassword:    "password",
				JWTSecret:     "this_is_a_test_secret_key_with_32_chars_minimum",
				AdminPassword: "admin_password",
				SumScore:      tt.sumScore,
				Attempts:      tt.attempts,
			}

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}
