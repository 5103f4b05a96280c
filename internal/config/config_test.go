package config

import (
	"errors"
	"testing"

	"datacheck/domain/core"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("EVALUATE_EXTENDED", "")
	t.Setenv("DOSSIER_PARALLEL", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if !cfg.Evaluate.Extended {
		t.Error("extended must default to true")
	}
	if cfg.Evaluate.DossierParallel != 4 {
		t.Errorf("parallel = %d", cfg.Evaluate.DossierParallel)
	}
	if cfg.Evaluate.MaxUploadBytes != 64<<20 {
		t.Errorf("max upload = %d", cfg.Evaluate.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EVALUATE_EXTENDED", "false")
	t.Setenv("DOSSIER_PARALLEL", "8")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Evaluate.Extended {
		t.Error("extended = true, want false")
	}
	if cfg.Evaluate.DossierParallel != 8 {
		t.Errorf("parallel = %d", cfg.Evaluate.DossierParallel)
	}
	if cfg.Evaluate.MaxUploadBytes != 1024 {
		t.Errorf("max upload = %d", cfg.Evaluate.MaxUploadBytes)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"EVALUATE_EXTENDED": "sometimes",
		"DOSSIER_PARALLEL":  "0",
		"MAX_UPLOAD_BYTES":  "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, core.ErrInvalidArgument) {
				t.Errorf("err = %v", err)
			}
		})
	}
}
