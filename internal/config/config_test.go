package config

import "testing"

func TestParseFillsDefaults(t *testing.T) {
	opts, err := Parse([]byte("max_diagnostics: 10\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if opts.MaxDiagnostics != 10 {
		t.Errorf("MaxDiagnostics = %d, want 10", opts.MaxDiagnostics)
	}

	if opts.EditionConstraint != ">=1.0.0, <2.0.0" {
		t.Errorf("EditionConstraint = %q, want default", opts.EditionConstraint)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	opts, err := Parse([]byte("edition_constraint: \">=2.0.0\"\nwarnings_as_errors: true\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if opts.EditionConstraint != ">=2.0.0" {
		t.Errorf("EditionConstraint = %q, want >=2.0.0", opts.EditionConstraint)
	}

	if !opts.WarningsAsErrors {
		t.Errorf("WarningsAsErrors = false, want true")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("not: valid: yaml: [")); err == nil {
		t.Fatalf("expected an error parsing malformed YAML")
	}
}
