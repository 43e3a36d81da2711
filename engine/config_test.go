package engine

import "testing"

func TestConfigValidateDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfigValidateRejectsNonPositiveBounds(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"max-jobs", Config{MaxJobs: 0, MaxLineLength: 1, MaxOutputLength: 1}},
		{"max-line-length", Config{MaxJobs: 1, MaxLineLength: 0, MaxOutputLength: 1}},
		{"max-output-length", Config{MaxJobs: 1, MaxLineLength: 1, MaxOutputLength: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Fatalf("expected an error for %s", tc.name)
			}
		})
	}
}

func TestConfigValidateJoinIncompatibleWithSilentOrAnonymous(t *testing.T) {
	base := Config{MaxJobs: 1, MaxLineLength: 1, MaxOutputLength: 1, Mode: ModeJoin}

	silent := base
	silent.Silent = true
	if err := silent.Validate(); err == nil {
		t.Fatal("expected join+silent to be rejected")
	}

	anon := base
	anon.Anonymous = true
	if err := anon.Validate(); err == nil {
		t.Fatal("expected join+anonymous to be rejected")
	}
}

func TestModeString(t *testing.T) {
	if ModeLine.String() != "line" {
		t.Errorf("got %q", ModeLine.String())
	}
	if ModeGroup.String() != "group" {
		t.Errorf("got %q", ModeGroup.String())
	}
	if ModeJoin.String() != "join" {
		t.Errorf("got %q", ModeJoin.String())
	}
}
