package logging

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := New(level, level == "debug")
		if err != nil {
			t.Fatalf("level %s: %v", level, err)
		}
		_ = logger.Sync()
	}

	if _, err := New("loud", false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
