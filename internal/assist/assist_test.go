package assist

import (
	"context"
	"os"
	"testing"
)

func TestAskReturnsErrDisabledWhenTurnedOff(t *testing.T) {
	_, err := Ask(context.Background(), Settings{Enabled: false}, "hello", "")
	if err != ErrDisabled {
		t.Errorf("got %v, want ErrDisabled", err)
	}
}

func TestAskReturnsErrMissingAPIKeyWhenEnvUnset(t *testing.T) {
	const envVar = "VIED_TEST_ASSIST_KEY_UNSET"
	os.Unsetenv(envVar)

	_, err := Ask(context.Background(), Settings{Enabled: true, APIKeyEnv: envVar, Model: "claude-3-5-sonnet-latest"}, "hello", "")
	if err != ErrMissingAPIKey {
		t.Errorf("got %v, want ErrMissingAPIKey", err)
	}
}
