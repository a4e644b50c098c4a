package tests

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("TELEGRAM_TOKEN", "test-token")
	os.Exit(m.Run())
}
