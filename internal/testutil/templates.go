// internal/testutil/templates.go
package testutil

import (
	"testing"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// BootTemplates compiles the template sets registered by the packages linked
// into the test binary and installs the engine used by templates.Render.
func BootTemplates(t testing.TB) {
	t.Helper()
	eng := templates.New(false)
	if err := eng.Boot(zap.NewNop()); err != nil {
		t.Fatalf("boot templates: %v", err)
	}
	templates.UseEngine(eng, zap.NewNop())
}
