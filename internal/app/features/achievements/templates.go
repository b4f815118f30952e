// internal/app/features/achievements/templates.go
package achievements

import (
	"embed"

	"github.com/dalemusser/ekskulhub/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	resources.LoadSharedTemplates()
	templates.Register(templates.Set{
		Name:     "achievements",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
