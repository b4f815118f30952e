// internal/app/features/ekskulpage/templates.go
package ekskulpage

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
		Name:     "ekskulpage",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
