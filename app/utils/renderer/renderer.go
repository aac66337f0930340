// renderer/renderer.go
package renderer

import (
	"html/template"
	"strings"
	"time"

	"github.com/unrolled/render"
)

func New(templatesDir string, development bool) *render.Render {
	return render.New(render.Options{
		Directory:     templatesDir,
		Extensions:    []string{".html"},
		IndentJSON:    development,
		IsDevelopment: development,
		Funcs: []template.FuncMap{
			{
				"upper": strings.ToUpper,
				"year": func() int {
					return time.Now().Year()
				},
			},
		},
	})
}
