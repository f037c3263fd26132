package web

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates
var templatesFS embed.FS

// LoadTemplates 注册所有页面模板，每个视图都与布局组合
func LoadTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts := mustGlob("templates/layouts/*.html")

	funcMap := template.FuncMap{}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, mustRead(view))
		return files
	}

	// Manual registration to ensure keys match handler expectation
	r.AddFromStringsFuncs("verify/result.html", funcMap, assemble("templates/views/verify/result.html")...)

	return r
}

func mustGlob(pattern string) []string {
	names, err := fs.Glob(templatesFS, pattern)
	if err != nil {
		panic(err)
	}
	contents := make([]string, 0, len(names))
	for _, name := range names {
		contents = append(contents, mustRead(name))
	}
	return contents
}

func mustRead(name string) string {
	b, err := templatesFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}
