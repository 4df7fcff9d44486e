package vkdgen

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/pkg/errors"
)

//go:embed templates/loader.d.tmpl
var loaderTemplateSrc string

var loaderTemplate = template.Must(template.New("loader.d").Parse(loaderTemplateSrc))

// RenderLoader returns the contents of the loader module of the D package pkg.
func RenderLoader(pkg string) ([]byte, error) {
	var buf bytes.Buffer
	err := loaderTemplate.Execute(&buf, struct{ Package string }{pkg})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render loader module for package %q", pkg)
	}
	return buf.Bytes(), nil
}
