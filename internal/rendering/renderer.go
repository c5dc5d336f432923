package rendering

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jonathan/invitation-letters/internal/types"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// DefaultTemplate is the embedded template used when no path is configured.
const DefaultTemplate = "invitation.html.tmpl"

// FileRenderer executes a document template for each group and writes the
// result into an output directory.
type FileRenderer struct {
	tmpl      *template.Template
	outputDir string
	ext       string
}

// NewFileRenderer parses the template at templatePath, or the embedded
// default when templatePath is empty, and prepares outputDir.
func NewFileRenderer(templatePath, outputDir string) (*FileRenderer, error) {
	name, content, err := readTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	ext := ExtensionFor(name)
	tmpl, err := parseTemplate(name, content, ext)
	if err != nil {
		return nil, &TemplateError{Path: templatePath, Message: "failed to parse template", Cause: err}
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, &RenderError{Artifact: outputDir, Message: "failed to create output directory", Cause: err}
	}

	return &FileRenderer{tmpl: tmpl, outputDir: outputDir, ext: ext}, nil
}

// readTemplate returns the template's base name and content
func readTemplate(templatePath string) (string, []byte, error) {
	if templatePath == "" {
		content, err := embeddedTemplates.ReadFile("templates/" + DefaultTemplate)
		if err != nil {
			return "", nil, &TemplateError{Path: DefaultTemplate, Message: "embedded template missing", Cause: err}
		}
		return DefaultTemplate, content, nil
	}

	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &TemplateError{Path: templatePath, Message: "template file not found", Cause: err}
		}
		return "", nil, &TemplateError{Path: templatePath, Message: "failed to read template file", Cause: err}
	}
	return filepath.Base(templatePath), content, nil
}

func parseTemplate(name string, content []byte, ext string) (*template.Template, error) {
	return template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"escape": escaperFor(ext)}).
		Parse(string(content))
}

// ExtensionFor derives the artifact extension from a template name: a
// trailing .tmpl is dropped and the remaining extension is used, .html when
// there is none.
func ExtensionFor(templateName string) string {
	base := strings.TrimSuffix(filepath.Base(templateName), ".tmpl")
	if ext := filepath.Ext(base); ext != "" {
		return ext
	}
	return ".html"
}

// Execute renders doc to a string without writing it.
func (r *FileRenderer) Execute(doc types.GroupDocument) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, doc); err != nil {
		return "", &TemplateError{Path: r.tmpl.Name(), Message: "failed to execute template", Cause: err}
	}
	return sb.String(), nil
}

// Render writes doc's artifact and returns its path. The file appears
// atomically: it is written under a temporary name and renamed in place.
func (r *FileRenderer) Render(ctx context.Context, doc types.GroupDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := r.Execute(doc)
	if err != nil {
		return "", err
	}

	name := ArtifactName(doc.Key(), r.ext)
	path := filepath.Join(r.outputDir, name)

	tmp, err := os.CreateTemp(r.outputDir, ".render-*")
	if err != nil {
		return "", &RenderError{Artifact: name, Message: "failed to create temp file for", Cause: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return "", &RenderError{Artifact: name, Message: "failed to write", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &RenderError{Artifact: name, Message: "failed to close", Cause: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", &RenderError{Artifact: name, Message: "failed to move into place", Cause: err}
	}

	return path, nil
}

// reservedNameChars are percent-encoded in artifact name fields. The field
// separator and the escape character are included so distinct keys never
// share a name.
const reservedNameChars = `_%/\:*?"<>|`

// ArtifactName builds the deterministic file name of a group's artifact from
// its city, work location and division.
func ArtifactName(key types.GroupKey, ext string) string {
	parts := []string{key.City, key.WorkLocation, key.Division}
	for i, p := range parts {
		parts[i] = escapeNameField(p)
	}
	return fmt.Sprintf("%s%s", strings.Join(parts, "_"), ext)
}

func escapeNameField(field string) string {
	var sb strings.Builder
	for _, r := range field {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(reservedNameChars, r) {
			fmt.Fprintf(&sb, "%%%02X", r)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
