package extraction

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// SystemInstruction is sent with every chunk as the system-role message.
const SystemInstruction = "You transform unstructured brain dumps into independent actionable tasks. " +
	"Break compound thoughts into separate tasks, remove filler language, keep each task specific and clear, " +
	"and infer categories only when confidence is high."

// defaultPromptTemplate renders the user-role message for one chunk.
const defaultPromptTemplate = `Predefined categories: {{join .Categories ", "}}.

Brain dump:
{{.Chunk}}

Return tasks in JSON format only.`

// promptData represents the data passed to the prompt template
type promptData struct {
	Categories []string
	Chunk      string
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

// DefaultPromptTemplate returns the built-in user prompt template.
func DefaultPromptTemplate() *template.Template {
	return template.Must(template.New("braindump").Funcs(promptFuncs).Parse(defaultPromptTemplate))
}

// LoadPromptTemplate reads and parses a prompt template from path. The
// template receives .Categories ([]string) and .Chunk (string), and may use
// the join function.
func LoadPromptTemplate(path string) (*template.Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template from %s: %w", path, err)
	}

	tmpl, err := template.New("braindump").Funcs(promptFuncs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}

	return tmpl, nil
}

// renderPrompt executes tmpl for one chunk.
func renderPrompt(tmpl *template.Template, categories []string, chunk string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Categories: categories, Chunk: chunk}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
