package mail

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	"strings"
	texttmpl "text/template"
)

const htmlLayout = `<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #3d4852;">
{{- if .Greeting }}
<h1 style="font-size: 18px;">{{ .Greeting }}</h1>
{{- end }}
{{- range .IntroLines }}
<p>{{ . }}</p>
{{- end }}
{{- if .HasAction }}
<p><a href="{{ .ActionURL }}" style="background: #2d3748; color: #ffffff; padding: 8px 18px; border-radius: 4px; text-decoration: none;">{{ .ActionText }}</a></p>
{{- end }}
{{- range .OutroLines }}
<p>{{ . }}</p>
{{- end }}
{{- if .Salutation }}
<p>{{ .Salutation }}</p>
{{- end }}
</body>
</html>
`

const textLayout = `{{ if .Greeting }}{{ .Greeting }}

{{ end }}{{ range .IntroLines }}{{ . }}

{{ end }}{{ if .HasAction }}{{ .ActionText }}: {{ .ActionURL }}

{{ end }}{{ range .OutroLines }}{{ . }}

{{ end }}{{ if .Salutation }}{{ .Salutation }}
{{ end }}`

var (
	htmlTemplate = htmltmpl.Must(htmltmpl.New("mail.html").Parse(htmlLayout))
	textTemplate = texttmpl.Must(texttmpl.New("mail.txt").Parse(textLayout))
)

// Render produces the HTML and plain-text bodies of msg.
func Render(msg *Message) (html string, text string, err error) {
	if msg == nil {
		return "", "", fmt.Errorf("render: nil message")
	}

	var hb, tb bytes.Buffer
	if err := htmlTemplate.Execute(&hb, msg); err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	if err := textTemplate.Execute(&tb, msg); err != nil {
		return "", "", fmt.Errorf("render text: %w", err)
	}
	return hb.String(), strings.TrimSpace(tb.String()) + "\n", nil
}
