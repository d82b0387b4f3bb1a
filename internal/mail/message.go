// Package mail composes transactional messages and hands them to a transport.
package mail

// Message is a transport-agnostic email: a greeting, intro lines, an optional
// call-to-action button, outro lines and a salutation.
type Message struct {
	Subject    string   `json:"subject"`
	Greeting   string   `json:"greeting"`
	IntroLines []string `json:"intro_lines"`
	ActionText string   `json:"action_text,omitempty"`
	ActionURL  string   `json:"action_url,omitempty"`
	OutroLines []string `json:"outro_lines"`
	Salutation string   `json:"salutation,omitempty"`
}

func NewMessage() *Message {
	return &Message{}
}

func (m *Message) WithSubject(subject string) *Message {
	m.Subject = subject
	return m
}

func (m *Message) WithGreeting(greeting string) *Message {
	m.Greeting = greeting
	return m
}

// Line appends a paragraph. Lines added before Action are intro lines, later ones are outro lines.
func (m *Message) Line(text string) *Message {
	if m.ActionText == "" {
		m.IntroLines = append(m.IntroLines, text)
	} else {
		m.OutroLines = append(m.OutroLines, text)
	}
	return m
}

func (m *Message) Action(text, url string) *Message {
	m.ActionText = text
	m.ActionURL = url
	return m
}

func (m *Message) WithSalutation(salutation string) *Message {
	m.Salutation = salutation
	return m
}

func (m *Message) HasAction() bool {
	return m.ActionText != "" && m.ActionURL != ""
}
