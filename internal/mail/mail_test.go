package mail

import (
	"context"
	"testing"

	"depositor/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sampleMessage() *Message {
	return NewMessage().
		WithSubject("Deposit Successful").
		WithGreeting("Hello,").
		Line("Your deposit of 42.50 was successful.").
		Action("View dashboard", "http://localhost:3000/home").
		Line("Thank you for using our application!").
		WithSalutation("Regards, Depositor")
}

func TestMessage_LinesSplitAroundAction(t *testing.T) {
	msg := sampleMessage()

	assert.Equal(t, []string{"Your deposit of 42.50 was successful."}, msg.IntroLines)
	assert.Equal(t, []string{"Thank you for using our application!"}, msg.OutroLines)
	assert.True(t, msg.HasAction())
}

func TestRender(t *testing.T) {
	html, text, err := Render(sampleMessage())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1 style=\"font-size: 18px;\">Hello,</h1>")
	assert.Contains(t, html, `<a href="http://localhost:3000/home"`)
	assert.Contains(t, html, "Your deposit of 42.50 was successful.")

	expected := "Hello,\n\n" +
		"Your deposit of 42.50 was successful.\n\n" +
		"View dashboard: http://localhost:3000/home\n\n" +
		"Thank you for using our application!\n\n" +
		"Regards, Depositor\n"
	assert.Equal(t, expected, text)
}

func TestRender_EscapesHTML(t *testing.T) {
	html, _, err := Render(NewMessage().Line("<script>alert(1)</script>"))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_NilMessage(t *testing.T) {
	_, _, err := Render(nil)
	assert.Error(t, err)
}

func TestLogTransport_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	transport := NewLogTransport(zap.New(core))

	err := transport.Send(context.Background(), "ada@example.com", sampleMessage())
	require.NoError(t, err)

	entries := logs.FilterMessage("mail delivered to log").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ada@example.com", entries[0].ContextMap()["to"])
	assert.Equal(t, "Deposit Successful", entries[0].ContextMap()["subject"])
}

func TestNewTransport(t *testing.T) {
	tr, err := NewTransport(config.MailConfig{Driver: "log"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LogTransport{}, tr)

	_, err = NewTransport(config.MailConfig{Driver: "mailgun"}, nil)
	assert.Error(t, err)

	tr, err = NewTransport(config.MailConfig{Driver: "mailgun", MailgunDomain: "mg.example.com", MailgunAPIKey: "key"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MailgunTransport{}, tr)

	_, err = NewTransport(config.MailConfig{Driver: "carrier-pigeon"}, nil)
	assert.Error(t, err)
}
