package mailer

import (
	"mime"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBuildsMessage(t *testing.T) {
	m := NewSMTP(Config{Host: "smtp.test", From: "gallery@test", Password: "pw"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	require.NoError(t, m.Send("inbox@test", "visitor@example.com\r\nBcc: x@evil", "Hello\nBcc: y@evil", "Body text"))

	assert.Equal(t, "smtp.test:587", gotAddr)
	assert.Equal(t, []string{"inbox@test"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Hello Bcc: y@evil\r\n")
	assert.Contains(t, gotMsg, "Reply-To: visitor@example.com  Bcc: x@evil\r\n")
	assert.True(t, strings.HasSuffix(gotMsg, "\r\n\r\nBody text\r\n"))
}

func TestSendEncodesNonASCIISubject(t *testing.T) {
	m := NewSMTP(Config{Host: "smtp.test", From: "gallery@test"})

	var gotMsg string
	m.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}
	require.NoError(t, m.Send("inbox@test", "", "Message from Seán Ó Briain", "Body"))

	line := strings.SplitN(gotMsg, "\r\n", 2)[0]
	require.True(t, strings.HasPrefix(line, "Subject: =?utf-8?q?"), line)
	decoded, err := new(mime.WordDecoder).DecodeHeader(strings.TrimPrefix(line, "Subject: "))
	require.NoError(t, err)
	assert.Equal(t, "Message from Seán Ó Briain", decoded)
}

func TestSendNotConfigured(t *testing.T) {
	m := NewSMTP(Config{})
	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send("a@b", "", "s", "b"), ErrNotConfigured)
}
