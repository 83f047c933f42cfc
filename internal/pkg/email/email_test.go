package email

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPasswordResetEmail_LogsWithoutCredentials(t *testing.T) {
	var buf bytes.Buffer
	svc := NewEmailService(SMTPConfig{FrontendURL: "http://app.test/"}, zerolog.New(&buf))

	require.NoError(t, svc.SendPasswordResetEmail("sara@example.com", "Sara", "tok123"))
	assert.Contains(t, buf.String(), "http://app.test/reset-password?token=tok123")
}

func TestSendApplicationStatusEmail_LogsWithoutCredentials(t *testing.T) {
	var buf bytes.Buffer
	svc := NewEmailService(SMTPConfig{}, zerolog.New(&buf))

	require.NoError(t, svc.SendApplicationStatusEmail("sara@example.com", "Sara", "Backend Intern", "accepted"))
	assert.Contains(t, buf.String(), "accepted")
}

func TestBuildMessage(t *testing.T) {
	svc := &EmailServiceImpl{config: SMTPConfig{FromName: "FutureIntern", FromEmail: "no-reply@futureintern.test"}}
	msg := svc.buildMessage("sara@example.com", "Hi", "<p>body</p>")

	assert.True(t, strings.HasPrefix(msg, "From: FutureIntern <no-reply@futureintern.test>\r\n"))
	assert.Contains(t, msg, "To: sara@example.com\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>body</p>"))
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
