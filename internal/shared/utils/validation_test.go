package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWebhookURL(t *testing.T) {
	valid := []string{
		"https://example.com/webhook",
		"https://api.acme.io/v1/events?source=lutrii",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateWebhookURL(u), u)
	}

	invalid := []string{
		"",
		"not-a-url",
		"http://example.com/webhook",
		"https://localhost/webhook",
		"https://service.internal/webhook",
		"https://127.0.0.1/webhook",
		"https://10.0.0.5/webhook",
		"https://192.168.1.10/webhook",
		"https://169.254.169.254/latest/meta-data",
	}
	for _, u := range invalid {
		assert.Error(t, ValidateWebhookURL(u), u)
	}
}
