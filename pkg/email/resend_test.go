package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_ResetCode(t *testing.T) {
	html, err := renderTemplate("reset-code.html", map[string]interface{}{
		"Email":        "a@b.com",
		"Code":         "123456",
		"ValidMinutes": 10,
		"Year":         2024,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "a@b.com")
	assert.Contains(t, html, "within the next 10 minutes")
}

func TestRenderTemplate_EscapesInput(t *testing.T) {
	html, err := renderTemplate("welcome.html", map[string]interface{}{
		"Name":  "<script>x</script>",
		"Email": "a@b.com",
		"Year":  2024,
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderTemplate_Unknown(t *testing.T) {
	_, err := renderTemplate("missing.html", nil)
	assert.Error(t, err)
}
