package mjml

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		html, err := Compile(context.Background(), `<mjml><mj-body><mj-section><mj-column><mj-text>Hello</mj-text></mj-column></mj-section></mj-body></mjml>`)
		require.NoError(t, err)
		assert.Contains(t, html, "Hello")
		assert.Contains(t, strings.ToLower(html), "<html")
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Compile(context.Background(), "   ")
		assert.Error(t, err)
	})
}

func TestHTMLToText(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head><body>
		<table><tr><td><div><h2>Acme</h2></div></td></tr></table>
		<p>First   paragraph
		with wrap.</p>
		<p>Visit <a href="https://acme.test">our site</a></p>
		<img src="x.png" alt="ignored">
		<p>Line<br>break</p>
	</body></html>`

	text, err := HTMLToText(html)
	require.NoError(t, err)

	assert.Equal(t, "Acme\n----\n\nFirst paragraph\nwith wrap.\n\nVisit our site (https://acme.test)\n\nLine\nbreak", text)
	assert.NotContains(t, text, "color:red")
}
