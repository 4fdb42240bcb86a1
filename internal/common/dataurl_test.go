package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripImagePrefix(t *testing.T) {
	assert.Equal(t, "iVBORw0KGgo=", StripImagePrefix("data:image/png;base64,iVBORw0KGgo="))
	assert.Equal(t, "AAAA", StripImagePrefix("data:image/webp;base64,AAAA"))
	// svg+xml has a non-word character in its subtype
	assert.Equal(t, "data:image/svg+xml;base64,AAAA", StripImagePrefix("data:image/svg+xml;base64,AAAA"))
	assert.Equal(t, "plain", StripImagePrefix("plain"))
}

func TestIsSVGDataURL(t *testing.T) {
	assert.True(t, IsSVGDataURL("data:image/svg+xml;base64,PHN2Zy8+"))
	assert.True(t, IsSVGDataURL("data:image/svg+xml,%3Csvg%2F%3E"))
	assert.False(t, IsSVGDataURL("data:image/png;base64,AAAA"))
	assert.False(t, IsSVGDataURL(""))
}

func TestParseDataURL(t *testing.T) {
	d, err := ParseDataURL("data:image/svg+xml;base64,PHN2Zy8+")
	require.NoError(t, err)
	assert.Equal(t, SVGMediaType, d.MediaType)
	assert.True(t, d.Base64)
	assert.Equal(t, "<svg/>", string(d.Data))

	d, err = ParseDataURL("data:image/svg+xml;charset=utf-8,%3Csvg%20width%3D%221%22%2F%3E")
	require.NoError(t, err)
	assert.False(t, d.Base64)
	assert.Equal(t, `<svg width="1"/>`, string(d.Data))

	d, err = ParseDataURL("data:image/png;base64,iVBORw0KGgo")
	require.NoError(t, err)
	assert.Equal(t, "image/png", d.MediaType)
	assert.Len(t, d.Data, 8)

	_, err = ParseDataURL("https://example.com/icon.png")
	assert.Error(t, err)
	_, err = ParseDataURL("data:image/png;base64")
	assert.Error(t, err)
	_, err = ParseDataURL("data:image/png;base64,!!!")
	assert.Error(t, err)
}
