package xmlmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolworks/legisync/pkg/errors"
)

const billDoc = `<?xml version="1.0"?>
<bill type="hr" session="111" number="1">
  <introduced datetime="2009-01-06"/>
  <titles>
    <title type="official" as="introduced">Making appropriations.</title>
    <title type="short" as="introduced">Recovery Act</title>
  </titles>
  <cosponsors>
    <cosponsor id="400001" joined="2009-01-06"/>
    <cosponsor id="400002" joined="2009-01-07"/>
  </cosponsors>
</bill>`

func TestParse(t *testing.T) {
	root, err := Parse(strings.NewReader(billDoc))
	require.NoError(t, err)

	assert.Equal(t, "bill", root.Name)
	assert.Equal(t, "hr", root.Attr("type"))
	assert.Equal(t, "111", root.Attr("session"))
	assert.True(t, root.HasAttr("number"))
	assert.False(t, root.HasAttr("missing"))
	assert.Empty(t, root.Attr("missing"))
}

func TestParseTrimsText(t *testing.T) {
	root, err := Parse(strings.NewReader(`<a><b>  hello  world </b></a>`))
	require.NoError(t, err)

	b := root.First("b")
	require.NotNil(t, b)
	assert.Equal(t, "hello  world", b.Text)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`<bill><introduced></bill>`))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader(``))
	assert.Error(t, err)
}

func TestFirstAndAll(t *testing.T) {
	root, err := Parse(strings.NewReader(billDoc))
	require.NoError(t, err)

	titles := root.All("titles/title")
	require.Len(t, titles, 2)
	assert.Equal(t, "official", titles[0].Attr("type"))
	assert.Equal(t, "Recovery Act", titles[1].Text)

	first := root.First("titles/title")
	require.NotNil(t, first)
	assert.Equal(t, "Making appropriations.", first.Text)

	cosponsors := root.All("cosponsors/cosponsor")
	assert.Len(t, cosponsors, 2)

	assert.Nil(t, root.First("sponsor"))
	assert.Empty(t, root.All("nope/nothing"))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hr1.xml")
	require.NoError(t, os.WriteFile(path, []byte(billDoc), 0o644))

	root, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bill", root.Name)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
