package htmldom_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/htmldom"
	"github.com/fwojciec/htmldom/xhtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fragmentHTML parses fragment and serializes the whole tree back.
func fragmentHTML(t *testing.T, fragment string) string {
	t.Helper()

	tree, err := xhtml.ParseFragmentString(fragment)
	require.NoError(t, err)
	return tree.Root().HTML(htmldom.ChildrenOnly)
}

func TestNodeRef_HTML(t *testing.T) {
	t.Parallel()

	t.Run("renders elements with attributes and closing tags", func(t *testing.T) {
		t.Parallel()

		got := fragmentHTML(t, `<div class="x"><p>hi</p></div>`)
		assert.Equal(t, `<div class="x"><p>hi</p></div>`, got)
	})

	t.Run("void elements never emit a closing tag", func(t *testing.T) {
		t.Parallel()

		got := fragmentHTML(t, `<p>a<br>b<img src="i.png"></p>`)
		assert.Equal(t, `<p>a<br>b<img src="i.png"></p>`, got)
	})

	t.Run("raw-text elements emit their content unescaped", func(t *testing.T) {
		t.Parallel()

		got := fragmentHTML(t, `<script>if (a < b && c > d) {}</script>`)
		assert.Equal(t, `<script>if (a < b && c > d) {}</script>`, got)
	})

	t.Run("escapes reserved characters in text", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewFragment()
		require.NoError(t, tree.AppendText(tree.Document(), "a<b & c>d e"))

		got := tree.Root().HTML(htmldom.ChildrenOnly)
		assert.Equal(t, "a&lt;b &amp; c&gt;d&nbsp;e", got)
	})

	t.Run("escapes quotes in attribute values", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewFragment()
		el := tree.CreateElement("p", "", []htmldom.Attribute{{Key: "title", Value: `say "hi" & bye`}})
		require.NoError(t, tree.AppendChild(tree.Document(), el))

		got := tree.Root().HTML(htmldom.ChildrenOnly)
		assert.Equal(t, `<p title="say &quot;hi&quot; &amp; bye"></p>`, got)
	})

	t.Run("renders comments", func(t *testing.T) {
		t.Parallel()

		got := fragmentHTML(t, "<!-- note -->")
		assert.Equal(t, "<!-- note -->", got)
	})

	t.Run("renders doctypes with and without identifiers", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewDocument()
		tree.AppendDoctype("html", "", "")
		assert.Equal(t, "<!DOCTYPE html>", tree.Root().HTML(htmldom.ChildrenOnly))

		tree = htmldom.NewDocument()
		tree.AppendDoctype("html", "-//W3C//DTD XHTML 1.0 Transitional//EN", "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd")
		assert.Equal(t,
			`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`,
			tree.Root().HTML(htmldom.ChildrenOnly))

		tree = htmldom.NewDocument()
		tree.AppendDoctype("html", "", "about:legacy-compat")
		assert.Equal(t, `<!DOCTYPE html SYSTEM "about:legacy-compat">`, tree.Root().HTML(htmldom.ChildrenOnly))
	})

	t.Run("renders processing instructions", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewFragment()
		require.NoError(t, tree.AppendProcessingInstruction(tree.Document(), "xml-stylesheet", `href="s.css"`))

		got := tree.Root().HTML(htmldom.ChildrenOnly)
		assert.Equal(t, `<?xml-stylesheet href="s.css">`, got)
	})

	t.Run("scope controls whether the node itself renders", func(t *testing.T) {
		t.Parallel()

		tree, err := xhtml.ParseFragmentString(`<div id="d"><p>in</p></div>`)
		require.NoError(t, err)
		div, err := tree.RootElement()
		require.NoError(t, err)

		assert.Equal(t, `<div id="d"><p>in</p></div>`, div.OuterHTML())
		assert.Equal(t, "<p>in</p>", div.InnerHTML())
	})
}

// failWriter fails every write.
type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestNodeRef_Serialize(t *testing.T) {
	t.Parallel()

	t.Run("propagates writer errors verbatim", func(t *testing.T) {
		t.Parallel()

		tree, err := xhtml.ParseFragmentString("<p>a</p>")
		require.NoError(t, err)

		got := tree.Root().Serialize(failWriter{}, htmldom.ChildrenOnly)

		require.Error(t, got)
		assert.Equal(t, "sink closed", got.Error())
	})
}
