package htmldom_test

import (
	"testing"

	"github.com/fwojciec/htmldom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_AppendChild(t *testing.T) {
	t.Parallel()

	t.Run("attaches children in document order", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewDocument()
		div := tree.CreateElement("div", "", nil)
		require.NoError(t, tree.AppendChild(tree.Document(), div))
		p1 := tree.CreateElement("p", "", nil)
		p2 := tree.CreateElement("p", "", nil)
		require.NoError(t, tree.AppendChild(div, p1))
		require.NoError(t, tree.AppendChild(div, p2))

		ref, err := tree.Ref(div)
		require.NoError(t, err)
		children := ref.Children()
		require.Len(t, children, 2)
		assert.Equal(t, p1, children[0].ID())
		assert.Equal(t, p2, children[1].ID())
	})

	t.Run("re-parents an already attached node", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewDocument()
		a := tree.CreateElement("div", "", nil)
		b := tree.CreateElement("span", "", nil)
		require.NoError(t, tree.AppendChild(tree.Document(), a))
		require.NoError(t, tree.AppendChild(tree.Document(), b))
		require.NoError(t, tree.AppendChild(a, b))

		ref, err := tree.Ref(a)
		require.NoError(t, err)
		children := ref.Children()
		require.Len(t, children, 1)
		assert.Equal(t, b, children[0].ID())
		assert.Len(t, tree.Root().Children(), 1)
	})

	t.Run("rejects an invalid handle without panicking", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewDocument()
		err := tree.AppendChild(99, tree.CreateElement("div", "", nil))

		require.Error(t, err)
		assert.Equal(t, htmldom.EINTERNAL, htmldom.ErrorCode(err))
	})
}

func TestTree_AppendText(t *testing.T) {
	t.Parallel()

	t.Run("coalesces adjacent text nodes", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewFragment()
		require.NoError(t, tree.AppendText(tree.Document(), "hello "))
		require.NoError(t, tree.AppendText(tree.Document(), "world"))

		children := tree.Root().Children()
		require.Len(t, children, 1)
		assert.Equal(t, htmldom.KindText, children[0].Kind())
		assert.Equal(t, "hello world", children[0].Text())
	})

	t.Run("starts a new text node after a non-text sibling", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewFragment()
		require.NoError(t, tree.AppendText(tree.Document(), "a"))
		require.NoError(t, tree.AppendComment(tree.Document(), "sep"))
		require.NoError(t, tree.AppendText(tree.Document(), "b"))

		children := tree.Root().Children()
		require.Len(t, children, 3)
		assert.Equal(t, "ab", tree.Root().Text())
	})
}

func TestTree_AppendBeforeSibling(t *testing.T) {
	t.Parallel()

	t.Run("inserts before the first child", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewDocument()
		b := tree.CreateElement("b", "", nil)
		require.NoError(t, tree.AppendChild(tree.Document(), b))
		a := tree.CreateElement("a", "", nil)
		require.NoError(t, tree.AppendBeforeSibling(b, a))

		children := tree.Root().Children()
		require.Len(t, children, 2)
		assert.Equal(t, a, children[0].ID())
		assert.Equal(t, b, children[1].ID())
	})

	t.Run("inserts between siblings", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewDocument()
		a := tree.CreateElement("a", "", nil)
		c := tree.CreateElement("c", "", nil)
		require.NoError(t, tree.AppendChild(tree.Document(), a))
		require.NoError(t, tree.AppendChild(tree.Document(), c))
		b := tree.CreateElement("b", "", nil)
		require.NoError(t, tree.AppendBeforeSibling(c, b))

		var names []string
		for _, child := range tree.Root().Children() {
			names = append(names, child.Element().Name)
		}
		assert.Equal(t, []string{"a", "b", "c"}, names)
	})

	t.Run("fails for a detached sibling", func(t *testing.T) {
		t.Parallel()

		tree := htmldom.NewDocument()
		detached := tree.CreateElement("div", "", nil)
		other := tree.CreateElement("span", "", nil)

		err := tree.AppendBeforeSibling(detached, other)

		require.Error(t, err)
		assert.Equal(t, htmldom.EINTERNAL, htmldom.ErrorCode(err))
	})
}

func TestTree_ParseError(t *testing.T) {
	t.Parallel()

	tree := htmldom.NewDocument()
	tree.ParseError("unexpected end tag")
	tree.ParseError("duplicate attribute")

	assert.Equal(t, []string{"unexpected end tag", "duplicate attribute"}, tree.Diagnostics())
}

func TestTree_SetQuirksMode(t *testing.T) {
	t.Parallel()

	tree := htmldom.NewDocument()
	assert.Equal(t, htmldom.NoQuirks, tree.QuirksMode())

	tree.SetQuirksMode(htmldom.LimitedQuirks)
	tree.SetQuirksMode(htmldom.Quirks)

	// The last call wins.
	assert.Equal(t, htmldom.Quirks, tree.QuirksMode())
}

func TestTree_SameNode(t *testing.T) {
	t.Parallel()

	tree := htmldom.NewDocument()
	a := tree.CreateElement("div", "", nil)
	b := tree.CreateElement("div", "", nil)

	assert.True(t, tree.SameNode(a, a))
	assert.False(t, tree.SameNode(a, b))
}

func TestTree_AppendDoctype(t *testing.T) {
	t.Parallel()

	tree := htmldom.NewDocument()
	tree.AppendDoctype("html", "", "")

	children := tree.Root().Children()
	require.Len(t, children, 1)
	assert.Equal(t, htmldom.KindDoctype, children[0].Kind())
	assert.Equal(t, "html", children[0].Node().Doctype.Name)
}
