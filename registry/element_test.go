package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, doc string) *Element {
	t.Helper()
	root, err := ParseXML(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func TestParseXMLMixedContent(t *testing.T) {
	param := parseString(t, `<param optional="true">const <type>char</type>* <name>pName</name></param>`)
	assert.Equal(t, "param", param.Tag)
	assert.Equal(t, "const ", param.Text)
	require.Len(t, param.Children, 2)
	assert.Equal(t, "char", param.Children[0].Text)
	assert.Equal(t, "* ", param.Children[0].Tail)
	assert.Equal(t, "pName", param.Children[1].Text)
	assert.Equal(t, "", param.Children[1].Tail)
	assert.Equal(t, []string{"const ", "char", "* ", "pName"}, param.IterText())
	assert.Equal(t, "true", param.Get("optional"))
	assert.True(t, param.Has("optional"))
	assert.False(t, param.Has("len"))
	assert.Equal(t, "", param.Get("len"))
}

func TestParseXMLErrors(t *testing.T) {
	_, err := ParseXML(strings.NewReader(""))
	require.Error(t, err)
	_, err = ParseXML(strings.NewReader("<a><b></a>"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	cmd := parseString(t, `<command>
		<proto><type>VkResult</type> <name>vkCreateInstance</name></proto>
		<param>const <type>VkInstanceCreateInfo</type>* <name>pCreateInfo</name></param>
		<param><type>VkInstance</type>* <name>pInstance</name></param>
	</command>`)
	require.NotNil(t, cmd.Find("proto/type"))
	assert.Equal(t, "VkResult", cmd.Find("proto/type").Text)
	assert.Equal(t, "vkCreateInstance", cmd.ChildText("proto/name"))
	assert.Nil(t, cmd.Find("proto/missing"))
	assert.Equal(t, "", cmd.ChildText("missing"))
	assert.Len(t, cmd.FindAll("param"), 2)

	var deep []string
	for _, e := range cmd.FindAllDeep("type") {
		deep = append(deep, e.Text)
	}
	assert.Equal(t, []string{"VkResult", "VkInstanceCreateInfo", "VkInstance"}, deep)
}

func TestWithAttr(t *testing.T) {
	e := parseString(t, `<enum offset="0" extnumber="3" name="VK_X"/>`)
	c := e.withAttr("extnumber", "7")
	assert.Equal(t, "7", c.Get("extnumber"))
	assert.Equal(t, "3", e.Get("extnumber"), "original element must not change")
	assert.Equal(t, "VK_X", c.name())
}
