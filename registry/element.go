/*
 *	Copyright 2024 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package registry

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Element is a node of the registry XML document.
//
// Registry elements mix text and tags (`const <type>char</type>* <name>pName</name>`), so like in
// an ElementTree the text is split in Text, the text before the first child, and Tail, the text that
// follows the element's end tag inside its parent.
type Element struct {
	Tag      string
	Attrs    []xml.Attr
	Text     string
	Tail     string
	Children []*Element
}

// ParseXML reads a whole XML document and returns its root element.
// Comments, processing instructions and directives are dropped.
func ParseXML(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	var root *Element
	var stack []*Element
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "failed to parse registry XML")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &Element{Tag: t.Name.Local}
			for _, attr := range t.Attr {
				e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: attr.Name.Local}, Value: attr.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.Errorf("registry XML has more than one root element (<%s> and <%s>)", root.Tag, e.Tag)
				}
				root = e
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if n := len(top.Children); n > 0 {
				top.Children[n-1].Tail += string(t)
			} else {
				top.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("registry XML is empty")
	}
	return root, nil
}

// Lookup returns the value of the attribute and whether it is set.
func (e *Element) Lookup(attr string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == attr {
			return a.Value, true
		}
	}
	return "", false
}

// Get returns the value of the attribute, or "" if it is not set.
func (e *Element) Get(attr string) string {
	v, _ := e.Lookup(attr)
	return v
}

// Has returns whether the attribute is set.
func (e *Element) Has(attr string) bool {
	_, found := e.Lookup(attr)
	return found
}

// Find returns the first element matching path, a "/" separated list of child tags
// (e.g. "proto/type"), or nil.
func (e *Element) Find(path string) *Element {
	all := e.FindAll(path)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// FindAll returns all elements matching path, see Find, in document order.
func (e *Element) FindAll(path string) []*Element {
	current := []*Element{e}
	for _, tag := range strings.Split(path, "/") {
		var next []*Element
		for _, c := range current {
			for _, child := range c.Children {
				if child.Tag == tag {
					next = append(next, child)
				}
			}
		}
		current = next
	}
	return current
}

// FindAllDeep returns all descendants with the given tag, in document order.
func (e *Element) FindAllDeep(tag string) []*Element {
	var found []*Element
	for _, child := range e.Children {
		if child.Tag == tag {
			found = append(found, child)
		}
		found = append(found, child.FindAllDeep(tag)...)
	}
	return found
}

// ChildText returns the text of the first child with the given tag, or "".
func (e *Element) ChildText(tag string) string {
	if c := e.Find(tag); c != nil {
		return c.Text
	}
	return ""
}

// IterText returns the non-empty text fragments of the element and all its descendants, in
// document order. The element's own Tail is not included.
func (e *Element) IterText() []string {
	var parts []string
	if e.Text != "" {
		parts = append(parts, e.Text)
	}
	for _, child := range e.Children {
		parts = append(parts, child.IterText()...)
		if child.Tail != "" {
			parts = append(parts, child.Tail)
		}
	}
	return parts
}

// withAttr returns a shallow copy of e with the attribute set.
func (e *Element) withAttr(attr, value string) *Element {
	c := *e
	c.Attrs = make([]xml.Attr, 0, len(e.Attrs)+1)
	for _, a := range e.Attrs {
		if a.Name.Local != attr {
			c.Attrs = append(c.Attrs, a)
		}
	}
	c.Attrs = append(c.Attrs, xml.Attr{Name: xml.Name{Local: attr}, Value: value})
	return &c
}

// name of a registry entity: the "name" attribute or the text of the <name> child.
func (e *Element) name() string {
	if name, found := e.Lookup("name"); found {
		return name
	}
	return e.ChildText("name")
}
