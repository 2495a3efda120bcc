// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package xmlmodel parses arbitrary XML into a generic attribute-preserving
// element tree. Vendor model exports carry attributes the pipeline cannot
// anticipate, so elements keep every attribute with its namespace instead of
// unmarshaling into fixed structs.
package xmlmodel

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrParse indicates malformed markup.
var ErrParse = errors.New("malformed XML")

// Attr is a single attribute with its namespace preserved. Space is the
// resolved namespace URI, or the raw prefix when the document never declares
// it.
type Attr struct {
	Space string
	Local string
	Value string
}

// Element is one node of the parsed tree.
type Element struct {
	Space    string // namespace URI of the element tag
	Tag      string // local tag name
	Attrs    []Attr
	Text     string // concatenated character data, trimmed
	Children []*Element
}

// Parse reads a full XML document and returns its root element.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Space: t.Name.Space, Tag: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Space: a.Name.Space, Local: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrParse)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced end element %s", ErrParse, t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				if s := strings.TrimSpace(string(t)); s != "" {
					cur := stack[len(stack)-1]
					if cur.Text != "" {
						cur.Text += " "
					}
					cur.Text += s
				}
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element %s", ErrParse, stack[len(stack)-1].Tag)
	}
	return root, nil
}

// Attr returns the value of the un-namespaced attribute with the given local
// name, or "" when absent.
func (e *Element) Attr(local string) string {
	for _, a := range e.Attrs {
		if a.Space == "" && a.Local == local {
			return a.Value
		}
	}
	return ""
}

// AttrAny returns the value of the first attribute with the given local name
// regardless of namespace, or "" when absent.
func (e *Element) AttrAny(local string) string {
	for _, a := range e.Attrs {
		if a.Local == local {
			return a.Value
		}
	}
	return ""
}

// AttrIn returns the value of the attribute with the given local name whose
// namespace contains spacePart (URI fragment or raw prefix), or "" when
// absent. Vendor exports resolve namespaces inconsistently, so matching is
// by containment rather than full URI equality.
func (e *Element) AttrIn(spacePart, local string) string {
	for _, a := range e.Attrs {
		if a.Local == local && a.Space != "" && strings.Contains(a.Space, spacePart) {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether an un-namespaced attribute with the given local
// name is present.
func (e *Element) HasAttr(local string) bool {
	for _, a := range e.Attrs {
		if a.Space == "" && a.Local == local {
			return true
		}
	}
	return false
}

// ChildrenNamed returns the direct children with the given local tag name.
// Direct-child lookup matters for line descriptors, where a branch's nested
// destination must not be conflated with the line's own.
func (e *Element) ChildrenNamed(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// ChildNamed returns the first direct child with the given local tag name,
// or nil.
func (e *Element) ChildNamed(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns every descendant (depth-first, self excluded) with the
// given local tag name.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	e.Walk(func(d *Element) {
		if d != e && d.Tag == tag {
			out = append(out, d)
		}
	})
	return out
}

// Find returns the first descendant (depth-first, self excluded) with the
// given local tag name, or nil.
func (e *Element) Find(tag string) *Element {
	var found *Element
	e.Walk(func(d *Element) {
		if found == nil && d != e && d.Tag == tag {
			found = d
		}
	})
	return found
}

// Walk visits e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}
