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

// Package builder builds the Feature Model from the registry traversal events.
//
// A Builder implements registry.Generator: give it to registry.Walk, then take the result with
// Builder.Model.
//
//	b := builder.New(guards.D())
//	if err := reg.Walk(b); err != nil { ... }
//	m := b.Model()
package builder

import (
	"strings"

	"github.com/gomlx/vkdgen/guards"
	"github.com/gomlx/vkdgen/model"
	"github.com/gomlx/vkdgen/registry"
	"github.com/gomlx/vkdgen/typemap"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// HeaderVersionDefine is the only "define" type the builder keeps.
	HeaderVersionDefine = "VK_HEADER_VERSION"

	dispatchableMarker    = "VK_DEFINE_HANDLE"
	nonDispatchableMarker = "VK_DEFINE_NON_DISPATCHABLE_HANDLE"
)

// Builder accumulates the Feature Model. Create it with New.
type Builder struct {
	guards  *guards.Table
	model   *model.Model
	current *model.Feature
}

var _ registry.Generator = (*Builder)(nil)

// New creates a Builder that attaches to each feature its guard from the given table.
// guards may be nil, in which case no feature is guarded.
func New(guards *guards.Table) *Builder {
	return &Builder{guards: guards, model: &model.Model{}}
}

// Model returns the model built so far. Features are only added to it when they end.
func (b *Builder) Model() *model.Model {
	return b.model
}

// BeginFeature implements registry.Generator.
func (b *Builder) BeginFeature(name string) error {
	if b.current != nil {
		return errors.Errorf("feature %s begun while feature %s is still open", name, b.current.Name)
	}
	b.current = model.NewFeature(name, b.guards.Lookup(name))
	return nil
}

// EndFeature implements registry.Generator.
func (b *Builder) EndFeature() error {
	if b.current == nil {
		return errors.New("end of feature without an open feature")
	}
	klog.V(1).Infof("builder: %s: %d base types, %d handles, %d constants, %d enums, %d structs, %d commands",
		b.current.Name, len(b.current.BaseTypes), len(b.current.Handles)+len(b.current.NDHandles),
		len(b.current.Consts), len(b.current.Enums), len(b.current.Structs), len(b.current.Cmds))
	b.model.Features = append(b.model.Features, b.current)
	b.current = nil
	return nil
}

// open returns the open feature, or an error naming the entity that arrived outside of one.
func (b *Builder) open(kind, name string) (*model.Feature, error) {
	if b.current == nil {
		return nil, errors.Errorf("%s %s delivered outside of a feature", kind, name)
	}
	return b.current, nil
}

// GenType implements registry.Generator.
func (b *Builder) GenType(t *registry.TypeInfo, name, alias string) error {
	f, err := b.open("type", name)
	if err != nil {
		return err
	}
	if alias != "" {
		klog.V(1).Infof("builder: dropping type %s, an alias of %s", name, alias)
		return nil
	}
	categoryAttr := t.Category()
	if categoryAttr == "" {
		return nil
	}
	category, err := model.CategoryString(categoryAttr)
	if err != nil {
		klog.V(2).Infof("builder: type %s of category %q not modeled", name, categoryAttr)
		return nil
	}

	switch category {
	case model.CategoryBasetype, model.CategoryBitmask:
		underlying := t.Elem.Find("type")
		if underlying == nil {
			klog.V(1).Infof("builder: %s %s has no underlying type, skipping it", category, name)
			return nil
		}
		f.BaseTypes = append(f.BaseTypes, model.BaseType{Name: name, Alias: strings.TrimSpace(underlying.Text)})

	case model.CategoryHandle:
		switch marker := t.Elem.ChildText("type"); marker {
		case dispatchableMarker:
			f.Handles = append(f.Handles, name)
		case nonDispatchableMarker:
			f.NDHandles = append(f.NDHandles, name)
		default:
			return errors.Errorf("handle %s declared with unknown marker %q", name, marker)
		}

	case model.CategoryStruct, model.CategoryUnion:
		f.Structs = append(f.Structs, buildStruct(t.Elem, name, category))

	case model.CategoryDefine:
		if name != HeaderVersionDefine {
			return nil
		}
		texts := t.Elem.IterText()
		if len(texts) < 3 {
			return errors.Errorf("%s define has no value", name)
		}
		b.model.HeaderVersion = strings.TrimSpace(texts[2])

	case model.CategoryFuncpointer:
		fp, err := parseFuncPtr(t.Elem, name)
		if err != nil {
			return err
		}
		f.FuncPtrs = append(f.FuncPtrs, fp)
	}
	return nil
}

// GenEnum implements registry.Generator: a standalone enum is a constant.
func (b *Builder) GenEnum(e *registry.EnumInfo, name, alias string) error {
	f, err := b.open("enum", name)
	if err != nil {
		return err
	}
	if alias != "" {
		klog.V(1).Infof("builder: constant %s is an alias of %s", name, alias)
	}
	_, _, value := registry.EnumValue(e.Elem)
	f.Consts = append(f.Consts, model.Const{Name: name, Value: typemap.NormalizeLiteral(value)})
	return nil
}

// GenGroup implements registry.Generator: a group is an enumeration.
//
// An aliased group is not modeled: its members are already declared by the group it aliases.
func (b *Builder) GenGroup(g *registry.GroupInfo, name, alias string) error {
	f, err := b.open("enumeration", name)
	if err != nil {
		return err
	}
	if alias != "" {
		klog.V(1).Infof("builder: dropping enumeration %s, an alias of %s", name, alias)
		return nil
	}
	members := make([]string, 0, len(g.Members))
	values := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		_, _, value := registry.EnumValue(m)
		members = append(members, m.Get("name"))
		values = append(values, value)
	}
	e, err := model.NewEnum(name, members, values)
	if err != nil {
		return err
	}
	f.Enums = append(f.Enums, e)
	return nil
}

// GenCmd implements registry.Generator. For command aliases c is the aliased command, and the
// command is modeled under its alias name, since that is the name it is loaded by.
func (b *Builder) GenCmd(c *registry.CmdInfo, name, alias string) error {
	f, err := b.open("command", name)
	if err != nil {
		return err
	}
	if alias != "" {
		klog.V(1).Infof("builder: command %s is an alias of %s", name, alias)
	}
	proto := c.Elem.Find("proto/type")
	if proto == nil {
		return errors.Errorf("command %s has no return type", name)
	}
	cmd := &model.Command{Name: name, ReturnType: strings.TrimSpace(proto.Text)}
	for _, p := range c.Elem.FindAll("param") {
		cmd.Params = append(cmd.Params, buildParam(p))
	}
	cmd.Tier = Classify(cmd)
	klog.V(2).Infof("builder: command %s is a %s command", name, cmd.Tier)
	f.Cmds = append(f.Cmds, cmd)
	return nil
}

// buildStruct collects the members of a struct or union, in declaration order.
func buildStruct(elem *registry.Element, name string, category model.Category) *model.Struct {
	s := &model.Struct{Name: name, Category: category}
	for _, member := range elem.FindAllDeep("member") {
		s.Params = append(s.Params, buildParam(member))
	}
	return s
}

// buildParam converts a <member> or <param> element: the type is made of all text fragments except
// the name and comments.
func buildParam(e *registry.Element) model.Param {
	parts := []string{e.Text}
	for _, child := range e.Children {
		if child.Tag != "name" && child.Tag != "comment" {
			parts = append(parts, child.Text)
		}
		parts = append(parts, child.Tail)
	}
	return model.Param{
		Name: typemap.SafeName(strings.TrimSpace(e.ChildText("name"))),
		Type: typemap.MapParts(parts),
	}
}
