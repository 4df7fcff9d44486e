// Package model holds the Feature Model: the API entities of the Vulkan registry grouped by the
// feature (core version or extension) that declares them.
//
// A Model is built incrementally by the builder package and then only read by the emitter.
package model

import (
	"strings"

	"github.com/pkg/errors"
)

// BaseType is a scalar typedef or a bitmask type, rendered as an alias of Alias.
type BaseType struct {
	Name, Alias string
}

// Const is a single API constant. Value is already normalized for D.
type Const struct {
	Name, Value string
}

// Enum is an enumeration group. Members and Values are parallel slices.
type Enum struct {
	Name    string
	Members []string
	Values  []string
}

// NewEnum creates an Enum, checking that members and values match.
func NewEnum(name string, members, values []string) (*Enum, error) {
	if len(members) != len(values) {
		return nil, errors.Errorf("enum %s has %d members but %d values", name, len(members), len(values))
	}
	return &Enum{Name: name, Members: members, Values: values}, nil
}

// IsFlagBits returns whether the enumeration is backed by the VkFlags bitmask type.
func (e *Enum) IsFlagBits() bool {
	return strings.HasSuffix(e.Name, "FlagBits")
}

// Param is either a struct member or a command parameter.
// Type is already written in D syntax.
type Param struct {
	Name, Type string
}

// Struct is a struct or a union.
type Struct struct {
	Name     string
	Category Category // CategoryStruct or CategoryUnion.
	Params   []Param
}

// Keyword returns the D keyword that declares the structure.
func (s *Struct) Keyword() string {
	if s.Category == CategoryUnion {
		return "union"
	}
	return "struct"
}

// Command is a callable API entry point. Function pointer typedefs reuse the same shape,
// but they are kept in Feature.FuncPtrs and their Tier is meaningless.
type Command struct {
	Name       string
	ReturnType string
	Params     []Param
	Tier       Tier
}

// MemberName is the name of the dispatch object member for the command: vkCmdDraw -> CmdDraw.
func (c *Command) MemberName() string {
	return strings.TrimPrefix(c.Name, "vk")
}

// FeatureGuard restricts the code of a feature to some platforms or build configurations.
type FeatureGuard struct {
	// Name of the feature the guard applies to.
	Name string

	// VersionGuards are D version identifiers, AND-combined by nesting: the first one is the outermost.
	VersionGuards []string

	// Stmts are verbatim lines (usually imports) emitted inside the guard ahead of everything else.
	Stmts []string
}

// Feature is one API version or extension and the entities it declares, in declaration order.
type Feature struct {
	Name  string
	Guard *FeatureGuard

	BaseTypes []BaseType
	Handles   []string
	NDHandles []string
	Consts    []Const
	FuncPtrs  []*Command
	Enums     []*Enum
	Structs   []*Struct
	Cmds      []*Command
}

// NewFeature creates an empty feature. guard may be nil.
func NewFeature(name string, guard *FeatureGuard) *Feature {
	return &Feature{Name: name, Guard: guard}
}

// CmdsForTier returns the commands of the feature dispatched through tier, in declaration order.
func (f *Feature) CmdsForTier(tier Tier) []*Command {
	var cmds []*Command
	for _, cmd := range f.Cmds {
		if cmd.Tier == tier {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// GlobalCmds are the commands resolved through the bootstrap loader.
func (f *Feature) GlobalCmds() []*Command { return f.CmdsForTier(TierGlobal) }

// InstanceCmds are the commands resolved through vkGetInstanceProcAddr.
func (f *Feature) InstanceCmds() []*Command { return f.CmdsForTier(TierInstance) }

// DeviceCmds are the commands resolved through vkGetDeviceProcAddr.
func (f *Feature) DeviceCmds() []*Command { return f.CmdsForTier(TierDevice) }

// Model is the complete Feature Model of a registry traversal.
type Model struct {
	// HeaderVersion is the value of VK_HEADER_VERSION, empty if the registry didn't define it.
	HeaderVersion string

	// Features in traversal order: core versions ascending, then extensions.
	Features []*Feature
}

// GlobalCmds returns the global commands of all features.
func (m *Model) GlobalCmds() []*Command {
	var cmds []*Command
	for _, f := range m.Features {
		cmds = append(cmds, f.GlobalCmds()...)
	}
	return cmds
}

// Feature returns the feature with the given name, or nil.
func (m *Model) Feature(name string) *Feature {
	for _, f := range m.Features {
		if f.Name == name {
			return f
		}
	}
	return nil
}
