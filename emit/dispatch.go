package emit

import (
	"fmt"
	"strings"

	"github.com/gomlx/vkdgen/model"
	"github.com/gomlx/vkdgen/sourcefile"
)

// dispatchClass describes one of the D classes that load and expose the commands of a tier.
type dispatchClass struct {
	tier  model.Tier
	title string
	name  string

	// ctor is the constructor signature, preamble its first statement: it defines or sets the loader.
	ctor, preamble string

	// handle is the first argument given to the loader.
	handle string

	// bootstrap is the command given to the constructor, instead of being loaded.
	bootstrap string
}

var dispatchClasses = []dispatchClass{
	{
		tier:      model.TierGlobal,
		title:     "Global commands",
		name:      "VkGlobalCmds",
		ctor:      "this (PFN_vkGetInstanceProcAddr loader) {",
		preamble:  "_GetInstanceProcAddr = loader;",
		handle:    "null",
		bootstrap: "vkGetInstanceProcAddr",
	},
	{
		tier:     model.TierInstance,
		title:    "Instance commands",
		name:     "VkInstanceCmds",
		ctor:     "this (VkInstance instance, VkGlobalCmds globalCmds) {",
		preamble: "auto loader = globalCmds._GetInstanceProcAddr;",
		handle:   "instance",
	},
	{
		tier:     model.TierDevice,
		title:    "Device commands",
		name:     "VkDeviceCmds",
		ctor:     "this (VkDevice device, VkInstanceCmds instanceCmds) {",
		preamble: "auto loader = instanceCmds._GetDeviceProcAddr;",
		handle:   "device",
	},
}

// emitDispatchClass writes a final class that resolves every command of the tier in its constructor,
// and exposes them as methods checking that they were loaded.
func emitDispatchClass(sf *sourcefile.File, features []*model.Feature, class dispatchClass) {
	has := func(f *model.Feature) bool { return len(f.CmdsForTier(class.tier)) > 0 }
	var names []string
	for _, f := range features {
		for _, cmd := range f.CmdsForTier(class.tier) {
			names = append(names, cmd.Name)
		}
	}
	width := maxLen(names)

	sectionTitle(sf, class.title, true)
	sf.Printf("final class %s {", class.name)
	sf.Block(func() {
		sf.Line()
		sf.Printf("%s", class.ctor)
		sf.Block(func() {
			sf.Printf("%s", class.preamble)
			featureGroups(sf, features, false, has, func(f *model.Feature) {
				for _, cmd := range f.CmdsForTier(class.tier) {
					if cmd.Name == class.bootstrap {
						continue
					}
					spacer := pad(cmd.Name, width)
					sf.Printf("_%s%s = cast(PFN_%s)%sloader(%s, \"%s\");",
						cmd.MemberName(), spacer, cmd.Name, spacer, class.handle, cmd.Name)
				}
			})
		})
		sf.Printf("}")

		for _, f := range features {
			if !has(f) {
				continue
			}
			sf.Line()
			withGuard(sf, f.Guard, func() {
				for i, cmd := range f.CmdsForTier(class.tier) {
					if i == 0 {
						sf.Printf("/// Commands for %s", f.Name)
					} else {
						sf.Printf("/// ditto")
					}
					emitMethod(sf, f, cmd)
				}
			})
		}

		for _, f := range features {
			if !has(f) {
				continue
			}
			sf.Line()
			sf.Printf("// fields for %s", f.Name)
			withGuard(sf, f.Guard, func() {
				for _, cmd := range f.CmdsForTier(class.tier) {
					sf.Printf("private PFN_%s%s _%s;", cmd.Name, pad(cmd.Name, width), cmd.MemberName())
				}
			})
		}
	})
	sf.Printf("}")
}

// emitMethod writes the method forwarding to the loaded entry point of cmd.
func emitMethod(sf *sourcefile.File, f *model.Feature, cmd *model.Command) {
	params := make([]string, len(cmd.Params))
	args := make([]string, len(cmd.Params))
	for i, p := range cmd.Params {
		params[i] = fmt.Sprintf("%s %s", p.Type, p.Name)
		args[i] = p.Name
	}
	member := cmd.MemberName()
	sf.Printf("%s %s (%s) {", cmd.ReturnType, member, strings.Join(params, ", "))
	sf.Block(func() {
		sf.Printf("assert(_%s !is null, \"%s was not loaded. Required by %s\");", member, cmd.Name, f.Name)
		sf.Printf("return _%s(%s);", member, strings.Join(args, ", "))
	})
	sf.Printf("}")
}
