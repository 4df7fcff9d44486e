package emit

import (
	"github.com/gomlx/vkdgen/model"
	"github.com/gomlx/vkdgen/sourcefile"
	"github.com/gomlx/vkdgen/typemap"
)

func emitBaseTypes(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Basic types definition", true)
	width := maxLen(basicTypeNames())
	for _, bt := range typemap.BasicTypes {
		sf.Printf("alias %s%s = %s;", bt.C, pad(bt.C, width), bt.D)
	}
	featureGroups(sf, features, true,
		func(f *model.Feature) bool { return len(f.BaseTypes) > 0 },
		func(f *model.Feature) {
			names := make([]string, len(f.BaseTypes))
			for i, bt := range f.BaseTypes {
				names[i] = bt.Name
			}
			width := maxLen(names)
			for _, bt := range f.BaseTypes {
				sf.Printf("alias %s%s = %s;", bt.Name, pad(bt.Name, width), bt.Alias)
			}
		})
}

// emitOpaqueTypes declares handles as pointers to opaque structs.
func emitOpaqueTypes(sf *sourcefile.File, handles []string) {
	width := maxLen(handles)
	for _, h := range handles {
		spacer := pad(h, width)
		sf.Printf("struct %s_T; %salias %s %s= %s_T*;", h, spacer, h, spacer, h)
	}
}

func emitHandles(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Handles", true)
	featureGroups(sf, features, false,
		func(f *model.Feature) bool { return len(f.Handles) > 0 },
		func(f *model.Feature) { emitOpaqueTypes(sf, f.Handles) })
}

// emitNDHandles declares the non-dispatchable handles, which are only pointers on 64 bits
// platforms: elsewhere they are all 64 bits integers.
func emitNDHandles(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Non-dispatchable handles", true)
	has := func(f *model.Feature) bool { return len(f.NDHandles) > 0 }
	sf.Printf("version(X86_64) {")
	sf.Block(func() {
		featureGroups(sf, features, false, has, func(f *model.Feature) { emitOpaqueTypes(sf, f.NDHandles) })
	})
	sf.Printf("}")
	sf.Printf("else {")
	sf.Block(func() {
		featureGroups(sf, features, false, has, func(f *model.Feature) {
			width := maxLen(f.NDHandles)
			for _, h := range f.NDHandles {
				sf.Printf("alias %s %s= ulong;", h, pad(h, width))
			}
		})
	})
	sf.Printf("}")
}

func emitFuncPtrs(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Function pointers", true)
	sf.Printf("extern(C) nothrow {")
	sf.Block(func() {
		featureGroups(sf, features, false,
			func(f *model.Feature) bool { return len(f.FuncPtrs) > 0 },
			func(f *model.Feature) {
				for _, fp := range f.FuncPtrs {
					if len(fp.Params) == 0 {
						sf.Printf("alias %s = %s function();", fp.Name, fp.ReturnType)
						continue
					}
					sf.Printf("alias %s = %s function(", fp.Name, fp.ReturnType)
					width := maxLen(paramTypes(fp.Params))
					sf.Block(func() {
						for i, p := range fp.Params {
							sep := ","
							if i == len(fp.Params)-1 {
								sep = ""
							}
							sf.Printf("%s%s %s%s", p.Type, pad(p.Type, width), p.Name, sep)
						}
					})
					sf.Printf(");")
				}
			})
	})
	sf.Printf("}")
}

func emitConsts(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Constants", false)
	featureGroups(sf, features, true,
		func(f *model.Feature) bool { return len(f.Consts) > 0 },
		func(f *model.Feature) {
			names := make([]string, len(f.Consts))
			for i, c := range f.Consts {
				names[i] = c.Name
			}
			width := maxLen(names)
			for _, c := range f.Consts {
				sf.Printf("enum %s%s = %s;", c.Name, pad(c.Name, width), c.Value)
			}
		})
}

// emitEnums declares each enumeration, followed by module level aliases of its members so they can
// be used unqualified, as in C.
func emitEnums(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Enumerations", false)
	featureGroups(sf, features, true,
		func(f *model.Feature) bool { return len(f.Enums) > 0 },
		func(f *model.Feature) {
			for _, e := range f.Enums {
				base := ""
				if e.IsFlagBits() {
					base = " : VkFlags"
				}
				width := maxLen(e.Members)
				sf.Printf("enum %s%s {", e.Name, base)
				sf.Block(func() {
					for i, member := range e.Members {
						sf.Printf("%s%s = %s,", member, pad(member, width), e.Values[i])
					}
				})
				sf.Printf("}")
				for _, member := range e.Members {
					sf.Printf("enum %s%s = %s.%s;", member, pad(member, width), e.Name, member)
				}
				sf.Line()
			}
		})
}

func emitStructs(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Structures", false)
	featureGroups(sf, features, true,
		func(f *model.Feature) bool { return len(f.Structs) > 0 },
		func(f *model.Feature) {
			for _, s := range f.Structs {
				width := maxLen(paramTypes(s.Params))
				sf.Printf("%s %s {", s.Keyword(), s.Name)
				sf.Block(func() {
					for _, p := range s.Params {
						sf.Printf("%s%s %s;", p.Type, pad(p.Type, width), p.Name)
					}
				})
				sf.Printf("}")
			}
		})
}

// emitCmdPtrAliases declares the function pointer type of every command, used to store the
// loaded entry points.
func emitCmdPtrAliases(sf *sourcefile.File, features []*model.Feature) {
	sectionTitle(sf, "Command pointer aliases", true)
	sf.Printf("extern(C) nothrow @nogc {")
	sf.Block(func() {
		featureGroups(sf, features, false,
			func(f *model.Feature) bool { return len(f.Cmds) > 0 },
			func(f *model.Feature) {
				for _, cmd := range f.Cmds {
					if len(cmd.Params) == 0 {
						sf.Printf("alias PFN_%s = %s function ();", cmd.Name, cmd.ReturnType)
						continue
					}
					sf.Printf("alias PFN_%s = %s function (", cmd.Name, cmd.ReturnType)
					width := maxLen(paramTypes(cmd.Params))
					sf.Block(func() {
						for _, p := range cmd.Params {
							sf.Printf("%s%s %s,", p.Type, pad(p.Type, width), p.Name)
						}
					})
					sf.Printf(");")
				}
			})
	})
	sf.Printf("}")
	sf.Line()
}
