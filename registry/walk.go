package registry

import (
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// walker holds the state of one Walk.
type walker struct {
	r *Registry
	g Generator

	// declared marks the entities already delivered, keyed by kind and name.
	declared map[string]bool
}

// Walk delivers the selected features to g, in order. See Generator.
//
// Walk can be called more than once, each call is independent.
func (r *Registry) Walk(g Generator) error {
	w := &walker{r: r, g: g, declared: make(map[string]bool)}
	for _, f := range r.features {
		klog.V(1).Infof("registry: walking %s", f.name)
		if err := g.BeginFeature(f.name); err != nil {
			return errors.WithMessagef(err, "beginning feature %s", f.name)
		}
		for _, req := range f.elem.FindAll("require") {
			if !r.requireApplies(req) {
				klog.V(2).Infof("registry: %s: skipping <require> not applicable to the selection", f.name)
				continue
			}
			for _, item := range req.Children {
				var err error
				name := item.Get("name")
				switch item.Tag {
				case "type":
					err = w.genType(name)
				case "enum":
					if !item.Has("extends") {
						err = w.genEnum(name)
					}
				case "command":
					err = w.genCmd(name)
				}
				if err != nil {
					return errors.WithMessagef(err, "in feature %s", f.name)
				}
			}
		}
		if err := g.EndFeature(); err != nil {
			return errors.WithMessagef(err, "ending feature %s", f.name)
		}
	}
	return nil
}

// declare marks the entity as declared, and returns false if it already was.
func (w *walker) declare(kind, name string) bool {
	key := kind + ":" + name
	if w.declared[key] {
		return false
	}
	w.declared[key] = true
	return true
}

func (w *walker) genType(name string) error {
	if name == "" || !w.declare("type", name) {
		return nil
	}
	elem, found := w.r.types[name]
	if !found {
		klog.V(2).Infof("registry: type %s is not defined in the registry", name)
		return nil
	}

	// Dependencies first.
	alias := elem.Get("alias")
	if err := w.genType(alias); err != nil {
		return err
	}
	if err := w.genType(elem.Get("requires")); err != nil {
		return err
	}
	for _, sub := range elem.FindAllDeep("type") {
		if err := w.genType(strings.TrimSpace(sub.Text)); err != nil {
			return err
		}
	}
	for _, sub := range elem.FindAllDeep("enum") {
		if err := w.genEnum(strings.TrimSpace(sub.Text)); err != nil {
			return err
		}
	}

	if elem.Get("category") == "enum" {
		groupName := name
		if alias != "" {
			groupName = alias
		}
		g, found := w.r.groups[groupName]
		if !found {
			klog.V(1).Infof("registry: enumerated type %s has no <enums> definition", name)
			return nil
		}
		members, err := w.groupMembers(g)
		if err != nil {
			return errors.WithMessagef(err, "enumeration %s", name)
		}
		return errors.WithMessagef(w.g.GenGroup(&GroupInfo{Elem: g.elem, Members: members}, name, alias),
			"generating enumeration %s", name)
	}
	return errors.WithMessagef(w.g.GenType(&TypeInfo{Elem: elem}, name, alias), "generating type %s", name)
}

func (w *walker) genEnum(name string) error {
	if name == "" || !w.declare("enum", name) {
		return nil
	}
	elem, found := w.r.enums[name]
	if !found {
		klog.V(2).Infof("registry: enum %s is not defined in the registry", name)
		return nil
	}
	return errors.WithMessagef(w.g.GenEnum(&EnumInfo{Elem: elem}, name, elem.Get("alias")), "generating enum %s", name)
}

func (w *walker) genCmd(name string) error {
	if name == "" || !w.declare("command", name) {
		return nil
	}
	elem, found := w.r.commands[name]
	if !found {
		return errors.Errorf("command %s is required but not defined in the registry", name)
	}
	alias := elem.Get("alias")
	target := elem
	for seen := 0; target.Has("alias"); seen++ {
		next, found := w.r.commands[target.Get("alias")]
		if !found || seen > len(w.r.commands) {
			return errors.Errorf("command %s is an alias to the undefined command %s", name, target.Get("alias"))
		}
		target = next
	}
	for _, sub := range target.FindAllDeep("type") {
		if err := w.genType(strings.TrimSpace(sub.Text)); err != nil {
			return err
		}
	}
	return errors.WithMessagef(w.g.GenCmd(&CmdInfo{Elem: target}, name, alias), "generating command %s", name)
}

// groupMembers returns the members of the group added by the core group definition or by the
// applicable <require> blocks of the selected features, dropping duplicates. The same enumerant may
// be added twice, for instance by an extension and by the core version it was promoted to, but both
// must have the same value.
func (w *walker) groupMembers(g *group) ([]*Element, error) {
	type declaredValue struct {
		num    int64
		hasNum bool
		str    string
	}
	seen := make(map[string]declaredValue)
	var members []*Element
	for _, m := range g.members {
		if m.source != "" && !w.r.selected[m.source] {
			continue
		}
		if m.req != nil && !w.r.requireApplies(m.req) {
			continue
		}
		name := m.elem.Get("name")
		num, hasNum, str := EnumValue(m.elem)
		value := declaredValue{num, hasNum, str}
		if previous, found := seen[name]; found {
			if previous != value {
				return nil, errors.Errorf("enumerant %s declared twice with different values (%q and %q)",
					name, previous.str, value.str)
			}
			klog.V(2).Infof("registry: dropping duplicate enumerant %s", name)
			continue
		}
		seen[name] = value
		members = append(members, m.elem)
	}
	return members, nil
}

// requireApplies returns whether a <require> block applies to the walked selection: its api matches
// and its optional "feature", "extension" or "depends" conditions are satisfied.
func (r *Registry) requireApplies(req *Element) bool {
	if !apiMatch(req, "api", r.opts.API) {
		return false
	}
	if f, found := req.Lookup("feature"); found && !r.selected[f] {
		return false
	}
	if exts, found := req.Lookup("extension"); found {
		for _, ext := range strings.Split(exts, ",") {
			if !r.selected[strings.TrimSpace(ext)] {
				return false
			}
		}
	}
	if depends, found := req.Lookup("depends"); found {
		return evalDepends(depends, r.selected)
	}
	return true
}

// evalDepends evaluates a registry dependency expression: feature names combined with "+" (and) and
// "," (or), grouped by parentheses and evaluated left to right.
func evalDepends(expr string, selected map[string]bool) bool {
	p := &dependsParser{expr: expr, selected: selected}
	return p.parseExpr()
}

type dependsParser struct {
	expr     string
	pos      int
	selected map[string]bool
}

func (p *dependsParser) parseExpr() bool {
	result := p.parseTerm()
	for p.pos < len(p.expr) {
		op := p.expr[p.pos]
		if op != '+' && op != ',' {
			break
		}
		p.pos++
		rhs := p.parseTerm()
		if op == '+' {
			result = result && rhs
		} else {
			result = result || rhs
		}
	}
	return result
}

func (p *dependsParser) parseTerm() bool {
	if p.pos < len(p.expr) && p.expr[p.pos] == '(' {
		p.pos++
		result := p.parseExpr()
		if p.pos < len(p.expr) && p.expr[p.pos] == ')' {
			p.pos++
		}
		return result
	}
	start := p.pos
	for p.pos < len(p.expr) && !strings.ContainsRune("+,()", rune(p.expr[p.pos])) {
		p.pos++
	}
	return p.selected[strings.TrimSpace(p.expr[start:p.pos])]
}
