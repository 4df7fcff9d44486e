package builder

import (
	"regexp"
	"strings"

	"github.com/gomlx/vkdgen/model"
	"github.com/gomlx/vkdgen/registry"
	"github.com/gomlx/vkdgen/typemap"
	"github.com/pkg/errors"
)

var reFuncPtr = regexp.MustCompile(`^typedef (.+) \(VKAPI_PTR \*$`)

// parseFuncPtr parses a funcpointer typedef, written in the registry as:
//
//	typedef void* (VKAPI_PTR *<name>PFN_vkAllocationFunction</name>)(
//	    <type>void</type>*                                       pUserData,
//	    <type>size_t</type>                                      size,
//	    const <type>char</type>*                                 pMessage);
//
// Each parameter is on its own line.
func parseFuncPtr(elem *registry.Element, name string) (*model.Command, error) {
	m := reFuncPtr.FindStringSubmatch(elem.Text)
	if m == nil {
		return nil, errors.Errorf("function pointer %s: can't parse return type from %q", name, elem.Text)
	}
	fp := &model.Command{Name: name, ReturnType: m[1]}

	// Fragments 0 and 1 are the typedef prefix and the name.
	texts := elem.IterText()
	if len(texts) < 3 {
		return nil, errors.Errorf("function pointer %s has no parameter list", name)
	}
	paramsText := strings.TrimPrefix(strings.Join(texts[2:], ""), ")(")
	if strings.Join(strings.Fields(paramsText), "") == "void);" {
		return fp, nil
	}
	for _, line := range strings.Split(paramsText, "\n") {
		tokens := strings.Fields(line)
		var typeStr, paramName string
		switch {
		case len(tokens) == 0:
			continue
		case len(tokens) == 3 && tokens[0] == "const":
			typeStr = strings.ReplaceAll("const("+tokens[1]+")", "*)", ")*")
			paramName = tokens[2]
		case len(tokens) == 2:
			typeStr, paramName = tokens[0], tokens[1]
		default:
			return nil, errors.Errorf("function pointer %s: can't parse parameter %q", name, strings.TrimSpace(line))
		}
		paramName = strings.NewReplacer(",", "", ")", "", ";", "").Replace(paramName)
		fp.Params = append(fp.Params, model.Param{Name: typemap.SafeName(paramName), Type: typeStr})
	}
	return fp, nil
}
