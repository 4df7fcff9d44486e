package registry

import (
	"fmt"
	"strconv"
)

// EnumValue computes the value of an <enum> element, both as a number (if it has one) and as the
// literal expression to write in the bindings.
//
// Values come from one of the attributes:
//   - value: used literally, with the "type" attribute (e.g. "U") appended if set;
//   - bitpos: 1<<bitpos, written in hexadecimal;
//   - offset: an extension enumerant, 1000000000 + (extnumber-1)*1000 + offset, negated if dir="-";
//   - alias: the name of the aliased enumerant, with no number.
func EnumValue(e *Element) (num int64, hasNum bool, str string) {
	if value, found := e.Lookup("value"); found {
		num, err := strconv.ParseInt(value, 0, 64)
		hasNum = err == nil
		return num, hasNum, value + e.Get("type")
	}
	if bitpos, found := e.Lookup("bitpos"); found {
		pos, err := strconv.ParseInt(bitpos, 0, 64)
		if err != nil || pos < 0 || pos > 63 {
			return 0, false, bitpos
		}
		num = int64(uint64(1) << uint(pos))
		str = fmt.Sprintf("0x%08x", uint64(num))
		if uint64(num) > 0xffffffff {
			str += "ULL"
		}
		return num, true, str
	}
	if offsetStr, found := e.Lookup("offset"); found {
		offset, err1 := strconv.ParseInt(offsetStr, 0, 64)
		extNumber, err2 := strconv.ParseInt(e.Get("extnumber"), 0, 64)
		if err1 != nil || err2 != nil {
			return 0, false, offsetStr
		}
		num = 1000000000 + (extNumber-1)*1000 + offset
		if e.Get("dir") == "-" {
			num = -num
		}
		return num, true, strconv.FormatInt(num, 10)
	}
	if alias, found := e.Lookup("alias"); found {
		return 0, false, alias
	}
	return 0, false, ""
}
