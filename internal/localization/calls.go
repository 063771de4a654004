package localization

import "strings"

// call is one `Name(arg, ...)` link of a `[A(x).B()]` chain.
type call struct {
	name string
	args []string
}

// expandCalls replaces every `[...]` data function chain with its best
// static approximation. `[GetTrait(x).GetName()]` becomes the demangled
// trait; any other chain becomes its first argument, or nothing.
func expandCalls(s string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '[')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start:], ']')
		if end < 0 {
			break
		}
		end += start
		b.WriteString(s[:start])
		b.WriteString(evalChain(parseChain(s[start+1 : end])))
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String()
}

func parseChain(expr string) []call {
	var (
		out   []call
		cur   call
		arg   strings.Builder
		depth int
	)
	flush := func() {
		if cur.name != "" {
			out = append(out, cur)
		}
		cur = call{}
	}
	for _, c := range expr {
		switch {
		case c == '(':
			depth++
		case c == ')':
			if depth == 1 && arg.Len() > 0 {
				cur.args = append(cur.args, strings.TrimSpace(arg.String()))
				arg.Reset()
			}
			depth--
		case c == ',' && depth == 1:
			cur.args = append(cur.args, strings.TrimSpace(arg.String()))
			arg.Reset()
		case c == '.' && depth == 0:
			flush()
		case depth > 0:
			arg.WriteRune(c)
		default:
			cur.name += string(c)
		}
	}
	flush()
	return out
}

func evalChain(chain []call) string {
	if len(chain) == 2 && chain[0].name == "GetTrait" && chain[1].name == "GetName" && len(chain[0].args) > 0 {
		return Demangle(strings.TrimPrefix(strings.Trim(chain[0].args[0], "'"), "trait_"))
	}
	if len(chain) > 0 && len(chain[0].args) > 0 {
		return strings.Trim(chain[0].args[0], "'")
	}
	return ""
}
