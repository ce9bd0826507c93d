package spec

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
)

// FormatExplain renders problems in the style described by §4.9: one line
// per problem, naming the offending path, value, and predicate. val is
// accepted for parity with ExplainStr's call site but is not otherwise
// used, since each Problem already carries its own Val.
func FormatExplain(problems []Problem, val any) string {
	if len(problems) == 0 {
		return "Success!\n"
	}
	var b strings.Builder
	for _, p := range problems {
		if len(p.In) > 0 {
			fmt.Fprintf(&b, "In: %s ", formatAnyPath(p.In))
		}
		fmt.Fprintf(&b, "val: %s fails", pretty.Sprint(p.Val))
		if len(p.Via) > 0 {
			fmt.Fprintf(&b, " spec: %s", p.Via[len(p.Via)-1])
		}
		if len(p.Path) > 0 {
			fmt.Fprintf(&b, " at: %s", formatAnyPath(p.Path))
		}
		if p.Pred != nil {
			fmt.Fprintf(&b, " predicate: %s", pretty.Sprint(p.Pred))
		}
		if p.Reason != "" {
			fmt.Fprintf(&b, ", %s", p.Reason)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatAnyPath(path []any) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
