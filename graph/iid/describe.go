package iid

import (
	"bytes"
	"fmt"

	"github.com/tiglabs/baudgraph/graph/schema"
)

// Describe renders any key section by section, each with its length. The
// output is for diagnostics only.
func Describe(key []byte) string {
	if len(key) == 0 {
		return "[]"
	}
	var buf bytes.Buffer
	prefix := schema.Prefix(key[0])
	switch {
	case prefix == schema.IndexType || prefix == schema.Sequence:
		fmt.Fprintf(&buf, "[1:%v][%d:%q]", prefix, len(key)-1, key[1:])
	case prefix == schema.IndexAttribute:
		fmt.Fprintf(&buf, "[1:%v]", prefix)
		rest := key[1:]
		if n, err := vertexAt(rest); err == nil {
			describeVertex(&buf, rest[:n])
			rest = rest[n:]
		}
		fmt.Fprintf(&buf, "[%d:%x]", len(rest), rest)
	case prefix.IsVertex():
		n, err := vertexAt(key)
		if err != nil {
			fmt.Fprintf(&buf, "[%d:%x]", len(key), key)
			break
		}
		if n == len(key) {
			describeVertex(&buf, key)
			break
		}
		e := &Edge{bytes: key}
		if e.Err() != nil {
			describeVertex(&buf, key[:n])
			fmt.Fprintf(&buf, "[%d:%x]", len(key)-n, key[n:])
			break
		}
		describeVertex(&buf, e.Start())
		describeInfix(&buf, e.Infix())
		describeVertex(&buf, e.End())
		if s := e.Suffix(); s != nil {
			fmt.Fprintf(&buf, "[%d:#%d]", len(s), s.Repetition())
		}
	default:
		fmt.Fprintf(&buf, "[%d:%x]", len(key), key)
	}
	return buf.String()
}

func describeVertex(buf *bytes.Buffer, v Vertex) {
	switch {
	case v.IsType() && v.Valid():
		fmt.Fprintf(buf, "[%d:%v:%d]", len(v), v.Prefix(), v.ID())
	case v.IsThing() && v.Valid() && v.Type().IsType():
		fmt.Fprintf(buf, "[%d:%v", len(v), v.Prefix())
		describeVertex(buf, v.Type())
		fmt.Fprintf(buf, ":%d]", v.Key())
	default:
		fmt.Fprintf(buf, "[%d:%x]", len(v), []byte(v))
	}
}

func describeInfix(buf *bytes.Buffer, i Infix) {
	fmt.Fprintf(buf, "[%d:%v:%v", len(i), i.Category(), i.Direction())
	if role := i.RoleType(); role != nil {
		describeVertex(buf, role)
	}
	buf.WriteString("]")
}
