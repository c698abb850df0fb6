package inspect

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Dump returns the text rendering of every value in data. Decoding stops at
// the first error, which is appended as a final line.
func Dump(data []byte) string {
	var buf bytes.Buffer
	nodes, err := DecodeAll(data)
	for _, n := range nodes {
		_ = WriteText(&buf, n)
	}
	if err != nil {
		fmt.Fprintf(&buf, "error: %v\n", err)
	}
	return buf.String()
}

// WriteText writes n as an indented outline, one value per line:
//
//	struct
//	  @0x1 uint 3
//	  @0x2 seq[2]
//	    string "a"
//	    none
func WriteText(w io.Writer, n *Node) error {
	return writeText(w, n, 0)
}

func writeText(w io.Writer, n *Node, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	if n.ID != 0 {
		fmt.Fprintf(&b, "@0x%X ", n.ID)
	}
	b.WriteString(string(n.Kind))
	switch n.Kind {
	case KindSeq, KindTuple, KindTupleStruct, KindTupleVar, KindMap, KindJSONArray, KindJSONObject:
		fmt.Fprintf(&b, "[%d]", len(n.Children))
	}
	if n.Value != "" {
		b.WriteByte(' ')
		b.WriteString(n.Value)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeText(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) String() string {
	var b strings.Builder
	_ = WriteText(&b, n)
	return b.String()
}
