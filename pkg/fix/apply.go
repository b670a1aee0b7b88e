package fix

import "bytes"

// ApplyEdits applies sorted, non-overlapping edits to content and returns the
// result. Use PrepareEdits to validate and order edits first.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	grow := 0
	for _, e := range edits {
		grow += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + grow)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// DropNoOps removes edits that would not change content.
func DropNoOps(content []byte, edits []TextEdit) []TextEdit {
	out := edits[:0:0]
	for _, e := range edits {
		if !e.IsNoOp(content) {
			out = append(out, e)
		}
	}
	return out
}
