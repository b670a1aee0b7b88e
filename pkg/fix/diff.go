package fix

import (
	"fmt"
	"strings"
)

// Diff is a line-based unified diff between two versions of a file.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the changed regions with context.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk is one region of a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based first line in the original.
	OriginalStart int
	OriginalCount int

	// ModifiedStart is the 1-based first line in the modified version.
	ModifiedStart int
	ModifiedCount int

	Lines []DiffLine
}

// DiffLine is a single line of a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates whether a line is context, added or removed.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// Prefix returns the unified diff prefix character for the kind.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// GenerateDiff returns the diff from original to modified, or nil when the
// two are equal.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	script := diffLines(splitLines(original), splitLines(modified))
	hunks := buildHunks(script)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunks}
	for _, op := range script {
		switch op.kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	return diff
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// splitLines splits content into lines. A trailing line break does not start
// a new line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

type scriptOp struct {
	kind    DiffLineKind
	content string
}

// diffLines computes an edit script from the longest common subsequence of
// the two line slices.
func diffLines(orig, mod []string) []scriptOp {
	rows, cols := len(orig), len(mod)

	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, rows+1)
	for i := range lcs {
		lcs[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]scriptOp, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case orig[i] == mod[j]:
			script = append(script, scriptOp{DiffLineContext, orig[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			script = append(script, scriptOp{DiffLineRemove, orig[i]})
			i++
		default:
			script = append(script, scriptOp{DiffLineAdd, mod[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		script = append(script, scriptOp{DiffLineRemove, orig[i]})
	}
	for ; j < cols; j++ {
		script = append(script, scriptOp{DiffLineAdd, mod[j]})
	}
	return script
}

// buildHunks groups changes closer than twice the context size into hunks.
func buildHunks(script []scriptOp) []DiffHunk {
	var hunks []DiffHunk

	for idx := 0; idx < len(script); {
		if script[idx].kind == DiffLineContext {
			idx++
			continue
		}

		start := max(0, idx-contextLines)
		end := idx
		for end < len(script) {
			if script[end].kind != DiffLineContext {
				end++
				continue
			}
			run := end
			for run < len(script) && script[run].kind == DiffLineContext {
				run++
			}
			if run == len(script) || run-end > 2*contextLines {
				break
			}
			end = run
		}
		stop := min(len(script), end+contextLines)

		hunks = append(hunks, makeHunk(script, start, stop))
		idx = stop
	}

	return hunks
}

func makeHunk(script []scriptOp, start, stop int) DiffHunk {
	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range script[:start] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range script[start:stop] {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		if op.kind != DiffLineAdd {
			hunk.OriginalCount++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedCount++
		}
	}
	return hunk
}
