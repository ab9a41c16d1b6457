// Package workspace resolves which workspace root a generation document
// belongs to. Matching is purely textual: a root owns a document when the
// root's string form is a prefix of the document's string form.
package workspace

import "strings"

// ResolveRoot returns the first candidate root whose text is a prefix of
// document. Candidates are tried in order; the boolean is false when no root
// matches or document is empty.
func ResolveRoot(document string, roots []string) (string, bool) {
	if document == "" {
		return "", false
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		if strings.HasPrefix(document, root) {
			return root, true
		}
	}
	return "", false
}

// LocalPath returns document with the root prefix stripped. A single leading
// separator left over from the strip is dropped so the result reads as a
// relative path; nothing else is normalized.
func LocalPath(document, root string) string {
	local := strings.TrimPrefix(document, root)
	if strings.HasPrefix(local, "/") && !strings.HasSuffix(root, "/") {
		local = local[1:]
	}
	return local
}
