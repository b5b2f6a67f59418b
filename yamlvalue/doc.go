// Package yamlvalue bridges YAML text and [tsion.Value] trees, so the
// tsion CLI's "convert" subcommand can move documents between the two
// textual formats without going through an intermediate Go struct.
//
// [Parse] walks a goccy-yaml AST (preserving mapping key order, dropping
// tags, and resolving anchors/aliases to their target) into a
// [tsion.Value]. [Emit]
// does the reverse: it lowers a [tsion.Value] into a plain Go value tree
// and lets goccy-yaml marshal it back to text.
package yamlvalue
