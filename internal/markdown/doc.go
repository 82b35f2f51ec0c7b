// Package markdown turns flat markdown line sequences into nested section
// trees. The heading parser tracks a level-ordered ancestor stack and an
// accumulator for pending content; the loader discovers files and strips
// frontmatter before the parser ever sees a line.
package markdown
