package gitgraph

import (
	"regexp"
	"strings"
)

// CommentMarker prefixes lines that are discarded before tokenizing.
const CommentMarker = "%%"

// declPrefix is the graph-type declaration keyword; the line carrying it is
// metadata, not a directive, and is discarded during tokenizing.
const declPrefix = "gitGraph"

// Kind discriminates the directive variants produced by [Tokenize].
type Kind int

// Directive kinds. KindUnrecognized marks lines that match no known form;
// the parser drops them without error.
const (
	KindCommit Kind = iota
	KindBranch
	KindCheckout
	KindMerge
	KindUnrecognized
)

// String returns the directive keyword for debugging output.
func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindBranch:
		return "branch"
	case KindCheckout:
		return "checkout"
	case KindMerge:
		return "merge"
	default:
		return "unrecognized"
	}
}

// Directive is one tokenized input line.
//
// Which fields are meaningful depends on Kind: commits may carry an explicit
// ID and a Tag, while branch/checkout/merge carry the referenced branch
// Name. Line is the 1-based line number of the directive in the raw source
// and is the seed for synthetic node ids, so it must survive tokenizing
// unchanged.
type Directive struct {
	Kind Kind
	ID   string // commit only: explicit id, empty when not supplied
	Tag  string // commit only: display tag, empty when not supplied
	Name string // branch, checkout, merge: referenced branch name
	Line int    // 1-based source line number
}

var (
	commitRe   = regexp.MustCompile(`^commit\b(.*)$`)
	branchRe   = regexp.MustCompile(`^branch\s+(\S+)`)
	checkoutRe = regexp.MustCompile(`^checkout\s+(\S+)`)
	mergeRe    = regexp.MustCompile(`^merge\s+(\S+)`)

	idAttrRe  = regexp.MustCompile(`\bid:\s*"([^"]*)"`)
	tagAttrRe = regexp.MustCompile(`\btag:\s*"([^"]*)"`)
)

// Tokenize splits src into lines and classifies each into a [Directive].
//
// Blank lines, comment lines (prefixed with [CommentMarker]), and the
// graph-type declaration line are discarded entirely. Every other line
// yields exactly one directive, in source order; lines matching no known
// form come back as KindUnrecognized so callers can decide whether to count
// or drop them.
func Tokenize(src string) []Directive {
	var out []Directive
	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, CommentMarker) || strings.HasPrefix(line, declPrefix) {
			continue
		}
		out = append(out, tokenizeLine(line, i+1))
	}
	return out
}

// tokenizeLine classifies a single trimmed, non-empty line. Each line
// matches at most one form; attribute junk after a recognized keyword is
// ignored rather than rejected.
func tokenizeLine(line string, num int) Directive {
	if m := commitRe.FindStringSubmatch(line); m != nil {
		return Directive{
			Kind: KindCommit,
			ID:   attr(idAttrRe, m[1]),
			Tag:  attr(tagAttrRe, m[1]),
			Line: num,
		}
	}
	if m := branchRe.FindStringSubmatch(line); m != nil {
		return Directive{Kind: KindBranch, Name: m[1], Line: num}
	}
	if m := checkoutRe.FindStringSubmatch(line); m != nil {
		return Directive{Kind: KindCheckout, Name: m[1], Line: num}
	}
	if m := mergeRe.FindStringSubmatch(line); m != nil {
		return Directive{Kind: KindMerge, Name: m[1], Line: num}
	}
	return Directive{Kind: KindUnrecognized, Line: num}
}

// attr extracts a quoted attribute value from the remainder of a commit
// line. A missing attribute and an explicitly empty one (`id: ""`) are both
// reported as "", which downstream code treats as absent.
func attr(re *regexp.Regexp, rest string) string {
	if m := re.FindStringSubmatch(rest); m != nil {
		return m[1]
	}
	return ""
}
