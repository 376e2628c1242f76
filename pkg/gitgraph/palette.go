package gitgraph

// DefaultPalette is the branch color cycle. A branch created with lane n is
// colored DefaultPalette[n mod len(DefaultPalette)], so main (lane 0) is
// always the first entry.
var DefaultPalette = []string{
	"#1f77b4", // blue
	"#ff7f0e", // orange
	"#2ca02c", // green
	"#d62728", // red
	"#9467bd", // purple
	"#8c564b", // brown
	"#e377c2", // pink
	"#17becf", // cyan
}
