package pslcore

import (
	"github.com/fatih/color"
)

// QueryResult bundles the three high-level query outputs for a single
// hostname, for display purposes (e.g. the CLI).
type QueryResult struct {
	Hostname          string
	PublicSuffix      string
	RegistrableDomain string
	IsPublicSuffix    bool
}

// Query runs all three high-level operations against hostname.
func (l *PublicSuffixList) Query(hostname string) QueryResult {
	return QueryResult{
		Hostname:          hostname,
		PublicSuffix:      l.PublicSuffix(hostname),
		RegistrableDomain: l.RegistrableDomain(hostname),
		IsPublicSuffix:    l.IsPublicSuffix(hostname),
	}
}

// PrintResult pretty-prints a QueryResult, color-coding filled vs.
// blank fields the way the teacher's PrintRes does for URL components.
func PrintResult(res QueryResult) {
	var leftAttrsFilled = []color.Attribute{color.FgHiYellow, color.Bold}
	var leftAttrsBlank = []color.Attribute{color.FgHiBlack}
	var rightAttrs = []color.Attribute{color.FgHiWhite}

	if len(res.Hostname) != 0 {
		color.New(leftAttrsFilled...).Print("             hostname: ")
	} else {
		color.New(leftAttrsBlank...).Print("             hostname: ")
	}
	color.New(rightAttrs...).Println(res.Hostname)

	if len(res.PublicSuffix) != 0 {
		color.New(leftAttrsFilled...).Print("        public suffix: ")
	} else {
		color.New(leftAttrsBlank...).Print("        public suffix: ")
	}
	color.New(rightAttrs...).Println(res.PublicSuffix)

	if len(res.RegistrableDomain) != 0 {
		color.New(leftAttrsFilled...).Print("   registrable domain: ")
	} else {
		color.New(leftAttrsBlank...).Print("   registrable domain: ")
	}
	color.New(rightAttrs...).Println(res.RegistrableDomain)

	if res.IsPublicSuffix {
		color.New(leftAttrsFilled...).Print("     is public suffix: ")
		color.New(rightAttrs...).Println("true")
	} else {
		color.New(leftAttrsBlank...).Print("     is public suffix: ")
		color.New(rightAttrs...).Println("false")
	}

	color.New().Println("")
}
