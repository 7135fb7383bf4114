package names

import "strings"

// Resolver answers whether two given-name tokens are variants of the same
// name. The table is read-only after construction and safe for concurrent
// use.
type Resolver struct {
	// canonical forms per variant; a short form like "pat" can belong to
	// more than one canonical name
	canonicalsOf map[string]map[string]struct{}
}

// NewResolver builds a Resolver from a canonical-name-to-variants table.
// Keys and values are normalized on the way in, so callers may pass
// mixed-case tables.
func NewResolver(table map[string][]string) *Resolver {
	canonicalsOf := make(map[string]map[string]struct{}, len(table)*4)
	add := func(variant, canonical string) {
		set, ok := canonicalsOf[variant]
		if !ok {
			set = make(map[string]struct{}, 1)
			canonicalsOf[variant] = set
		}
		set[canonical] = struct{}{}
	}
	for canonical, variants := range table {
		canonical = Normalize(canonical)
		add(canonical, canonical)
		for _, variant := range variants {
			add(Normalize(variant), canonical)
		}
	}
	return &Resolver{canonicalsOf: canonicalsOf}
}

// NewDefaultResolver builds a Resolver over the built-in nickname table.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultNicknames)
}

// IsVariant reports whether a and b name the same person: equal tokens,
// canonical-and-variant in either direction, or two variants sharing a
// canonical form. Comparison is case-insensitive.
func (r *Resolver) IsVariant(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return true
	}
	for canonical := range r.canonicalsOf[a] {
		if _, ok := r.canonicalsOf[b][canonical]; ok {
			return true
		}
	}
	return false
}

// DefaultNicknames maps canonical given names to their common short forms.
var DefaultNicknames = map[string][]string{
	"william":     {"will", "bill", "billy", "willy", "liam"},
	"robert":      {"rob", "bob", "bobby", "robbie", "bert"},
	"michael":     {"mike", "mikey", "mick"},
	"james":       {"jim", "jimmy", "jamie"},
	"john":        {"jack", "johnny", "jon"},
	"richard":     {"rick", "ricky", "rich", "dick"},
	"thomas":      {"tom", "tommy"},
	"charles":     {"charlie", "chuck"},
	"christopher": {"chris", "topher"},
	"daniel":      {"dan", "danny"},
	"matthew":     {"matt", "matty"},
	"anthony":     {"tony"},
	"donald":      {"don", "donny"},
	"steven":      {"steve", "stevie"},
	"stephen":     {"steve"},
	"edward":      {"ed", "eddie", "ted", "ned"},
	"theodore":    {"theo", "ted", "teddy"},
	"joseph":      {"joe", "joey"},
	"kenneth":     {"ken", "kenny"},
	"andrew":      {"andy", "drew"},
	"joshua":      {"josh"},
	"timothy":     {"tim", "timmy"},
	"ronald":      {"ron", "ronnie"},
	"lawrence":    {"larry"},
	"jeffrey":     {"jeff"},
	"gregory":     {"greg"},
	"benjamin":    {"ben", "benny"},
	"samuel":      {"sam", "sammy"},
	"alexander":   {"alex", "xander"},
	"nicholas":    {"nick", "nicky"},
	"patrick":     {"pat", "paddy"},
	"jonathan":    {"jon", "jonny"},
	"elizabeth":   {"liz", "lizzie", "beth", "betty", "eliza"},
	"margaret":    {"maggie", "meg", "peggy", "marge"},
	"katherine":   {"kate", "katie", "kathy", "kat"},
	"jennifer":    {"jen", "jenny"},
	"jessica":     {"jess", "jessie"},
	"susan":       {"sue", "susie"},
	"deborah":     {"deb", "debbie"},
	"barbara":     {"barb"},
	"patricia":    {"pat", "patty", "trish"},
	"rebecca":     {"becky", "becca"},
	"victoria":    {"vicky", "tori"},
	"kimberly":    {"kim"},
	"christina":   {"christy", "tina"},
	"amanda":      {"mandy"},
	"abigail":     {"abby"},
	"stephanie":   {"steph"},
	"pamela":      {"pam"},
	"sandra":      {"sandy"},
	"cynthia":     {"cindy"},
}
