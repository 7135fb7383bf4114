package names

// DefaultCommonGivenNames lists given names frequent enough that a
// given-name match alone carries little identifying signal. The combiner
// shifts weight to the family name for these.
var DefaultCommonGivenNames = []string{
	"james", "john", "robert", "michael", "william", "david", "richard",
	"joseph", "thomas", "charles", "christopher", "daniel", "matthew",
	"anthony", "mark", "donald", "steven", "paul", "andrew", "joshua",
	"mary", "patricia", "jennifer", "linda", "elizabeth", "barbara",
	"susan", "jessica", "sarah", "karen", "nancy", "lisa", "margaret",
	"sandra", "ashley", "kimberly", "emily", "michelle",
}
