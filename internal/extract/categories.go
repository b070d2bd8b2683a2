package extract

// Category heading candidates, ordered by how specifically they name the
// section. Section isolation takes the earliest occurrence of any of them.
var (
	roadClosureHeadings = []string{"road closures", "road closure", "closures"}
	shelterHeadings     = []string{"evacuation shelters", "evacuation centers", "shelters"}
	animalHeadings      = []string{"animal shelters", "animal evacuation"}
	evacPointHeadings   = []string{"temporary evacuation points", "evacuation points"}
	resourceHeadings    = []string{"resources assigned", "resources"}
	damageHeadings      = []string{"damage assessment", "structures destroyed", "damage"}

	evacOrderHeadings   = []string{"evacuation orders"}
	evacWarningHeadings = []string{"evacuation warnings"}
)

// Per-category allow-lists: a candidate line must mention at least one of
// these to survive filtering.
var (
	roadKeywords = []string{
		"road", "rd.", "hwy", "highway", "route", "lane", "closure", "closed", "restricted",
	}
	shelterKeywords = []string{
		"shelter", "center", "centre", "school", "church", "hall",
		"fairgrounds", "college", "community", "gym",
	}
	animalKeywords = []string{
		"animal", "pet", "livestock", "large animal", "small animal", "shelter",
	}
	evacPointKeywords = []string{
		"evacuation point", "staging", "temporary", "tep", "parking", "park",
	}
	resourceKeywords = []string{
		"engine", "crew", "helicopter", "dozer", "water tender",
		"airtanker", "air tanker", "personnel", "firefighter",
	}
	damageKeywords = []string{
		"destroyed", "damaged", "threatened", "injur", "fatalit", "structure",
	}
)

// denyKeywords is the global deny-list: tracking scripts, analytics
// boilerplate, and generic UI chrome that survives tag stripping.
var denyKeywords = []string{
	"javascript", "cookie", "gtag", "analytics", "tracking",
	"subscribe", "newsletter", "sign up", "log in", "login",
	"facebook", "twitter", "instagram", "youtube",
	"copyright", "all rights reserved", "privacy", "terms of use",
	"skip to content", "search", "menu", "toggle",
}

// Compaction caps per the data model: road closures up to 10 items, every
// other category up to 8.
const (
	maxRoadClosures  = 10
	maxCategoryItems = 8
)
