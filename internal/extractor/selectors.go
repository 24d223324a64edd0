package extractor

// Structural anchors in nps.gov markup. Every extraction stage is driven by
// these and nothing else; when upstream markup drifts, the StructureError
// names the selector that stopped matching.
const (
	// state directory (site root)
	SelectorStateSearch = "div.SearchBar-keywordSearch"
	SelectorStateAnchor = "a"

	// per-state site list
	SelectorResultsArea = "div#parkListResultsArea"
	SelectorResultEntry = "li.clearfix"
	SelectorEntryLink   = "h3 a"

	// site detail
	SelectorTitleContainer = "div.Hero-titleContainer"
	SelectorTitleName      = "a"
	SelectorDesignation    = "span.Hero-designation"
	SelectorVCard          = "div.vcard"
	SelectorLocality       = "span[itemprop=addressLocality]"
	SelectorRegion         = "span[itemprop=addressRegion]"
	SelectorPostalCode     = "span[itemprop=postalCode]"
	SelectorPhone          = "span.tel"
)
