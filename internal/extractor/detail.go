package extractor

import "github.com/rohmanhakim/nps-sites/pkg/failure"

// ExtractSite reads a site detail page into a SiteRecord. Every field must
// come from an existing element; the first one missing fails the page with
// a StructureError that names it. Only the category text may be empty.
func ExtractSite(htmlByte []byte) (SiteRecord, failure.ClassifiedError) {
	doc, err := parseDocument(htmlByte)
	if err != nil {
		return SiteRecord{}, err
	}

	title, err := firstMatch(doc.Selection, "title", SelectorTitleContainer)
	if err != nil {
		return SiteRecord{}, err
	}
	name, err := requiredText(title, "name", SelectorTitleName)
	if err != nil {
		return SiteRecord{}, err
	}
	category, err := requiredText(title, "category", SelectorDesignation)
	if err != nil {
		return SiteRecord{}, err
	}

	vcard, err := firstMatch(doc.Selection, "contact card", SelectorVCard)
	if err != nil {
		return SiteRecord{}, err
	}
	locality, err := requiredText(vcard, "locality", SelectorLocality)
	if err != nil {
		return SiteRecord{}, err
	}
	region, err := requiredText(vcard, "region", SelectorRegion)
	if err != nil {
		return SiteRecord{}, err
	}
	zipcode, err := requiredText(vcard, "zipcode", SelectorPostalCode)
	if err != nil {
		return SiteRecord{}, err
	}
	phone, err := requiredText(vcard, "phone", SelectorPhone)
	if err != nil {
		return SiteRecord{}, err
	}

	return SiteRecord{
		Category: category,
		Name:     name,
		Address:  JoinAddress(locality, region),
		Zipcode:  zipcode,
		Phone:    phone,
	}, nil
}
