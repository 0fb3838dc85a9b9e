// Package detect classifies incoming receipt emails to a retailer
// identity. Detection is deterministic and side-effect-free: a fixed
// rule table evaluated in priority order, first match wins.
package detect

import (
	"strings"

	"github.com/jburchel/kitchentory/internal/model"
)

// domainRule maps a sender domain (exact or suffix) to a store. Rules are
// evaluated in declaration order, most specific first.
type domainRule struct {
	domain string
	store  model.StoreIdentity
}

var domainRules = []domainRule{
	{"orders.instacart.com", model.StoreInstacart},
	{"instacart.com", model.StoreInstacart},
	{"fresh.amazon.com", model.StoreAmazonFresh},
	{"marketplace.amazon.com", model.StoreAmazonFresh},
	{"amazon.com", model.StoreAmazonFresh},
	{"order.walmart.com", model.StoreWalmart},
	{"walmart.com", model.StoreWalmart},
	{"target.com", model.StoreTarget},
	{"kroger.com", model.StoreKroger},
	{"fredmeyer.com", model.StoreKroger},
	{"ralphs.com", model.StoreKroger},
	{"safeway.com", model.StoreSafeway},
	{"albertsons.com", model.StoreSafeway},
	{"costco.com", model.StoreCostco},
	{"wholefoodsmarket.com", model.StoreWholeFoods},
	{"wholefoods.com", model.StoreWholeFoods},
}

// subjectRule maps a subject-line keyword to a store.
type subjectRule struct {
	keyword string
	store   model.StoreIdentity
}

var subjectRules = []subjectRule{
	{"instacart order", model.StoreInstacart},
	{"your instacart", model.StoreInstacart},
	{"amazon fresh", model.StoreAmazonFresh},
	{"your walmart order", model.StoreWalmart},
	{"walmart grocery", model.StoreWalmart},
	{"your target order", model.StoreTarget},
	{"target drive up", model.StoreTarget},
	{"your kroger", model.StoreKroger},
	{"kroger pickup", model.StoreKroger},
	{"safeway order", model.StoreSafeway},
	{"albertsons order", model.StoreSafeway},
	{"costco order", model.StoreCostco},
	{"costco same-day", model.StoreCostco},
	{"whole foods", model.StoreWholeFoods},
}

// bodyKeywords drive the last-resort density scan. A store needs at least
// minKeywordHits occurrences across its keywords to win; ties go to the
// store declared first in model.AllStores.
var bodyKeywords = map[model.StoreIdentity][]string{
	model.StoreInstacart:   {"instacart", "your shopper"},
	model.StoreAmazonFresh: {"amazon fresh", "amazon.com"},
	model.StoreWalmart:     {"walmart", "great value"},
	model.StoreTarget:      {"target", "good & gather", "redcard"},
	model.StoreKroger:      {"kroger", "fuel points"},
	model.StoreSafeway:     {"safeway", "albertsons", "for u"},
	model.StoreCostco:      {"costco", "kirkland"},
	model.StoreWholeFoods:  {"whole foods", "365 wfm"},
}

const minKeywordHits = 2

// Detector classifies emails against the static rule tables.
type Detector struct{}

// New creates a detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the store identity for the email and whether any rule
// matched. A false second return means the caller got Generic by fallback
// rather than by evidence.
func (d *Detector) Detect(email *model.IncomingEmail) (model.StoreIdentity, bool) {
	if store, ok := d.matchDomain(email.SenderDomain()); ok {
		return store, true
	}
	if store, ok := d.matchSubject(email.Subject); ok {
		return store, true
	}
	if store, ok := d.scanBody(email.Body); ok {
		return store, true
	}
	return model.StoreGeneric, false
}

func (d *Detector) matchDomain(domain string) (model.StoreIdentity, bool) {
	if domain == "" {
		return model.StoreGeneric, false
	}
	for _, rule := range domainRules {
		if domain == rule.domain || strings.HasSuffix(domain, "."+rule.domain) {
			return rule.store, true
		}
	}
	return model.StoreGeneric, false
}

func (d *Detector) matchSubject(subject string) (model.StoreIdentity, bool) {
	lower := strings.ToLower(subject)
	for _, rule := range subjectRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.store, true
		}
	}
	return model.StoreGeneric, false
}

// scanBody counts keyword hits per store and returns the best scorer.
// Iteration follows model.AllStores so ties resolve deterministically.
func (d *Detector) scanBody(body string) (model.StoreIdentity, bool) {
	lower := strings.ToLower(body)

	best := model.StoreGeneric
	bestHits := 0
	for _, store := range model.AllStores() {
		keywords, ok := bodyKeywords[store]
		if !ok {
			continue
		}
		hits := 0
		for _, kw := range keywords {
			hits += strings.Count(lower, kw)
		}
		if hits > bestHits {
			best = store
			bestHits = hits
		}
	}

	if bestHits >= minKeywordHits {
		return best, true
	}
	return model.StoreGeneric, false
}
