package model

// StoreIdentity identifies which retailer a receipt email came from.
type StoreIdentity string

// Known store identities. Generic is the fallback when detection fails.
const (
	StoreInstacart   StoreIdentity = "instacart"
	StoreAmazonFresh StoreIdentity = "amazon_fresh"
	StoreWalmart     StoreIdentity = "walmart"
	StoreTarget      StoreIdentity = "target"
	StoreKroger      StoreIdentity = "kroger"
	StoreSafeway     StoreIdentity = "safeway"
	StoreCostco      StoreIdentity = "costco"
	StoreWholeFoods  StoreIdentity = "whole_foods"
	StoreGeneric     StoreIdentity = "generic"
)

// SupportTier reflects how mature a store's extraction patterns are.
type SupportTier string

// Support tier constants.
const (
	TierFull  SupportTier = "full"
	TierBeta  SupportTier = "beta"
	TierBasic SupportTier = "basic"
)

// AllStores returns every known store identity in declaration order,
// Generic last.
func AllStores() []StoreIdentity {
	return []StoreIdentity{
		StoreInstacart,
		StoreAmazonFresh,
		StoreWalmart,
		StoreTarget,
		StoreKroger,
		StoreSafeway,
		StoreCostco,
		StoreWholeFoods,
		StoreGeneric,
	}
}

// Tier returns the support tier for the store.
func (s StoreIdentity) Tier() SupportTier {
	switch s {
	case StoreInstacart, StoreAmazonFresh, StoreWalmart:
		return TierFull
	case StoreTarget, StoreKroger, StoreSafeway:
		return TierBeta
	case StoreCostco, StoreWholeFoods, StoreGeneric:
		return TierBasic
	}
	return TierBasic
}

// ConfidenceCeiling returns the default maximum overall confidence a
// receipt from this store may report. Ceilings track pattern maturity,
// not individual receipt quality, and can be overridden via configuration.
func (s StoreIdentity) ConfidenceCeiling() float64 {
	switch s {
	case StoreGeneric:
		return 0.60
	default:
		switch s.Tier() {
		case TierFull:
			return 1.0
		case TierBeta:
			return 0.85
		case TierBasic:
			return 0.75
		}
	}
	return 0.75
}

// DisplayName returns a human-readable store name.
func (s StoreIdentity) DisplayName() string {
	switch s {
	case StoreInstacart:
		return "Instacart"
	case StoreAmazonFresh:
		return "Amazon Fresh"
	case StoreWalmart:
		return "Walmart"
	case StoreTarget:
		return "Target"
	case StoreKroger:
		return "Kroger"
	case StoreSafeway:
		return "Safeway"
	case StoreCostco:
		return "Costco"
	case StoreWholeFoods:
		return "Whole Foods"
	case StoreGeneric:
		return "Unknown Store"
	}
	return string(s)
}
