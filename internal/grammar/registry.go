package grammar

import (
	"github.com/jburchel/kitchentory/internal/model"
)

// Registry holds one immutable grammar per known store. Build it once at
// startup with NewRegistry and share it freely across goroutines.
type Registry struct {
	grammars map[model.StoreIdentity]*ReceiptGrammar
}

// NewRegistry builds the registry with every store grammar registered.
// Adding a new store means adding its grammar constructor here; nothing
// in the extractor changes.
func NewRegistry() *Registry {
	r := &Registry{grammars: make(map[model.StoreIdentity]*ReceiptGrammar)}
	for _, g := range []*ReceiptGrammar{
		instacartGrammar(),
		amazonFreshGrammar(),
		walmartGrammar(),
		targetGrammar(),
		krogerGrammar(),
		safewayGrammar(),
		costcoGrammar(),
		wholeFoodsGrammar(),
		genericGrammar(),
	} {
		r.grammars[g.Store] = g
	}
	return r
}

// For returns the grammar for a store, falling back to the Generic
// grammar for unregistered identities.
func (r *Registry) For(store model.StoreIdentity) *ReceiptGrammar {
	if g, ok := r.grammars[store]; ok {
		return g
	}
	return r.grammars[model.StoreGeneric]
}

// Generic returns the fallback grammar directly.
func (r *Registry) Generic() *ReceiptGrammar {
	return r.grammars[model.StoreGeneric]
}

// Stores returns the registered store identities in declaration order.
func (r *Registry) Stores() []model.StoreIdentity {
	stores := make([]model.StoreIdentity, 0, len(r.grammars))
	for _, s := range model.AllStores() {
		if _, ok := r.grammars[s]; ok {
			stores = append(stores, s)
		}
	}
	return stores
}
