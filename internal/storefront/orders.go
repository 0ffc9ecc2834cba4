package storefront

import "github.com/ghaggin/storefront/internal/model"

const (
	tabAll       = "all"
	tabActive    = "active"
	tabCancelled = "cancelled"
)

var orderTabs = []string{tabAll, tabActive, tabCancelled}

func filterOrders(orders []model.Order, tab string) []model.Order {
	if tab != tabActive && tab != tabCancelled {
		return orders
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Cancelled() == (tab == tabCancelled) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

func normalizeTab(tab string) string {
	for _, t := range orderTabs {
		if t == tab {
			return tab
		}
	}
	return tabAll
}
