package domain

// GlobalTenant is the profile holding cross tenant mappings
const GlobalTenant = "global"

// Category is one of the fixed storage categories
type Category string

// Storage categories
const (
	CategoryWallets       Category = "wallets"
	CategoryCredentials   Category = "credentials"
	CategoryConnections   Category = "connections"
	CategoryNotifications Category = "notifications"
	CategoryMessages      Category = "messages"
	CategoryCredOffers    Category = "cred_offers"
	CategoryPresRequests  Category = "pres_requests"
	CategoryProfiles      Category = "profiles"
	CategoryClosed        Category = "closed_exchanges"
)

// Categories lists every storage category
var Categories = []Category{
	CategoryWallets,
	CategoryCredentials,
	CategoryConnections,
	CategoryNotifications,
	CategoryMessages,
	CategoryCredOffers,
	CategoryPresRequests,
	CategoryProfiles,
	CategoryClosed,
}

// Valid reports whether c belongs to the known set
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Tags are flat equality-searchable annotations of a storage entry
type Tags map[string]string
