package repos

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

const FeaturedProductID = "dito-5g-pro"

// seedProducts is the catalog written on first access to the products key.
func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          FeaturedProductID,
			Name:        "DITO Home WoWFi Pro",
			Description: "Experience the future of home connectivity with the DITO Home WoWFi Pro. Powered by true 5G technology, this device delivers ultra-fast speeds, low latency, and reliable coverage for your entire household. Perfect for 4K streaming, gaming, and smart home devices.",
			Price:       decimal.RequireFromString("199.99"),
			Category:    "Networking",
			Stock:       50,
			Image:       "https://images.unsplash.com/photo-1640955014216-75201063265b?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			Images: []string{
				"https://images.unsplash.com/photo-1640955014216-75201063265b?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
				"https://images.unsplash.com/photo-1544197150-b99a580bb7a8?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
				"https://images.unsplash.com/photo-1558346490-a72e53ae2d4f?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			},
			Specs: []string{
				"True 5G & 4G LTE connectivity",
				"Wi-Fi 6 (802.11ax) Dual Band",
				"Connect up to 32 devices simultaneously",
				"High-gain internal antennas for wider coverage",
				"Plug and play installation",
				"Gigabit Ethernet LAN ports",
			},
		},
		{
			ID:          "1",
			Name:        "Modern Wireless Headphones",
			Description: "Experience crystal clear sound with our premium noise-cancelling headphones.",
			Price:       decimal.RequireFromString("149.99"),
			Category:    "Electronics",
			Stock:       15,
			Image:       "https://picsum.photos/400/400?random=1",
			Specs:       []string{"Active Noise Cancellation", "30-hour battery life", "Bluetooth 5.2"},
		},
		{
			ID:          "2",
			Name:        "Ergonomic Office Chair",
			Description: "Work in comfort with this fully adjustable ergonomic mesh chair.",
			Price:       decimal.RequireFromString("249.50"),
			Category:    "Furniture",
			Stock:       8,
			Image:       "https://picsum.photos/400/400?random=2",
			Specs:       []string{"Lumbar support", "Adjustable height", "Breathable mesh"},
		},
		{
			ID:          "3",
			Name:        "Minimalist Watch",
			Description: "A sleek, timeless design for the modern professional.",
			Price:       decimal.RequireFromString("120.00"),
			Category:    "Accessories",
			Stock:       25,
			Image:       "https://picsum.photos/400/400?random=3",
		},
	}
}

type seedUser struct {
	ID, Name, Email, Password string
	Role                      domain.Role
}

var seedUsers = []seedUser{
	{ID: "admin1", Name: "Admin User", Email: "admin", Password: "admin", Role: domain.RoleAdmin},
	{ID: "user1", Name: "John Doe", Email: "user", Password: "user", Role: domain.RoleBuyer},
}
