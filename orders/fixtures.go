package orders

import "time"

// Fixtures returns the demo order set used when no database is
// configured.
func Fixtures() []Order {
	return []Order{
		{
			ID:           "ORD-10001",
			CustomerID:   "CUST-001",
			CustomerName: "John Doe",
			Items: []Item{
				{ProductID: "prod-001", ProductName: "Wireless Bluetooth Headphones", Quantity: 1, UnitPrice: 149.99},
				{ProductID: "prod-006", ProductName: "Wireless Phone Charger", Quantity: 2, UnitPrice: 24.99},
			},
			Status:          StatusShipped,
			CreatedAt:       time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 1, 17, 14, 20, 0, 0, time.UTC),
			ShippingAddress: "123 Main St, New York, NY 10001",
			TrackingNumber:  "TRK123456789",
		},
		{
			ID:           "ORD-10002",
			CustomerID:   "CUST-002",
			CustomerName: "Jane Smith",
			Items: []Item{
				{ProductID: "prod-003", ProductName: "Organic Cotton T-Shirt", Quantity: 3, UnitPrice: 29.99},
			},
			Status:          StatusProcessing,
			CreatedAt:       time.Date(2024, 1, 18, 9, 15, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 1, 18, 9, 15, 0, 0, time.UTC),
			ShippingAddress: "456 Oak Ave, Los Angeles, CA 90001",
		},
		{
			ID:           "ORD-10003",
			CustomerID:   "CUST-003",
			CustomerName: "Bob Johnson",
			Items: []Item{
				{ProductID: "prod-002", ProductName: "Smart Fitness Watch", Quantity: 1, UnitPrice: 199.99},
				{ProductID: "prod-007", ProductName: "Running Shoes", Quantity: 1, UnitPrice: 119.99},
				{ProductID: "prod-009", ProductName: "Yoga Mat", Quantity: 1, UnitPrice: 39.99},
			},
			Status:          StatusDelivered,
			CreatedAt:       time.Date(2024, 1, 10, 16, 45, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 1, 14, 11, 30, 0, 0, time.UTC),
			ShippingAddress: "789 Pine Rd, Chicago, IL 60601",
			TrackingNumber:  "TRK987654321",
		},
		{
			ID:           "ORD-10004",
			CustomerID:   "CUST-001",
			CustomerName: "John Doe",
			Items: []Item{
				{ProductID: "prod-008", ProductName: "Coffee Maker", Quantity: 1, UnitPrice: 89.99},
			},
			Status:          StatusPending,
			CreatedAt:       time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC),
			ShippingAddress: "123 Main St, New York, NY 10001",
		},
	}
}
