// Package orders provides read-only access to order records for the
// order agent.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("order not found")

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

type Item struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
}

func (i Item) Total() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

type Order struct {
	ID              string
	CustomerID      string
	CustomerName    string
	Items           []Item
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ShippingAddress string
	TrackingNumber  string
}

func (o Order) Total() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Total()
	}
	return sum
}

// Summary renders a one-line order description for conversational output.
func (o Order) Summary() string {
	items := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
	}
	tracking := o.TrackingNumber
	if tracking == "" {
		tracking = "Not available yet"
	}
	return fmt.Sprintf("Order %s: %s. Total: $%.2f. Status: %s. Tracking: %s.",
		o.ID, strings.Join(items, ", "), o.Total(), o.Status, tracking)
}

// StatusLine is the customer-facing explanation of the current status.
func (o Order) StatusLine() string {
	switch o.Status {
	case StatusPending:
		return "Your order is pending confirmation."
	case StatusConfirmed:
		return "Your order has been confirmed and will be processed soon."
	case StatusProcessing:
		return "Your order is currently being processed and prepared for shipping."
	case StatusShipped:
		tracking := o.TrackingNumber
		if tracking == "" {
			tracking = "Not available yet"
		}
		return fmt.Sprintf("Your order has been Shipped! Tracking number: %s", tracking)
	case StatusDelivered:
		return "Your order has been Delivered!"
	case StatusCancelled:
		return "This order has been cancelled."
	default:
		return fmt.Sprintf("Order status: %s.", o.Status)
	}
}

// Store is the read-only order lookup collaborator.
type Store interface {
	GetOrder(ctx context.Context, orderID string) (Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID string) ([]Order, error)
}
