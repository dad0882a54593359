package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// PostgresConfig configures the bun-backed order store.
type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

type orderRow struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID              string    `bun:"id,pk"`
	CustomerID      string    `bun:"customer_id"`
	CustomerName    string    `bun:"customer_name"`
	Status          string    `bun:"status"`
	CreatedAt       time.Time `bun:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at"`
	ShippingAddress string    `bun:"shipping_address"`
	TrackingNumber  string    `bun:"tracking_number,nullzero"`

	Items []*orderItemRow `bun:"rel:has-many,join:id=order_id"`
}

type orderItemRow struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID          int64   `bun:"id,pk,autoincrement"`
	OrderID     string  `bun:"order_id"`
	ProductID   string  `bun:"product_id"`
	ProductName string  `bun:"product_name"`
	Quantity    int     `bun:"quantity"`
	UnitPrice   float64 `bun:"unit_price"`
}

// PostgresStore reads orders from Postgres. The store never writes; order
// mutation belongs to a different system.
type PostgresStore struct {
	db      *bun.DB
	timeout time.Duration
}

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	return &PostgresStore{db: db, timeout: timeout}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetOrder(ctx context.Context, orderID string) (Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var row orderRow
	err := s.db.NewSelect().
		Model(&row).
		Relation("Items").
		Where("o.id = ?", orderID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, fmt.Errorf("%w: %s", ErrNotFound, orderID)
		}
		return Order{}, fmt.Errorf("select order %s: %w", orderID, err)
	}
	return row.toOrder(), nil
}

func (s *PostgresStore) GetOrdersByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rows []orderRow
	err := s.db.NewSelect().
		Model(&rows).
		Relation("Items").
		Where("o.customer_id = ?", customerID).
		Order("o.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select orders for customer %s: %w", customerID, err)
	}

	out := make([]Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toOrder())
	}
	return out, nil
}

func (r orderRow) toOrder() Order {
	items := make([]Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return Order{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		Items:           items,
		Status:          Status(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		ShippingAddress: r.ShippingAddress,
		TrackingNumber:  r.TrackingNumber,
	}
}
