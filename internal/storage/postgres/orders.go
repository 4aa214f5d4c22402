package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/domain/repository"
)

const orderColumns = `o.id, o.payment_ref, o.user_id, o.amount, o.currency, o.status, o.metadata, o.version, o.created_at, o.updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o   model.Order
		raw []byte
	)
	err := row.Scan(&o.ID, &o.PaymentRef, &o.UserID, &o.Amount, &o.Currency, &o.Status, &raw, &o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	meta, err := model.DecodeMetadata(raw)
	if err != nil {
		return nil, fmt.Errorf("decode order metadata: %w", err)
	}
	o.Metadata = meta
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	meta, err := draft.Metadata.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode order metadata: %w", err)
	}

	var order model.Order
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (payment_ref, user_id, amount, currency, status, metadata)
                             VALUES ($1, $2, $3, $4, $5, $6)
                             RETURNING id, version, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder, draft.PaymentRef, draft.UserID, draft.Amount, draft.Currency, draft.Status, meta).
			Scan(&order.ID, &order.Version, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, service_id, service_name, service_slug, quantity, unit_price)
                            VALUES ($1, $2, $3, $4, $5, $6)`
		for _, item := range draft.Items {
			if _, err := tx.Exec(ctx, insertItem, order.ID, item.ServiceID, item.ServiceName, item.ServiceSlug, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}

		for _, addr := range []*model.Address{draft.BillingAddress, draft.ShippingAddress} {
			if addr == nil {
				continue
			}
			if err := insertAddress(ctx, tx, order.ID, *addr); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.PaymentRef = draft.PaymentRef
	order.UserID = draft.UserID
	order.Amount = draft.Amount
	order.Currency = draft.Currency
	order.Status = draft.Status
	order.Metadata = draft.Metadata
	return &order, nil
}

func insertAddress(ctx context.Context, tx pgx.Tx, orderID int64, addr model.Address) error {
	const query = `INSERT INTO order_addresses (order_id, kind, company, first_name, last_name, line1, line2, city, postal_code, region, country, phone)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := tx.Exec(ctx, query, orderID, addr.Kind, addr.Company, addr.FirstName, addr.LastName,
		addr.Line1, addr.Line2, addr.City, addr.PostalCode, addr.Region, addr.Country, addr.Phone)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE o.id=$1`, orderColumns)
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) GetByPaymentRef(ctx context.Context, ref string) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE o.payment_ref=$1`, orderColumns)
	return scanOrder(r.storage.pool.QueryRow(ctx, query, ref))
}

// List returns one page of orders, most recent first, together with the
// total row count for the same filter.
func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter, page repository.PageRequest) ([]model.Order, int64, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conditions = append(conditions, "o.status = "+arg(filter.Status))
	}
	if filter.OwnerID != nil {
		conditions = append(conditions, "o.user_id = "+arg(*filter.OwnerID))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(o.payment_ref ILIKE %s OR u.email ILIKE %s)", arg(pattern), arg(pattern)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	from := " FROM orders o LEFT JOIN users u ON u.id = o.user_id"

	countQuery := "SELECT COUNT(*)" + from + where
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := "SELECT " + orderColumns + from + where +
		" ORDER BY o.created_at DESC LIMIT " + arg(page.Limit) + " OFFSET " + arg(page.Offset())

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// UpdateStatus applies an admin status mutation guarded by the version
// column; a stale version yields ErrVersionConflict instead of a lost
// update.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW(), version=version+1 WHERE id=$2 AND version=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID, version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const exists = `SELECT 1 FROM orders WHERE id=$1`
	var one int
	if err := r.storage.pool.QueryRow(ctx, exists, orderID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.ErrVersionConflict
}

// ApplyPaymentUpdate upserts the provider-asserted state keyed by payment
// reference. Provider updates win unconditionally (last-write-wins); the
// version column still advances so concurrent admin edits fail their CAS.
func (r *orderRepository) ApplyPaymentUpdate(ctx context.Context, update model.PaymentUpdate) (*model.Order, error) {
	meta, err := update.Metadata.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode order metadata: %w", err)
	}

	var order *model.Order
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		upsert := `INSERT INTO orders (payment_ref, user_id, amount, currency, status, metadata)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (payment_ref) DO UPDATE
                   SET status = EXCLUDED.status,
                       amount = EXCLUDED.amount,
                       currency = EXCLUDED.currency,
                       metadata = EXCLUDED.metadata,
                       version = orders.version + 1,
                       updated_at = NOW()
                   RETURNING ` + strings.ReplaceAll(orderColumns, "o.", "")
		var scanErr error
		order, scanErr = scanOrder(tx.QueryRow(ctx, upsert, update.PaymentRef, update.UserID, update.Amount, update.Currency, update.Status, meta))
		if scanErr != nil {
			return scanErr
		}

		if update.PaymentMethod != nil {
			const pmUpsert = `INSERT INTO order_payment_methods (order_id, type, brand, last_four, label)
                              VALUES ($1, $2, $3, $4, $5)
                              ON CONFLICT (order_id) DO UPDATE
                              SET type=EXCLUDED.type, brand=EXCLUDED.brand, last_four=EXCLUDED.last_four, label=EXCLUDED.label`
			pm := update.PaymentMethod
			if _, err := tx.Exec(ctx, pmUpsert, order.ID, pm.Type, pm.Brand, pm.LastFour, pm.Label); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AnnotateMetadata sets a single metadata key. Permitted in every state,
// including terminal ones.
func (r *orderRepository) AnnotateMetadata(ctx context.Context, orderID int64, key, value string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectMeta = `SELECT metadata FROM orders WHERE id=$1 FOR UPDATE`
		var raw []byte
		if err := tx.QueryRow(ctx, selectMeta, orderID).Scan(&raw); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		meta, err := model.DecodeMetadata(raw)
		if err != nil {
			return fmt.Errorf("decode order metadata: %w", err)
		}
		meta.Annotate(key, value)
		encoded, err := meta.Encode()
		if err != nil {
			return fmt.Errorf("encode order metadata: %w", err)
		}

		const updateMeta = `UPDATE orders SET metadata=$1, updated_at=NOW() WHERE id=$2`
		_, err = tx.Exec(ctx, updateMeta, encoded, orderID)
		return err
	})
}

// SelectBatchForReconciliation picks the stalest non-terminal orders and
// touches updated_at so subsequent polls rotate through the backlog.
func (r *orderRepository) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + strings.ReplaceAll(orderColumns, "o.", "") + `
                    FROM orders
                    WHERE status IN ('pending', 'processing')
                    ORDER BY updated_at
                    LIMIT $1
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, o := range orders {
			if _, err := tx.Exec(ctx, `UPDATE orders SET updated_at=NOW() WHERE id=$1`, o.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetDetail joins the order with its customer and checkout snapshots.
func (r *orderRepository) GetDetail(ctx context.Context, id int64) (*model.OrderDetail, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &model.OrderDetail{Order: *order}

	if order.UserID != nil {
		const customerQuery = `SELECT id, name, email FROM users WHERE id=$1`
		var c model.Customer
		err := r.storage.pool.QueryRow(ctx, customerQuery, *order.UserID).Scan(&c.ID, &c.Name, &c.Email)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			detail.Customer = &c
		}
	}

	const addressQuery = `SELECT kind, company, first_name, last_name, line1, line2, city, postal_code, region, country, phone
                          FROM order_addresses WHERE order_id=$1`
	rows, err := r.storage.pool.Query(ctx, addressQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.Kind, &a.Company, &a.FirstName, &a.LastName, &a.Line1, &a.Line2, &a.City, &a.PostalCode, &a.Region, &a.Country, &a.Phone); err != nil {
			return nil, err
		}
		switch a.Kind {
		case model.AddressKindBilling:
			addr := a
			detail.BillingAddress = &addr
		case model.AddressKindShipping:
			addr := a
			detail.ShippingAddress = &addr
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const pmQuery = `SELECT type, brand, last_four, label FROM order_payment_methods WHERE order_id=$1`
	var pm model.PaymentMethod
	err = r.storage.pool.QueryRow(ctx, pmQuery, id).Scan(&pm.Type, &pm.Brand, &pm.LastFour, &pm.Label)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		detail.PaymentMethod = &pm
	}

	const itemsQuery = `SELECT id, order_id, service_id, service_name, service_slug, quantity, unit_price
                        FROM order_items WHERE order_id=$1 ORDER BY id`
	itemRows, err := r.storage.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item model.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ServiceID, &item.ServiceName, &item.ServiceSlug, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		detail.Items = append(detail.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return detail, nil
}
