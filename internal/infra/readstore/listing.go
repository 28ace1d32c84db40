package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"
	"rental-listings/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

const findListingViewByIDSQL = `
SELECT l.id, l.landlord_id, u.email, l.title, l.description, l.location,
       l.price_cents, l.rooms, l.housing_type, l.contact_info, l.is_active,
       COALESCE(rs.review_count, 0), rs.average_rating,
       l.created_at, l.updated_at
FROM listings l
JOIN users u ON u.id = l.landlord_id
LEFT JOIN (
    SELECT listing_id, count(*)::int AS review_count, avg(rating)::float8 AS average_rating
    FROM reviews
    GROUP BY listing_id
) rs ON rs.listing_id = l.id
WHERE l.id = $1
`

func (r *ListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	var view queries.ListingView
	err := r.db.QueryRow(ctx, findListingViewByIDSQL, id).Scan(
		&view.ID, &view.LandlordID, &view.LandlordEmail, &view.Title, &view.Description, &view.Location,
		&view.PriceCents, &view.Rooms, &view.HousingType, &view.ContactInfo, &view.IsActive,
		&view.ReviewCount, &view.AverageRating,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing view", err)
	}
	return &view, nil
}

const listingLandlordIDSQL = `
SELECT landlord_id FROM listings WHERE id = $1
`

func (r *ListingReadStore) ListingLandlordID(ctx context.Context, listingID uuid.UUID) (uuid.UUID, error) {
	var landlordID uuid.UUID
	err := r.db.QueryRow(ctx, listingLandlordIDSQL, listingID).Scan(&landlordID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find listing owner", err)
	}
	return landlordID, nil
}

const listingListSelectSQL = `
SELECT l.id, l.title, l.location, l.price_cents, l.rooms, l.housing_type,
       COALESCE(rs.review_count, 0), rs.average_rating, l.created_at
FROM listings l
LEFT JOIN (
    SELECT listing_id, count(*)::int AS review_count, avg(rating)::float8 AS average_rating
    FROM reviews
    GROUP BY listing_id
) rs ON rs.listing_id = l.id
`

func (r *ListingReadStore) SearchFirstPage(ctx context.Context, filters queries.SearchFilters, limit int32) ([]*queries.ListingListItem, error) {
	where, args := buildSearchConditions(filters)
	sql := listingListSelectSQL + "WHERE " + strings.Join(where, " AND ") +
		orderClause(filters.Sort) + fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryListItems(ctx, sql, args, "failed to search listings")
}

func (r *ListingReadStore) SearchKeyset(ctx context.Context, filters queries.SearchFilters, lastKey int64, lastID uuid.UUID, limit int32) ([]*queries.ListingListItem, error) {
	where, args := buildSearchConditions(filters)

	keyCol, cmp := keysetColumn(filters.Sort)
	var lastKeyArg any = lastKey
	if keyCol == "l.created_at" {
		lastKeyArg = time.UnixMicro(lastKey).UTC()
	}
	where = append(where, fmt.Sprintf("(%s, l.id) %s ($%d, $%d)", keyCol, cmp, len(args)+1, len(args)+2))
	args = append(args, lastKeyArg, lastID)

	sql := listingListSelectSQL + "WHERE " + strings.Join(where, " AND ") +
		orderClause(filters.Sort) + fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryListItems(ctx, sql, args, "failed to search listings keyset")
}

func buildSearchConditions(filters queries.SearchFilters) ([]string, []any) {
	where := []string{"l.is_active = TRUE"}
	var args []any

	if filters.Keyword != nil && *filters.Keyword != "" {
		args = append(args, "%"+*filters.Keyword+"%")
		where = append(where, fmt.Sprintf("(l.title ILIKE $%d OR l.description ILIKE $%d)", len(args), len(args)))
	}
	if filters.Location != nil && *filters.Location != "" {
		args = append(args, "%"+*filters.Location+"%")
		where = append(where, fmt.Sprintf("l.location ILIKE $%d", len(args)))
	}
	if filters.MinPriceCents != nil {
		args = append(args, *filters.MinPriceCents)
		where = append(where, fmt.Sprintf("l.price_cents >= $%d", len(args)))
	}
	if filters.MaxPriceCents != nil {
		args = append(args, *filters.MaxPriceCents)
		where = append(where, fmt.Sprintf("l.price_cents <= $%d", len(args)))
	}
	if filters.MinRooms != nil {
		args = append(args, *filters.MinRooms)
		where = append(where, fmt.Sprintf("l.rooms >= $%d", len(args)))
	}
	if filters.MaxRooms != nil {
		args = append(args, *filters.MaxRooms)
		where = append(where, fmt.Sprintf("l.rooms <= $%d", len(args)))
	}
	if filters.HousingType != nil && *filters.HousingType != "" {
		args = append(args, *filters.HousingType)
		where = append(where, fmt.Sprintf("l.housing_type = $%d", len(args)))
	}

	return where, args
}

func orderClause(sort queries.Sort) string {
	switch sort {
	case queries.SortPriceAsc:
		return " ORDER BY l.price_cents ASC, l.id ASC"
	case queries.SortPriceDesc:
		return " ORDER BY l.price_cents DESC, l.id DESC"
	default:
		return " ORDER BY l.created_at DESC, l.id DESC"
	}
}

func keysetColumn(sort queries.Sort) (col, cmp string) {
	switch sort {
	case queries.SortPriceAsc:
		return "l.price_cents", ">"
	case queries.SortPriceDesc:
		return "l.price_cents", "<"
	default:
		return "l.created_at", "<"
	}
}

const listingsByLandlordFirstPageSQL = listingListSelectSQL + `
WHERE l.landlord_id = $1
ORDER BY l.created_at DESC, l.id DESC
LIMIT $2
`

func (r *ListingReadStore) FindByLandlordFirstPage(ctx context.Context, landlordID uuid.UUID, limit int32) ([]*queries.ListingListItem, error) {
	return r.queryListItems(ctx, listingsByLandlordFirstPageSQL, []any{landlordID, limit}, "failed to list landlord listings")
}

const listingsByLandlordKeysetSQL = listingListSelectSQL + `
WHERE l.landlord_id = $1 AND (l.created_at, l.id) < ($2, $3)
ORDER BY l.created_at DESC, l.id DESC
LIMIT $4
`

func (r *ListingReadStore) FindByLandlordKeyset(ctx context.Context, landlordID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ListingListItem, error) {
	return r.queryListItems(ctx, listingsByLandlordKeysetSQL, []any{landlordID, lastCreatedAt, lastID, limit}, "failed to list landlord listings keyset")
}

func (r *ListingReadStore) queryListItems(ctx context.Context, sql string, args []any, errMsg string) ([]*queries.ListingListItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ListingListItem, error) {
		var item queries.ListingListItem
		scanErr := row.Scan(
			&item.ID, &item.Title, &item.Location, &item.PriceCents, &item.Rooms,
			&item.HousingType, &item.ReviewCount, &item.AverageRating, &item.CreatedAt,
		)
		return &item, scanErr
	})
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	return items, nil
}
