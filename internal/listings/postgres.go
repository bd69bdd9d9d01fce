package listings

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/errors"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
)

const listingColumns = `id, title, category, property_type, description,
	city, address, location, monthly_rent, price, bedrooms, amenities,
	furnishing, verified, available_from, created_at, featured`

// PostgresSource reads candidate listings from a relational table. It returns
// the full candidate set (capped) and leaves all filtering to the engine, so
// database and in-memory results stay identical for the same candidates.
type PostgresSource struct {
	db     *sql.DB
	limit  int
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, candidateLimit int, log logger.Logger) *PostgresSource {
	if candidateLimit <= 0 {
		candidateLimit = 1000
	}
	return &PostgresSource{db: db, limit: candidateLimit, logger: log}
}

func (s *PostgresSource) Fetch(ctx context.Context) ([]Listing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC LIMIT $1`,
		s.limit)
	if err != nil {
		return nil, errors.NewListingSourceFailedError("postgres", err)
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var (
			l             Listing
			availableFrom sql.NullTime
			amenities     pq.StringArray
		)
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Category, &l.PropertyType, &l.Description,
			&l.City, &l.Address, &l.Location, &l.MonthlyRent, &l.Price,
			&l.Bedrooms, &amenities, &l.Furnishing, &l.Verified,
			&availableFrom, &l.CreatedAt, &l.Featured,
		); err != nil {
			return nil, errors.NewListingSourceFailedError("postgres", err)
		}
		l.Amenities = []string(amenities)
		if availableFrom.Valid {
			l.AvailableFrom = availableFrom.Time.Format(time.DateOnly)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewListingSourceFailedError("postgres", err)
	}

	return out, nil
}
