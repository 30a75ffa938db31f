package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/grapplehold/ringdex/internal/model"
)

type DuckDBRepo struct {
	db     *sql.DB
	logger *slog.Logger

	// RefreshExisting switches SaveWrestler from skip-on-duplicate to
	// update-in-place. Off by default: a re-scrape leaves stored fields
	// untouched.
	RefreshExisting bool
}

func NewDuckDBRepo(path string, logger *slog.Logger) (*DuckDBRepo, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	return &DuckDBRepo{db: db, logger: logger}, nil
}

func (r *DuckDBRepo) Init(ctx context.Context) error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS promotions_id_seq`,
		`CREATE SEQUENCE IF NOT EXISTS wrestlers_id_seq`,
		`CREATE SEQUENCE IF NOT EXISTS gimmicks_id_seq`,
		`CREATE TABLE IF NOT EXISTS promotions (
			id BIGINT PRIMARY KEY DEFAULT nextval('promotions_id_seq'),
			name TEXT NOT NULL,
			country TEXT,
			year_founded INTEGER,
			year_disbanded INTEGER,
			is_active BOOLEAN,
			years_active INTEGER,
			cagematch_id BIGINT UNIQUE,
			created_at TIMESTAMP DEFAULT current_timestamp
		)`,
		`CREATE TABLE IF NOT EXISTS wrestlers (
			id BIGINT PRIMARY KEY DEFAULT nextval('wrestlers_id_seq'),
			name TEXT NOT NULL UNIQUE,
			promotion_id BIGINT REFERENCES promotions (id),
			height_cm INTEGER,
			weight_kg INTEGER,
			age INTEGER,
			debut DATE,
			is_active BOOLEAN,
			years_active INTEGER,
			retirement DATE,
			cagematch_id BIGINT UNIQUE,
			title_reigns INTEGER,
			titles_won INTEGER,
			is_champion BOOLEAN,
			created_at TIMESTAMP DEFAULT current_timestamp
		)`,
		`CREATE TABLE IF NOT EXISTS gimmicks (
			id BIGINT PRIMARY KEY DEFAULT nextval('gimmicks_id_seq'),
			wrestler_id BIGINT NOT NULL REFERENCES wrestlers (id),
			gimmick_name TEXT NOT NULL,
			debut_promotion_id BIGINT REFERENCES promotions (id),
			is_default BOOLEAN,
			date_created TIMESTAMP,
			last_seen TIMESTAMP,
			created_at TIMESTAMP DEFAULT current_timestamp,
			UNIQUE (wrestler_id, gimmick_name)
		)`,
	}

	for _, query := range queries {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// SavePromotions inserts the batch, skipping promotions whose cagematch
// id is already stored.
func (r *DuckDBRepo) SavePromotions(ctx context.Context, promotions []model.Promotion) (int, error) {
	created := 0
	for i := range promotions {
		p := &promotions[i]

		if p.CagematchID != nil {
			var exists bool
			err := r.db.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM promotions WHERE cagematch_id = ?)`, *p.CagematchID).Scan(&exists)
			if err != nil {
				return created, err
			}
			if exists {
				r.logger.Warn("Skipping duplicate promotion", "name", p.Name, "cagematch_id", *p.CagematchID)
				continue
			}
		}

		err := r.db.QueryRowContext(ctx, `
			INSERT INTO promotions (name, country, year_founded, year_disbanded, is_active, years_active, cagematch_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			p.Name, p.Country, nullableInt(p.YearFounded), nullableInt(p.YearDisbanded),
			p.IsActive, nullableInt(p.YearsActive), nullableInt64(p.CagematchID)).Scan(&p.ID)
		if err != nil {
			return created, fmt.Errorf("failed to insert promotion %q: %w", p.Name, err)
		}
		created++
	}
	return created, nil
}

// GetOrCreatePromotion looks a promotion up by exact name and creates a
// bare record when none exists. On an insert race the existing row is
// re-fetched rather than surfaced as an error.
func (r *DuckDBRepo) GetOrCreatePromotion(ctx context.Context, name string) (*model.Promotion, error) {
	existing, err := r.getPromotionByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	p := &model.Promotion{Name: name, IsActive: true}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO promotions (name, is_active) VALUES (?, ?) RETURNING id`,
		p.Name, p.IsActive).Scan(&p.ID)
	if err != nil {
		if existing, lookupErr := r.getPromotionByName(ctx, name); lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create promotion %q: %w", name, err)
	}
	return p, nil
}

func (r *DuckDBRepo) getPromotionByName(ctx context.Context, name string) (*model.Promotion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, country, year_founded, year_disbanded, is_active, years_active, cagematch_id
		FROM promotions WHERE name = ? LIMIT 1`, name)
	return scanPromotion(row)
}

func (r *DuckDBRepo) ListPromotions(ctx context.Context) ([]model.Promotion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, country, year_founded, year_disbanded, is_active, years_active, cagematch_id
		FROM promotions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promotions []model.Promotion
	for rows.Next() {
		var p model.Promotion
		var country sql.NullString
		var founded, disbanded, years sql.NullInt32
		var active sql.NullBool
		var cagematchID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &country, &founded, &disbanded, &active, &years, &cagematchID); err != nil {
			return nil, err
		}
		p.Country = country.String
		p.YearFounded = intPtr(founded)
		p.YearDisbanded = intPtr(disbanded)
		p.IsActive = active.Bool
		p.YearsActive = intPtr(years)
		p.CagematchID = int64Ptr(cagematchID)
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}

// SaveWrestler inserts w unless a wrestler with the same name is
// already stored. On a duplicate the stored row wins: w gets the stored
// id and nothing is written, unless RefreshExisting is set, in which
// case the stored fields are updated in place.
func (r *DuckDBRepo) SaveWrestler(ctx context.Context, w *model.Wrestler) (bool, error) {
	existing, err := r.GetWrestlerByName(ctx, w.Name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		w.ID = existing.ID
		if !r.RefreshExisting {
			return false, nil
		}
		_, err := r.db.ExecContext(ctx, `
			UPDATE wrestlers SET promotion_id = ?, height_cm = ?, weight_kg = ?, age = ?, debut = ?,
				is_active = ?, years_active = ?, retirement = ?, cagematch_id = ?,
				title_reigns = ?, titles_won = ?, is_champion = ?
			WHERE id = ?`,
			nullableInt64(w.PromotionID), nullableInt(w.HeightCM), nullableInt(w.WeightKG),
			nullableInt(w.Age), nullableTime(w.Debut), w.IsActive, nullableInt(w.YearsActive),
			nullableTime(w.Retirement), w.CagematchID, w.TitleReigns, w.TitlesWon, w.IsChampion, w.ID)
		if err != nil {
			return false, fmt.Errorf("failed to refresh wrestler %q: %w", w.Name, err)
		}
		return false, nil
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO wrestlers (name, promotion_id, height_cm, weight_kg, age, debut, is_active,
			years_active, retirement, cagematch_id, title_reigns, titles_won, is_champion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		w.Name, nullableInt64(w.PromotionID), nullableInt(w.HeightCM), nullableInt(w.WeightKG),
		nullableInt(w.Age), nullableTime(w.Debut), w.IsActive, nullableInt(w.YearsActive),
		nullableTime(w.Retirement), w.CagematchID, w.TitleReigns, w.TitlesWon, w.IsChampion).Scan(&w.ID)
	if err != nil {
		// Unique-constraint race: another writer got there first.
		if existing, lookupErr := r.GetWrestlerByName(ctx, w.Name); lookupErr == nil && existing != nil {
			w.ID = existing.ID
			return false, nil
		}
		return false, fmt.Errorf("failed to insert wrestler %q: %w", w.Name, err)
	}
	return true, nil
}

const wrestlerColumns = `id, name, promotion_id, height_cm, weight_kg, age, debut, is_active,
	years_active, retirement, cagematch_id, title_reigns, titles_won, is_champion`

func (r *DuckDBRepo) GetWrestlerByName(ctx context.Context, name string) (*model.Wrestler, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+wrestlerColumns+` FROM wrestlers WHERE name = ? LIMIT 1`, name)
	return scanWrestler(row)
}

func (r *DuckDBRepo) GetWrestlerByCagematchID(ctx context.Context, id int64) (*model.Wrestler, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+wrestlerColumns+` FROM wrestlers WHERE cagematch_id = ? LIMIT 1`, id)
	return scanWrestler(row)
}

// SaveGimmick inserts g unless the (wrestler, gimmick name) pair is
// already stored. Existing rows are never updated.
func (r *DuckDBRepo) SaveGimmick(ctx context.Context, g *model.Gimmick) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM gimmicks WHERE wrestler_id = ? AND gimmick_name = ?)`,
		g.WrestlerID, g.Name).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO gimmicks (wrestler_id, gimmick_name, debut_promotion_id, is_default, date_created, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		g.WrestlerID, g.Name, nullableInt64(g.DebutPromotionID), g.IsDefault,
		nullableTime(g.DateCreated), nullableTime(g.LastSeen)).Scan(&g.ID)
	if err != nil {
		return false, fmt.Errorf("failed to insert gimmick %q: %w", g.Name, err)
	}
	return true, nil
}

func (r *DuckDBRepo) Close() error {
	return r.db.Close()
}

func scanPromotion(row *sql.Row) (*model.Promotion, error) {
	var p model.Promotion
	var country sql.NullString
	var founded, disbanded, years sql.NullInt32
	var active sql.NullBool
	var cagematchID sql.NullInt64

	err := row.Scan(&p.ID, &p.Name, &country, &founded, &disbanded, &active, &years, &cagematchID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Country = country.String
	p.YearFounded = intPtr(founded)
	p.YearDisbanded = intPtr(disbanded)
	p.IsActive = active.Bool
	p.YearsActive = intPtr(years)
	p.CagematchID = int64Ptr(cagematchID)
	return &p, nil
}

func scanWrestler(row *sql.Row) (*model.Wrestler, error) {
	var w model.Wrestler
	var promotionID sql.NullInt64
	var height, weight, age, years, reigns, won sql.NullInt32
	var active, champion sql.NullBool
	var debut, retirement sql.NullTime

	err := row.Scan(&w.ID, &w.Name, &promotionID, &height, &weight, &age, &debut, &active,
		&years, &retirement, &w.CagematchID, &reigns, &won, &champion)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	w.PromotionID = int64Ptr(promotionID)
	w.HeightCM = intPtr(height)
	w.WeightKG = intPtr(weight)
	w.Age = intPtr(age)
	w.Debut = timePtr(debut)
	w.IsActive = active.Bool
	w.YearsActive = intPtr(years)
	w.Retirement = timePtr(retirement)
	w.TitleReigns = int(reigns.Int32)
	w.TitlesWon = int(won.Int32)
	w.IsChampion = champion.Bool
	return &w, nil
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(n sql.NullInt32) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
