package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// PostgresSchema creates the milestone store tables.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS roadmap_catalogs (
    slug VARCHAR(64) NOT NULL,
    version VARCHAR(64) NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    published_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    PRIMARY KEY (slug, version)
);

CREATE TABLE IF NOT EXISTS roadmap_milestones (
    catalog_slug VARCHAR(64) NOT NULL,
    catalog_version VARCHAR(64) NOT NULL,
    id VARCHAR(64) NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category VARCHAR(32) NOT NULL,
    skills TEXT[] NOT NULL DEFAULT '{}',
    company_relevance TEXT[] NOT NULL DEFAULT '{}',
    prerequisites TEXT[] NOT NULL DEFAULT '{}',
    resources JSONB NOT NULL DEFAULT '[]'::jsonb,
    deadline TIMESTAMP WITH TIME ZONE,
    PRIMARY KEY (catalog_slug, catalog_version, id)
);
`

// DB is the subset of *pgxpool.Pool used by the Postgres source.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Connect opens a pool for databaseURL and checks it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid database URL: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: failed to ping: %w", err)
	}
	return pool, nil
}

// Postgres loads the newest published version of a catalog from the
// milestone store.
type Postgres struct {
	db     DB
	slug   string
	logger *slog.Logger
}

// NewPostgres creates a source for the catalog named slug.
func NewPostgres(db DB, slug string, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{db: db, slug: slug, logger: logger}
}

// Migrate creates the milestone store tables if they are missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// Load fetches the highest semver version published under the slug.
func (p *Postgres) Load(ctx context.Context) (*roadmap.Catalog, error) {
	version, err := p.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, `
		SELECT id, title, description, category, skills, company_relevance,
		       prerequisites, resources, deadline
		FROM roadmap_milestones
		WHERE catalog_slug = $1 AND catalog_version = $2
		ORDER BY id`, p.slug, version)
	if err != nil {
		return nil, fmt.Errorf("postgres: query milestones: %w", err)
	}
	defer rows.Close()

	var milestones []roadmap.Milestone
	for rows.Next() {
		var (
			m         roadmap.Milestone
			category  string
			resources []byte
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &category, &m.Skills,
			&m.CompanyRelevance, &m.Prerequisites, &resources, &m.Deadline); err != nil {
			return nil, fmt.Errorf("postgres: scan milestone: %w", err)
		}
		m.Category = roadmap.Category(category)
		if len(resources) > 0 {
			if err := json.Unmarshal(resources, &m.Resources); err != nil {
				return nil, fmt.Errorf("postgres: milestone %s resources: %w", m.ID, err)
			}
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: query milestones: %w", err)
	}

	c, err := roadmap.NewCatalog(version, milestones)
	if err != nil {
		return nil, fmt.Errorf("postgres: catalog %s@%s: %w", p.slug, version, err)
	}
	p.logger.Debug("catalog loaded from postgres", "slug", p.slug, "version", version, "milestones", c.Len())
	return c, nil
}

func (p *Postgres) latestVersion(ctx context.Context) (string, error) {
	rows, err := p.db.Query(ctx, `SELECT version FROM roadmap_catalogs WHERE slug = $1`, p.slug)
	if err != nil {
		return "", fmt.Errorf("postgres: query versions: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("postgres: query versions: %w", err)
	}

	var latest string
	for _, v := range versions {
		canonical, err := CanonicalVersion(v)
		if err != nil {
			p.logger.Warn("skipping catalog version", "slug", p.slug, "version", v, "error", err)
			continue
		}
		if latest == "" || IsDowngrade(canonical, latest) {
			latest = canonical
		}
	}
	if latest == "" {
		return "", fmt.Errorf("postgres: slug %q: %w", p.slug, ErrCatalogNotFound)
	}
	return latest, nil
}

// Publish writes c under the slug in one transaction: a failure leaves
// the previously published rows untouched.
func (p *Postgres) Publish(ctx context.Context, c *roadmap.Catalog, name string) error {
	err := pgx.BeginFunc(ctx, p.db, func(tx pgx.Tx) error {
		return p.publish(ctx, tx, c, name)
	})
	if err != nil {
		return err
	}
	p.logger.Info("catalog published", "slug", p.slug, "version", c.Version(), "milestones", c.Len())
	return nil
}

func (p *Postgres) publish(ctx context.Context, tx pgx.Tx, c *roadmap.Catalog, name string) error {
	for _, m := range c.Milestones() {
		resources, err := json.Marshal(nonNil(m.Resources))
		if err != nil {
			return fmt.Errorf("postgres: milestone %s resources: %w", m.ID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO roadmap_milestones (catalog_slug, catalog_version, id, title, description,
				category, skills, company_relevance, prerequisites, resources, deadline)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (catalog_slug, catalog_version, id) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				category = EXCLUDED.category,
				skills = EXCLUDED.skills,
				company_relevance = EXCLUDED.company_relevance,
				prerequisites = EXCLUDED.prerequisites,
				resources = EXCLUDED.resources,
				deadline = EXCLUDED.deadline`,
			p.slug, c.Version(), m.ID, m.Title, m.Description, string(m.Category),
			nonNil(m.Skills), nonNil(m.CompanyRelevance), nonNil(m.Prerequisites), resources, m.Deadline)
		if err != nil {
			return fmt.Errorf("postgres: publish milestone %s: %w", m.ID, err)
		}
	}

	_, err := tx.Exec(ctx, `
		DELETE FROM roadmap_milestones
		WHERE catalog_slug = $1 AND catalog_version = $2 AND NOT (id = ANY($3))`,
		p.slug, c.Version(), c.IDs())
	if err != nil {
		return fmt.Errorf("postgres: prune milestones: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO roadmap_catalogs (slug, version, name) VALUES ($1, $2, $3)
		ON CONFLICT (slug, version) DO UPDATE SET name = EXCLUDED.name, published_at = NOW()`,
		p.slug, c.Version(), name)
	if err != nil {
		return fmt.Errorf("postgres: publish catalog: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
