// README: Pet store backed by PostgreSQL (read-only lookups for the resolver).
package pet

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"petree/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const petColumns = `
	p.id, p.name, p.registration_no, p.species, p.breed, p.gender,
	p.birth_date, p.color, p.location, p.owner_id, COALESCE(u.display_name, ''),
	p.for_sale, p.price_thb, p.father_id, p.mother_id`

const petFrom = ` FROM pets p LEFT JOIN users u ON u.id = p.owner_id`

func (s *Store) Get(ctx context.Context, id types.ID) (*Pet, error) {
	row := s.db.QueryRow(ctx, `SELECT`+petColumns+petFrom+` WHERE p.id = $1`, string(id))
	return scanPet(row)
}

func (s *Store) GetByRegistrationNo(ctx context.Context, regNo string) (*Pet, error) {
	row := s.db.QueryRow(ctx, `SELECT`+petColumns+petFrom+` WHERE p.registration_no = $1`, regNo)
	return scanPet(row)
}

// SearchByName returns pets whose name contains the term, case-insensitively,
// shortest names first so exact hits sort ahead of partial ones.
func (s *Store) SearchByName(ctx context.Context, term string, limit int) ([]Pet, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT`+petColumns+petFrom+`
		WHERE p.name ILIKE '%' || $1 || '%'
		ORDER BY length(p.name) ASC, p.name ASC
		LIMIT $2`, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

// CandidatesForText returns pets whose name appears somewhere inside the
// utterance. The containment test runs in SQL (utterance ILIKE '%'||name||'%')
// so the store does the heavy lifting of name-vs-common-word collisions.
func (s *Store) CandidatesForText(ctx context.Context, utterance string, limit int) ([]Pet, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(ctx, `
		SELECT`+petColumns+petFrom+`
		WHERE length(p.name) >= 2 AND $1 ILIKE '%' || p.name || '%'
		ORDER BY length(p.name) DESC
		LIMIT $2`, utterance, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

// Offspring returns pets that have the given pet as father or mother.
func (s *Store) Offspring(ctx context.Context, id types.ID) ([]Pet, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+petColumns+petFrom+`
		WHERE p.father_id = $1 OR p.mother_id = $1
		ORDER BY p.birth_date DESC NULLS LAST`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

// Siblings returns pets sharing at least one parent with the given pet,
// excluding the pet itself. Pets with no recorded parents have no siblings.
func (s *Store) Siblings(ctx context.Context, p *Pet) ([]Pet, error) {
	if p.FatherID == nil && p.MotherID == nil {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT`+petColumns+petFrom+`
		WHERE p.id != $1
		  AND ((p.father_id IS NOT NULL AND p.father_id = $2)
		    OR (p.mother_id IS NOT NULL AND p.mother_id = $3))
		ORDER BY p.birth_date DESC NULLS LAST`,
		string(p.ID), idOrEmpty(p.FatherID), idOrEmpty(p.MotherID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

// ForSale returns pets currently listed for sale, optionally filtered by
// species, youngest first.
func (s *Store) ForSale(ctx context.Context, species Species, limit int) ([]Pet, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(ctx, `
		SELECT`+petColumns+petFrom+`
		WHERE p.for_sale AND ($1 = '' OR p.species = $1)
		ORDER BY p.birth_date DESC NULLS LAST
		LIMIT $2`, string(species), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

// BreedingCandidates returns opposite-gender pets of the same breed.
func (s *Store) BreedingCandidates(ctx context.Context, p *Pet, limit int) ([]Pet, error) {
	if limit <= 0 {
		limit = 10
	}
	other := GenderFemale
	if p.Gender == GenderFemale {
		other = GenderMale
	}
	rows, err := s.db.Query(ctx, `
		SELECT`+petColumns+petFrom+`
		WHERE p.id != $1 AND p.breed = $2 AND p.gender = $3
		LIMIT $4`, string(p.ID), p.Breed, string(other), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (*Pet, error) {
	var p Pet
	var regNo, color, location sql.NullString
	var birthDate sql.NullTime
	var price sql.NullInt64
	var fatherID, motherID sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &regNo, &p.Species, &p.Breed, &p.Gender,
		&birthDate, &color, &location, &p.OwnerID, &p.OwnerName,
		&p.ForSale, &price, &fatherID, &motherID,
	)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.RegistrationNo = regNo.String
	p.Color = color.String
	p.Location = location.String
	if birthDate.Valid {
		t := birthDate.Time
		p.BirthDate = &t
	}
	if price.Valid {
		v := price.Int64
		p.PriceTHB = &v
	}
	p.FatherID = toIDPtr(fatherID)
	p.MotherID = toIDPtr(motherID)
	return &p, nil
}

func scanPets(rows pgx.Rows) ([]Pet, error) {
	var out []Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func toIDPtr(v sql.NullString) *types.ID {
	if !v.Valid || v.String == "" {
		return nil
	}
	id := types.ID(v.String)
	return &id
}

func idOrEmpty(id *types.ID) string {
	if id == nil {
		return ""
	}
	return string(*id)
}
