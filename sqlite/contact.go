package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/google/uuid"
)

// DefaultContactLimit caps FindContacts when the filter sets no limit.
const DefaultContactLimit = 50

// Compile-time interface verification.
var _ prospect.ContactService = (*ContactService)(nil)

const contactColumns = `id, first_name, last_name, email, phone, company, title, website,
	linkedin_url, location, industry, notes, tags, source, confidence, job_id,
	created_at, updated_at`

// ContactService implements prospect.ContactService using SQLite.
type ContactService struct {
	db *DB
}

// NewContactService creates a new ContactService.
func NewContactService(db *DB) *ContactService {
	return &ContactService{db: db}
}

// CreateContact creates a new contact.
func (s *ContactService) CreateContact(ctx context.Context, contact *prospect.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	tags, err := encodeStrings(contact.Tags)
	if err != nil {
		return err
	}

	contact.ID = uuid.New().String()
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contacts (`+contactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID, contact.FirstName, contact.LastName, contact.Email, contact.Phone,
		contact.Company, contact.Title, contact.Website, contact.LinkedInURL,
		contact.Location, contact.Industry, contact.Notes, tags, contact.Source,
		contact.Confidence, nullString(contact.JobID),
		contact.CreatedAt.UTC().Format(time.RFC3339), contact.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY") {
		return prospect.Errorf(prospect.EINVALID, "job %q does not exist", contact.JobID)
	}
	return err
}

// FindContactByID retrieves a contact by ID.
func (s *ContactService) FindContactByID(ctx context.Context, id string) (*prospect.Contact, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contacts WHERE id = ?", id)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, prospect.Errorf(prospect.ENOTFOUND, "contact not found")
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// FindContacts retrieves contacts matching the filter, newest first, and the
// total number of matches.
func (s *ContactService) FindContacts(ctx context.Context, filter prospect.ContactFilter) ([]*prospect.Contact, int, error) {
	var where strings.Builder
	var args []any

	where.WriteString(" WHERE 1=1")

	if filter.ID != nil {
		where.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.JobID != nil {
		where.WriteString(" AND job_id = ?")
		args = append(args, *filter.JobID)
	}
	if filter.Query != nil && *filter.Query != "" {
		where.WriteString(` AND (first_name LIKE ? ESCAPE '\' OR last_name LIKE ? ESCAPE '\'
			OR company LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\')`)
		pattern := likePattern(*filter.Query)
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if filter.Company != nil && *filter.Company != "" {
		where.WriteString(` AND company LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(*filter.Company))
	}
	if filter.Location != nil && *filter.Location != "" {
		where.WriteString(` AND location LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(*filter.Location))
	}
	if filter.HasEmail {
		where.WriteString(" AND email <> ''")
	}
	if filter.HasPhone {
		where.WriteString(" AND phone <> ''")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts"+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var query strings.Builder
	query.WriteString("SELECT " + contactColumns + " FROM contacts")
	query.WriteString(where.String())
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultContactLimit
	}
	appendPagination(&query, &args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []*prospect.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// UpdateContact updates an existing contact.
func (s *ContactService) UpdateContact(ctx context.Context, id string, upd prospect.ContactUpdate) (*prospect.Contact, error) {
	contact, err := s.FindContactByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&contact.FirstName, upd.FirstName)
	set(&contact.LastName, upd.LastName)
	set(&contact.Email, upd.Email)
	set(&contact.Phone, upd.Phone)
	set(&contact.Company, upd.Company)
	set(&contact.Title, upd.Title)
	set(&contact.Website, upd.Website)
	set(&contact.LinkedInURL, upd.LinkedInURL)
	set(&contact.Location, upd.Location)
	set(&contact.Industry, upd.Industry)
	set(&contact.Notes, upd.Notes)
	if upd.Tags != nil {
		contact.Tags = prospect.NewTags(*upd.Tags...)
	}
	if upd.Confidence != nil {
		contact.Confidence = *upd.Confidence
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	tags, err := encodeStrings(contact.Tags)
	if err != nil {
		return nil, err
	}

	contact.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE contacts
		SET first_name = ?, last_name = ?, email = ?, phone = ?, company = ?, title = ?,
			website = ?, linkedin_url = ?, location = ?, industry = ?, notes = ?, tags = ?,
			confidence = ?, updated_at = ?
		WHERE id = ?
	`, contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Company,
		contact.Title, contact.Website, contact.LinkedInURL, contact.Location,
		contact.Industry, contact.Notes, tags, contact.Confidence,
		contact.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// DeleteContact permanently removes a contact.
func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return prospect.Errorf(prospect.ENOTFOUND, "contact not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*prospect.Contact, error) {
	var contact prospect.Contact
	var tags, createdAt, updatedAt string
	var jobID sql.NullString

	if err := row.Scan(&contact.ID, &contact.FirstName, &contact.LastName, &contact.Email,
		&contact.Phone, &contact.Company, &contact.Title, &contact.Website,
		&contact.LinkedInURL, &contact.Location, &contact.Industry, &contact.Notes,
		&tags, &contact.Source, &contact.Confidence, &jobID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	decoded, err := decodeStrings(tags, "tags")
	if err != nil {
		return nil, err
	}
	contact.Tags = prospect.Tags(decoded)
	contact.JobID = jobID.String

	if contact.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if contact.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &contact, nil
}

// likePattern wraps s in wildcards, escaping LIKE metacharacters.
// SQLite's LIKE is case-insensitive for ASCII.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
