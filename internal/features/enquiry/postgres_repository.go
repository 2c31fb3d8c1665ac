package enquiry

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

type PostgresEnquiryRepository struct {
	db *sql.DB
}

func NewPostgresEnquiryRepository(db *sql.DB) EnquiryRepository {
	return &PostgresEnquiryRepository{db: db}
}

func (r *PostgresEnquiryRepository) FindByMobile(ctx context.Context, mobile string) (*Enquiry, error) {
	var (
		e  Enquiry
		id int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, client_name, mobile, assigned_emp FROM enquiries WHERE mobile = $1 LIMIT 1`, mobile,
	).Scan(&id, &e.ClientName, &e.Mobile, &e.AssignedEmp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnquiryNotFound
		}
		return nil, err
	}
	e.ID = strconv.FormatInt(id, 10)
	return &e, nil
}

func (r *PostgresEnquiryRepository) Insert(ctx context.Context, e *Enquiry) (string, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO enquiries (client_name, mobile, email, configuration, enquiry_for, property_type,
			created_date, budget, area, remarks, source, status, assigned_emp, next_follow_up_date, inserted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		e.ClientName, e.Mobile, e.Email, e.Configuration, e.EnquiryFor, e.PropertyType,
		e.CreatedDate, e.Budget, e.Area, e.Remarks, e.Source, e.Status, e.AssignedEmp, e.NextFollowUpDate, e.InsertedAt,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}
