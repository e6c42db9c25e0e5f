package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"okravets/contacts-api/internal/model"
	"okravets/contacts-api/validators"

	"gorm.io/gorm"
)

// SearchField is the closed set of contact columns that can be searched
// by exact match. Anything else parses to FieldUnknown, which yields an
// empty result instead of an error.
type SearchField int

const (
	FieldUnknown SearchField = iota
	FieldID
	FieldFirstName
	FieldLastName
	FieldEmail
)

func ParseSearchField(s string) SearchField {
	switch s {
	case "id":
		return FieldID
	case "first_name":
		return FieldFirstName
	case "last_name":
		return FieldLastName
	case "email":
		return FieldEmail
	default:
		return FieldUnknown
	}
}

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// List returns the user's contacts, paginated. No ordering is imposed
// beyond what the underlying scan produces.
func (r *ContactRepo) List(ctx context.Context, user *model.User, offset, limit int) ([]model.Contact, error) {
	var contacts []model.Contact

	err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Offset(offset).
		Limit(limit).
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts, %w", err)
	}

	return contacts, nil
}

func (r *ContactRepo) Get(ctx context.Context, user *model.User, id uint) (*model.Contact, error) {
	var contact model.Contact

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&contact).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch contact, %w", err)
	}

	return &contact, nil
}

func (r *ContactRepo) Create(ctx context.Context, user *model.User, fields *validators.ContactFields) (*model.Contact, error) {
	if err := validators.ContactValidator(fields); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFields, err)
	}

	contact := model.Contact{
		UserID:    user.ID,
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Phone:     fields.Phone,
		Birthday:  fields.Birthday,
		Inform:    fields.Inform,
		Email:     fields.Email,
	}

	if err := r.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact, %w", err)
	}

	return &contact, nil
}

// Update replaces all mutable fields of an owned contact
func (r *ContactRepo) Update(ctx context.Context, user *model.User, id uint, fields *validators.ContactFields) (*model.Contact, error) {
	if err := validators.ContactValidator(fields); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFields, err)
	}

	contact, err := r.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = fields.FirstName
	contact.LastName = fields.LastName
	contact.Phone = fields.Phone
	contact.Birthday = fields.Birthday
	contact.Inform = fields.Inform
	contact.Email = fields.Email

	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact, %w", err)
	}

	return contact, nil
}

// Remove hard-deletes an owned contact and returns the removed row
func (r *ContactRepo) Remove(ctx context.Context, user *model.User, id uint) (*model.Contact, error) {
	contact, err := r.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(model.Contact{}).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to delete contact, %w", err)
	}

	return contact, nil
}

// UpcomingBirthdays returns the user's contacts whose next birthday
// occurrence falls within the given number of days from today. The window
// is capped at a year. Results keep scan order.
func (r *ContactRepo) UpcomingBirthdays(ctx context.Context, user *model.User, days int) ([]model.Contact, error) {
	if days > 365 {
		days = 365
	}

	var contacts []model.Contact

	err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan contacts, %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	res := []model.Contact{}

	for _, c := range contacts {
		bd := time.Date(today.Year(), c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, time.UTC)
		if bd.Before(today) {
			bd = bd.AddDate(1, 0, 0)
		}

		dayTo := int(bd.Sub(today).Hours() / 24)
		if dayTo <= days {
			res = append(res, c)
		}
	}

	return res, nil
}

// SearchBy dispatches to one of four exact-match lookups. An unknown
// field, or a non-numeric value for the id field, returns an empty
// slice rather than an error.
func (r *ContactRepo) SearchBy(ctx context.Context, user *model.User, field, value string) ([]model.Contact, error) {
	switch ParseSearchField(field) {
	case FieldID:
		return r.searchByID(ctx, user, value)
	case FieldFirstName:
		return r.searchByColumn(ctx, user, "first_name", value)
	case FieldLastName:
		return r.searchByColumn(ctx, user, "last_name", value)
	case FieldEmail:
		return r.searchByColumn(ctx, user, "email", value)
	default:
		return []model.Contact{}, nil
	}
}

func (r *ContactRepo) searchByID(ctx context.Context, user *model.User, value string) ([]model.Contact, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return []model.Contact{}, nil
	}

	return r.searchByColumn(ctx, user, "id", id)
}

func (r *ContactRepo) searchByColumn(ctx context.Context, user *model.User, column string, value any) ([]model.Contact, error) {
	contacts := []model.Contact{}

	err := r.db.WithContext(ctx).
		Where(column+" = ? AND user_id = ?", value, user.ID).
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts by %s, %w", column, err)
	}

	return contacts, nil
}
