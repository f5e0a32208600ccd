package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/event-booking/internal/model"
)

// CategoryRepo provides access to the categories table. Categories are
// never created through a dedicated endpoint; they come into existence
// the first time an organizer names one while creating an event.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// GetOrCreate returns the category with the given name, inserting it if
// necessary. The upsert leans on the unique key over categories.name:
// ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id) makes LastInsertId
// yield the surviving row's id whether this call created the row or
// lost the race to a concurrent insert of the same name.
func (r *CategoryRepo) GetOrCreate(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO categories (name) VALUES (?) ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)",
		name)
	if err != nil {
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: uint64(id), Name: name}, nil
}
