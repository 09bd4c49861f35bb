package database

import (
	"database/sql"
	"fmt"

	"github.com/sanpii/sav/app/models"
)

// DefaultLimit is the page size used when the caller does not pick one.
const DefaultLimit = 50

const expenseColumns = `id, created_at, serial, name, url, shop, warranty, price, trashed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	e := &models.Expense{}
	var warranty int
	var trashedAt sql.NullTime

	err := row.Scan(
		&e.ID, &e.CreatedAt, &e.Serial, &e.Name, &e.URL, &e.Shop,
		&warranty, &e.Price, &trashedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Warranty = models.Warranty(warranty)
	if trashedAt.Valid {
		e.TrashedAt = &trashedAt.Time
	}
	return e, nil
}

// GetExpenseByID returns the expense with the given id, or sql.ErrNoRows.
func GetExpenseByID(db *sql.DB, id int) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE id = $1`

	return scanExpense(db.QueryRow(query, id))
}

// CreateExpense inserts a new expense and fills in the server-assigned
// id and created_at.
func CreateExpense(db *sql.DB, e *models.Expense) error {
	query := `INSERT INTO expense (serial, name, url, shop, warranty, price)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`

	return db.QueryRow(
		query,
		e.Serial, e.Name, e.URL, e.Shop, int(e.Warranty), e.Price,
	).Scan(&e.ID, &e.CreatedAt)
}

// UpdateExpense overwrites the editable columns of an existing expense.
// Returns sql.ErrNoRows when the id is unknown.
func UpdateExpense(db *sql.DB, e *models.Expense) error {
	query := `UPDATE expense
			  SET serial = $1, name = $2, url = $3, shop = $4, warranty = $5, price = $6
			  WHERE id = $7`

	result, err := db.Exec(query, e.Serial, e.Name, e.URL, e.Shop, int(e.Warranty), e.Price, e.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetExpenseTrashed moves an expense in or out of the trash by setting
// trashed_at. Returns sql.ErrNoRows when the id is unknown.
func SetExpenseTrashed(db *sql.DB, id int, trashed bool) error {
	var query string
	if trashed {
		query = `UPDATE expense SET trashed_at = NOW() WHERE id = $1`
	} else {
		query = `UPDATE expense SET trashed_at = NULL WHERE id = $1`
	}

	result, err := db.Exec(query, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteExpense removes the row. Returns sql.ErrNoRows when the id is unknown.
func DeleteExpense(db *sql.DB, id int) error {
	result, err := db.Exec(`DELETE FROM expense WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	count, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PaginateExpenses returns one page of the filtered expense set, newest
// first. q is an optional case-insensitive name filter; trashed selects
// between active and trashed records.
func PaginateExpenses(db *sql.DB, q string, trashed bool, page, limit int) (*models.Pager, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	clause := `trashed_at IS NULL`
	if trashed {
		clause = `trashed_at IS NOT NULL`
	}

	args := []any{}
	if q != "" {
		args = append(args, q)
		clause += fmt.Sprintf(` AND name ~* $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM expense WHERE ` + clause
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM expense WHERE %s ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`,
		expenseColumns, clause, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.Pager{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
	}, nil
}

// ListShops returns the distinct non-empty shop names, for the edit form
// suggestion list.
func ListShops(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT shop FROM expense WHERE shop <> '' ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []string{}
	for rows.Next() {
		var shop string
		if err := rows.Scan(&shop); err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}
