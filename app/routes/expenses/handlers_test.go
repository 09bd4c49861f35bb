package expenses

import (
	"bytes"
	"database/sql"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/sanpii/sav/app/config"
	"github.com/sanpii/sav/app/flash"
	"github.com/sanpii/sav/app/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, *storage.Store) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	config.AppConfig = &config.Config{
		DB:        db,
		DataDir:   t.TempDir(),
		SecretKey: "test-secret",
	}
	flash.Init(config.AppConfig.SecretKey)

	store := storage.New(config.AppConfig.DataDir)

	engine := html.New("../../templates", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})
	SetupExpensesRoutes(app, store)

	return app, mock, store
}

func expenseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "serial", "name", "url", "shop", "warranty", "price", "trashed_at",
	})
}

func TestIndexRendersExpenses(t *testing.T) {
	app, mock, _ := newTestApp(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM expense WHERE trashed_at IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM expense WHERE trashed_at IS NULL ORDER BY`).
		WillReturnRows(expenseRows().AddRow(5, time.Now(), "", "Laptop", "", "Acme", 24, "999.00", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Laptop")
	assert.Contains(t, string(body), "/expenses/5/edit")
}

func TestIndexTrashedFilter(t *testing.T) {
	app, mock, _ := newTestApp(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM expense WHERE trashed_at IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM expense WHERE trashed_at IS NOT NULL ORDER BY`).
		WillReturnRows(expenseRows())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?trashed=1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEditUnknownExpense(t *testing.T) {
	app, mock, _ := newTestApp(t)

	mock.ExpectQuery(`SELECT .+ FROM expense WHERE id = \$1`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/expenses/42/edit", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateExpenseWithInvoice(t *testing.T) {
	app, mock, store := newTestApp(t)

	mock.ExpectQuery(`INSERT INTO expense`).
		WithArgs("SN-1", "Laptop", "", "Acme", 24, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, time.Now()))

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	form.WriteField("name", "Laptop")
	form.WriteField("serial", "SN-1")
	form.WriteField("shop", "Acme")
	form.WriteField("warranty", "2 years")
	form.WriteField("price", "999")
	file, err := form.CreateFormFile("invoice", "invoice.pdf")
	require.NoError(t, err)
	file.Write([]byte("invoice bytes"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/expenses/add", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// the attachment landed under the assigned id
	assert.True(t, store.Exists(12, "invoice"))
	assert.False(t, store.Exists(12, "notice"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseRequiresName(t *testing.T) {
	app, _, _ := newTestApp(t)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	form.WriteField("warranty", "1 year")
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/expenses/add", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	msg, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(msg), "name")
}

func TestCreateExpenseBadWarranty(t *testing.T) {
	app, _, _ := newTestApp(t)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	form.WriteField("name", "Laptop")
	form.WriteField("warranty", "two fortnights or so")
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/expenses/add", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	msg, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(msg), "warranty")
}

func TestSaveUpdatesExpense(t *testing.T) {
	app, mock, _ := newTestApp(t)

	mock.ExpectQuery(`SELECT .+ FROM expense WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(expenseRows().AddRow(5, time.Now(), "", "Laptop", "", "", 0, "999.00", nil))
	mock.ExpectExec(`UPDATE expense`).
		WithArgs("", "Laptop", "", "", 0, sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	form.WriteField("name", "Laptop")
	form.WriteField("price", "42.50")
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/expenses/5/edit", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashRedirectsWithFlash(t *testing.T) {
	app, mock, _ := newTestApp(t)

	mock.ExpectExec(`UPDATE expense SET trashed_at = NOW\(\)`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/expenses/5/trash", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	hasFlash := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "flash" && cookie.Value != "" {
			hasFlash = true
		}
	}
	assert.True(t, hasFlash, "mutation must queue a flash notice")
}

func TestTrashUnknownExpense(t *testing.T) {
	app, mock, _ := newTestApp(t)

	mock.ExpectExec(`UPDATE expense SET trashed_at = NOW\(\)`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/expenses/42/trash", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUntrashRedirects(t *testing.T) {
	app, mock, _ := newTestApp(t)

	mock.ExpectExec(`UPDATE expense SET trashed_at = NULL`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/expenses/5/untrash", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestDeleteRemovesAttachments(t *testing.T) {
	app, mock, store := newTestApp(t)

	require.NoError(t, store.Write(5, "photo", bytes.NewReader([]byte("pic"))))

	mock.ExpectExec(`DELETE FROM expense WHERE id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/expenses/5/delete", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.False(t, store.Exists(5, "photo"), "hard delete must remove attachments")
}

func TestMediaRoundTrip(t *testing.T) {
	app, _, store := newTestApp(t)

	content := []byte("invoice bytes")
	require.NoError(t, store.Write(5, "invoice", bytes.NewReader(content)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/expenses/5/invoice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)

	// a type that was never uploaded is a 404
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/expenses/5/notice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMediaUnknownType(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/expenses/5/passport", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
