package expenses

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sanpii/sav/app/config"
	"github.com/sanpii/sav/app/database"
	"github.com/sanpii/sav/app/flash"
	"github.com/sanpii/sav/app/models"
)

// IndexHandler renders the paged expense list. Query parameters: page
// (default 1), limit (default 50), trashed (default false) and q, an
// optional name filter.
func IndexHandler(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", database.DefaultLimit)
	trashed := c.QueryBool("trashed", false)
	q := c.Query("q")

	pager, err := database.PaginateExpenses(config.GetDB(), q, trashed, page, limit)
	if err != nil {
		return err
	}

	return c.Render("expense/list", fiber.Map{
		"Title":   "Expenses",
		"Pager":   pager,
		"Trashed": trashed,
		"Query":   q,
		"Flash":   flash.Pop(c),
		"Media":   media,
	})
}

// AddHandler renders an empty edit form for a not-yet-persisted expense.
func AddHandler(c *fiber.Ctx) error {
	shops, err := database.ListShops(config.GetDB())
	if err != nil {
		return err
	}

	return c.Render("expense/edit", fiber.Map{
		"Title":   "New expense",
		"Expense": &models.Expense{CreatedAt: time.Now()},
		"Shops":   shops,
		"Media":   media,
	})
}

// CreateHandler persists a new expense from the submitted form, then
// stores any uploaded attachments under the assigned id.
func CreateHandler(c *fiber.Ctx) error {
	expense := &models.Expense{}
	if err := decodeExpenseForm(c, expense); err != nil {
		return err
	}

	if err := database.CreateExpense(config.GetDB(), expense); err != nil {
		return err
	}

	if err := saveAttachments(c, expense.ID); err != nil {
		return err
	}

	flash.Success(c, "Expense created")
	return c.Redirect("/")
}

func EditHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	expense, err := database.GetExpenseByID(config.GetDB(), id)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Unknown expense #%d", id))
	}
	if err != nil {
		return err
	}

	shops, err := database.ListShops(config.GetDB())
	if err != nil {
		return err
	}

	return c.Render("expense/edit", fiber.Map{
		"Title":   expense.Name,
		"Expense": expense,
		"Shops":   shops,
		"Media":   media,
	})
}

// SaveHandler persists edits to an existing expense and stores any
// attachments present in the request.
func SaveHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	expense, err := database.GetExpenseByID(config.GetDB(), id)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Unknown expense #%d", id))
	}
	if err != nil {
		return err
	}

	if err := decodeExpenseForm(c, expense); err != nil {
		return err
	}

	if err := database.UpdateExpense(config.GetDB(), expense); err != nil {
		return err
	}

	if err := saveAttachments(c, expense.ID); err != nil {
		return err
	}

	flash.Success(c, "Expense updated")
	return c.Redirect("/")
}

// DeleteHandler removes the row and its attachment directory.
func DeleteHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	err = database.DeleteExpense(config.GetDB(), id)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Unknown expense #%d", id))
	}
	if err != nil {
		return err
	}

	if err := media.Remove(id); err != nil {
		log.Printf("Failed to remove attachments of expense %d: %v", id, err)
	}

	flash.Success(c, "Expense deleted")
	return c.Redirect("/")
}

func TrashHandler(c *fiber.Ctx) error {
	return setTrashed(c, true, "Expense trashed")
}

func UntrashHandler(c *fiber.Ctx) error {
	return setTrashed(c, false, "Expense restored")
}

func setTrashed(c *fiber.Ctx, trashed bool, notice string) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	err = database.SetExpenseTrashed(config.GetDB(), id, trashed)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Unknown expense #%d", id))
	}
	if err != nil {
		return err
	}

	flash.Success(c, notice)
	return c.Redirect("/")
}

// MediaHandler streams attachment bytes for type in {photo,invoice,notice}.
func MediaHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	mediaType := c.Params("type")

	path, err := media.Path(id, mediaType)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("No %s for expense #%d", mediaType, id))
	}

	return c.SendFile(path)
}
