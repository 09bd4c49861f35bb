package expenses

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sanpii/sav/app/models"
	"github.com/sanpii/sav/app/storage"
	"github.com/shopspring/decimal"
)

// decodeExpenseForm fills the editable fields of e from the submitted
// form. Validation failures name the offending field.
func decodeExpenseForm(c *fiber.Ctx, e *models.Expense) error {
	e.Name = strings.TrimSpace(c.FormValue("name"))
	if e.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "expense name is required")
	}

	e.Serial = strings.TrimSpace(c.FormValue("serial"))
	e.URL = strings.TrimSpace(c.FormValue("url"))
	e.Shop = strings.TrimSpace(c.FormValue("shop"))

	warranty, err := models.ParseWarranty(c.FormValue("warranty"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	e.Warranty = warranty

	price := strings.TrimSpace(c.FormValue("price"))
	if price == "" {
		e.Price = decimal.Zero
	} else {
		e.Price, err = decimal.NewFromString(price)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("cannot parse price %q", price))
		}
	}

	return nil
}

// saveAttachments writes every attachment present in the request to the
// media store. Missing files are left untouched.
func saveAttachments(c *fiber.Ctx, id int) error {
	for _, mediaType := range storage.Types {
		header, err := c.FormFile(mediaType)
		if err != nil {
			continue
		}

		file, err := header.Open()
		if err != nil {
			return err
		}

		err = media.Write(id, mediaType, file)
		file.Close()
		if err != nil {
			return err
		}
	}

	return nil
}
