package export

import (
	"fmt"
	"io"

	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

// WriteBookingsReport renders the owner's bookings as an xlsx workbook, one
// row per booking.
func WriteBookingsReport(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	f.SetSheetName(f.GetSheetName(0), bookingsSheet)

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(bookingsSheet, cell, h); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.ItemName,
			b.BookerName,
			b.Start.Format("2006-01-02 15:04"),
			b.End.Format("2006-01-02 15:04"),
			string(b.Status),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(bookingsSheet, cell, v); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
