package httpserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{"id", "name", "email", "phone_number", "created_at"}

// exportCustomers streams every customer as an xlsx attachment.
func (s *Server) exportCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := s.customers.List(r.Context())
	if err != nil {
		s.fail(w, err, http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for i, h := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, c := range list {
		values := []any{c.ID.String(), c.Name, c.Email, c.PhoneNumber, c.CreatedAt.Format(time.RFC3339)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=customers.xlsx")
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("export write")
	}
}
