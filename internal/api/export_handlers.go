// Файл: internal/api/export_handlers.go
//
// Выгрузка участников и заказов в Excel для административной панели.
package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"refbot/internal/db"
)

// ExportMembersXLSX отдает xlsx со всеми участниками реферальной программы.
func ExportMembersXLSX(w http.ResponseWriter, r *http.Request) {
	members, err := db.GetAllMembers()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить данные участников")
		return
	}

	f := excelize.NewFile()
	sheetName := "Участники"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1") // Удаляем стандартный лист / Delete default sheet
	f.SetActiveSheet(index)

	headers := []string{"ID", "ChatID", "Имя", "Никнейм", "Реферальный код", "ID пригласившего", "Уровень", "Баланс", "Дата регистрации"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	for _, m := range members {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), m.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), m.ChatID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), m.Name)
		if m.Username.Valid {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), m.Username.String)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), m.InviteCode)
		if m.ParentID.Valid {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), m.ParentID.Int64)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), m.Depth)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), m.Balance)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowIndex), m.CreatedAt.Format("02.01.2006 15:04"))
		rowIndex++
	}

	sendXLSX(w, f, fmt.Sprintf("members_%s.xlsx", time.Now().Format("20060102_150405")))
}

// ExportOrdersXLSX отдает xlsx со всеми заказами.
func ExportOrdersXLSX(w http.ResponseWriter, r *http.Request) {
	orders, err := db.GetAllOrders()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить данные заказов")
		return
	}

	f := excelize.NewFile()
	sheetName := "Заказы"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "ChatID", "Имя", "Telegram", "Телефон", "E-mail", "Дата заказа"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	for _, o := range orders {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), o.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), o.ChatID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), o.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), o.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), o.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), o.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), o.CreatedAt.Format("02.01.2006 15:04"))
		rowIndex++
	}

	sendXLSX(w, f, fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405")))
}

// sendXLSX пишет книгу в ответ с заголовками скачивания.
func sendXLSX(w http.ResponseWriter, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		log.Printf("sendXLSX: ошибка записи файла '%s' в ответ: %v", filename, err)
	}
}
