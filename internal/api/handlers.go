package api

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"refbot/internal/db"
	"refbot/internal/models"
)

// jsonResponse - вспомогательная структура для стандартного ответа API
type jsonResponse struct {
	Status  string      `json:"status"` // "success" или "error"
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// --- Вспомогательные функции для JSON-ответов ---
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(jsonResponse{Status: "error", Message: message})
}

func writeJSONSuccess(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jsonResponse{Status: "success", Message: message, Data: data})
}

// --- DTO: sql.Null* поля наружу отдаются указателями ---

// ProjectDTO - представление проекта в API.
type ProjectDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Link        *string   `json:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectRequest - тело запроса создания/обновления проекта.
type ProjectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	Link        *string `json:"link"`
}

// SettingsDTO - представление настроек уведомлений в API.
type SettingsDTO struct {
	NotifyEmail  *string `json:"notify_email"`
	NotifyChatID *int64  `json:"notify_chat_id"`
	EmailSubject string  `json:"email_subject"`
	HeaderText   *string `json:"header_text"`
}

// OrderDTO - представление заказа в API.
type OrderDTO struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberDTO - представление участника в API.
type MemberDTO struct {
	ID         int64     `json:"id"`
	ChatID     int64     `json:"chat_id"`
	Name       string    `json:"name"`
	Username   *string   `json:"username,omitempty"`
	InviteCode string    `json:"invite_code"`
	ParentID   *int64    `json:"parent_id,omitempty"`
	Depth      int       `json:"depth"`
	Balance    float64   `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

func ptrNullString(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func ptrNullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func projectDTO(p models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    nullStringPtr(p.ImageURL),
		Link:        nullStringPtr(p.Link),
		CreatedAt:   p.CreatedAt,
	}
}

// --- Каталог проектов / Projects catalog ---

// GetProjects возвращает все проекты каталога.
func GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := db.GetAllProjects()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить список проектов")
		return
	}
	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, projectDTO(p))
	}
	writeJSONSuccess(w, "OK", dtos)
}

// CreateProject добавляет проект в каталог.
func CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if req.Title == "" {
		writeJSONError(w, http.StatusBadRequest, "Поле title обязательно")
		return
	}

	created, err := db.CreateProject(models.Project{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    ptrNullString(req.ImageURL),
		Link:        ptrNullString(req.Link),
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось создать проект")
		return
	}
	writeJSONSuccess(w, "Проект создан", projectDTO(created))
}

// UpdateProject обновляет проект по id.
func UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректный id проекта")
		return
	}

	var req ProjectRequest
	if errDecode := json.NewDecoder(r.Body).Decode(&req); errDecode != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if req.Title == "" {
		writeJSONError(w, http.StatusBadRequest, "Поле title обязательно")
		return
	}

	errUpdate := db.UpdateProject(models.Project{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    ptrNullString(req.ImageURL),
		Link:        ptrNullString(req.Link),
	})
	if errUpdate == sql.ErrNoRows {
		writeJSONError(w, http.StatusNotFound, "Проект не найден")
		return
	}
	if errUpdate != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить проект")
		return
	}
	writeJSONSuccess(w, "Проект обновлен", nil)
}

// DeleteProject удаляет проект по id.
func DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректный id проекта")
		return
	}

	errDelete := db.DeleteProject(id)
	if errDelete == sql.ErrNoRows {
		writeJSONError(w, http.StatusNotFound, "Проект не найден")
		return
	}
	if errDelete != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось удалить проект")
		return
	}
	writeJSONSuccess(w, "Проект удален", nil)
}

// --- Настройки уведомлений / Notification settings ---

// GetSettings возвращает текущие настройки уведомлений о заказах.
func GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := db.GetNotificationSettings()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить настройки уведомлений")
		return
	}
	writeJSONSuccess(w, "OK", SettingsDTO{
		NotifyEmail:  nullStringPtr(settings.NotifyEmail),
		NotifyChatID: nullInt64Ptr(settings.NotifyChatID),
		EmailSubject: settings.EmailSubject,
		HeaderText:   nullStringPtr(settings.HeaderText),
	})
}

// UpdateSettings обновляет настройки уведомлений. Диспетчер читает их
// заново при каждой отправке, поэтому изменения действуют сразу.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}

	err := db.UpdateNotificationSettings(models.NotificationSettings{
		NotifyEmail:  ptrNullString(req.NotifyEmail),
		NotifyChatID: ptrNullInt64(req.NotifyChatID),
		EmailSubject: req.EmailSubject,
		HeaderText:   ptrNullString(req.HeaderText),
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить настройки уведомлений")
		return
	}
	log.Println("UpdateSettings: настройки уведомлений обновлены через API.")
	writeJSONSuccess(w, "Настройки обновлены", nil)
}

// --- Списки / Listings ---

// GetMembers возвращает всех участников реферальной программы.
func GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := db.GetAllMembers()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить список участников")
		return
	}
	dtos := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, MemberDTO{
			ID:         m.ID,
			ChatID:     m.ChatID,
			Name:       m.Name,
			Username:   nullStringPtr(m.Username),
			InviteCode: m.InviteCode,
			ParentID:   nullInt64Ptr(m.ParentID),
			Depth:      m.Depth,
			Balance:    m.Balance,
			CreatedAt:  m.CreatedAt,
		})
	}
	writeJSONSuccess(w, "OK", dtos)
}

// GetOrders возвращает все заказы, новые первыми.
func GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := db.GetAllOrders()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить список заказов")
		return
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, OrderDTO{
			ID:        o.ID,
			ChatID:    o.ChatID,
			Name:      o.Name,
			Username:  o.Username,
			Phone:     o.Phone,
			Email:     o.Email,
			CreatedAt: o.CreatedAt,
		})
	}
	writeJSONSuccess(w, "OK", dtos)
}
