package db

import (
	"log"

	"refbot/internal/models"
)

// InsertOrder сохраняет завершенный заказ.
func InsertOrder(o models.Order) (models.Order, error) {
	err := DB.QueryRow(`
        INSERT INTO orders (chat_id, name, username, phone, email, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at`,
		o.ChatID, o.Name, o.Username, o.Phone, o.Email).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Printf("InsertOrder: ошибка сохранения заказа для chatID %d: %v", o.ChatID, err)
		return o, err
	}
	log.Printf("Заказ #%d сохранен (chatID %d).", o.ID, o.ChatID)
	return o, nil
}

// GetAllOrders возвращает все заказы, новые первыми (административный API).
func GetAllOrders() ([]models.Order, error) {
	rows, err := DB.Query(`
        SELECT id, chat_id, name, username, phone, email, created_at
        FROM orders ORDER BY created_at DESC`)
	if err != nil {
		log.Printf("GetAllOrders: ошибка запроса списка заказов: %v", err)
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if errScan := rows.Scan(&o.ID, &o.ChatID, &o.Name, &o.Username, &o.Phone, &o.Email, &o.CreatedAt); errScan != nil {
			log.Printf("GetAllOrders: ошибка сканирования заказа: %v", errScan)
			continue
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// OrderStore адаптирует функции пакета db к интерфейсу orderflow.OrderSaver.
type OrderStore struct{}

func (OrderStore) Save(o models.Order) (models.Order, error) {
	return InsertOrder(o)
}
