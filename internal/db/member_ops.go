package db

import (
	"database/sql"
	"fmt"
	"log"

	"refbot/internal/models"
)

// InsertMember вставляет нового участника и возвращает созданную запись.
// Родитель фиксируется в момент вставки и больше никогда не меняется —
// это и гарантирует ацикличность дерева: родителем может стать только уже
// существующий участник.
func InsertMember(m models.Member) (models.Member, error) {
	err := DB.QueryRow(`
        INSERT INTO members (chat_id, name, username, invite_code, parent_id, depth, balance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, 0, NOW())
        RETURNING id, created_at`,
		m.ChatID, m.Name, m.Username, m.InviteCode, m.ParentID, m.Depth).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		log.Printf("InsertMember: ошибка вставки участника chatID %d: %v", m.ChatID, err)
		return m, err
	}
	log.Printf("Зарегистрирован новый участник с chatID %d (id %d).", m.ChatID, m.ID)
	return m, nil
}

// GetMemberByChatID извлекает участника по его chat_id.
// Возвращает sql.ErrNoRows, если участник не найден.
func GetMemberByChatID(chatID int64) (models.Member, error) {
	var m models.Member
	err := DB.QueryRow(`
        SELECT id, chat_id, name, username, invite_code, parent_id, depth, balance, created_at
        FROM members WHERE chat_id=$1`, chatID).Scan(
		&m.ID, &m.ChatID, &m.Name, &m.Username, &m.InviteCode, &m.ParentID, &m.Depth, &m.Balance, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return m, err
		}
		log.Printf("GetMemberByChatID: ошибка получения участника chatID %d: %v", chatID, err)
		return m, err
	}
	return m, nil
}

// GetMemberByInviteCode извлекает участника по его реферальному коду.
// Возвращает sql.ErrNoRows, если код никому не принадлежит.
func GetMemberByInviteCode(code string) (models.Member, error) {
	var m models.Member
	err := DB.QueryRow(`
        SELECT id, chat_id, name, username, invite_code, parent_id, depth, balance, created_at
        FROM members WHERE invite_code=$1`, code).Scan(
		&m.ID, &m.ChatID, &m.Name, &m.Username, &m.InviteCode, &m.ParentID, &m.Depth, &m.Balance, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return m, err
		}
		log.Printf("GetMemberByInviteCode: ошибка поиска по коду '%s': %v", code, err)
		return m, err
	}
	return m, nil
}

// CreditAncestors начисляет фиксированную сумму не более чем maxLevels
// ближайшим предкам участника. Выполняется одним атомарным UPDATE: каждый
// подходящий предок получает ровно одно начисление за событие, конкурентные
// регистрации с общей цепочкой предков сериализует сама БД на уровне строк.
func CreditAncestors(memberID int64, amount float64, maxLevels int) (int, error) {
	res, err := DB.Exec(`
        WITH RECURSIVE ancestors AS (
            SELECT m.parent_id AS id, 1 AS lvl
            FROM members m
            WHERE m.id = $1 AND m.parent_id IS NOT NULL
            UNION ALL
            SELECT m.parent_id, a.lvl + 1
            FROM members m
            JOIN ancestors a ON m.id = a.id
            WHERE m.parent_id IS NOT NULL AND a.lvl < $3
        )
        UPDATE members SET balance = balance + $2
        WHERE id IN (SELECT id FROM ancestors)`,
		memberID, amount, maxLevels)
	if err != nil {
		log.Printf("CreditAncestors: ошибка начисления для участника id %d: %v", memberID, err)
		return 0, err
	}
	// Само начисление уже зафиксировано; ошибку подсчета отдаем наверх,
	// чтобы не отчитаться "0 предкам" о прошедшем UPDATE.
	credited, errRows := res.RowsAffected()
	if errRows != nil {
		log.Printf("CreditAncestors: не удалось получить число начислений для участника id %d: %v", memberID, errRows)
		return 0, fmt.Errorf("подсчет начислений: %w", errRows)
	}
	log.Printf("CreditAncestors: участнику id %d начислено %d предкам по %.2f.", memberID, credited, amount)
	return int(credited), nil
}

// GetDescendantsByLevel возвращает приглашенных участником, сгруппированных
// по уровням 1..maxLevels относительно него. Глубже maxLevels поддерево
// не обходится — листинг показывает ровно те уровни, которые участвуют
// в начислениях.
func GetDescendantsByLevel(memberID int64, maxLevels int) (map[int][]models.Member, error) {
	rows, err := DB.Query(`
        WITH RECURSIVE subtree AS (
            SELECT m.id, m.chat_id, m.name, m.username, m.invite_code, m.parent_id, m.depth, m.balance, m.created_at, 1 AS lvl
            FROM members m
            WHERE m.parent_id = $1
            UNION ALL
            SELECT m.id, m.chat_id, m.name, m.username, m.invite_code, m.parent_id, m.depth, m.balance, m.created_at, s.lvl + 1
            FROM members m
            JOIN subtree s ON m.parent_id = s.id
            WHERE s.lvl < $2
        )
        SELECT id, chat_id, name, username, invite_code, parent_id, depth, balance, created_at, lvl
        FROM subtree
        ORDER BY lvl, created_at`,
		memberID, maxLevels)
	if err != nil {
		log.Printf("GetDescendantsByLevel: ошибка запроса поддерева для участника id %d: %v", memberID, err)
		return nil, err
	}
	defer rows.Close()

	result := make(map[int][]models.Member)
	for rows.Next() {
		var m models.Member
		var lvl int
		errScan := rows.Scan(&m.ID, &m.ChatID, &m.Name, &m.Username, &m.InviteCode, &m.ParentID, &m.Depth, &m.Balance, &m.CreatedAt, &lvl)
		if errScan != nil {
			log.Printf("GetDescendantsByLevel: ошибка сканирования строки поддерева для участника id %d: %v", memberID, errScan)
			continue
		}
		result[lvl] = append(result[lvl], m)
	}
	if err = rows.Err(); err != nil {
		log.Printf("GetDescendantsByLevel: ошибка после итерации по строкам для участника id %d: %v", memberID, err)
		return nil, err
	}
	return result, nil
}

// GetAllMembers возвращает всех участников (для административного API).
func GetAllMembers() ([]models.Member, error) {
	rows, err := DB.Query(`
        SELECT id, chat_id, name, username, invite_code, parent_id, depth, balance, created_at
        FROM members ORDER BY created_at`)
	if err != nil {
		log.Printf("GetAllMembers: ошибка запроса списка участников: %v", err)
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if errScan := rows.Scan(&m.ID, &m.ChatID, &m.Name, &m.Username, &m.InviteCode, &m.ParentID, &m.Depth, &m.Balance, &m.CreatedAt); errScan != nil {
			log.Printf("GetAllMembers: ошибка сканирования участника: %v", errScan)
			continue
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// MemberStore адаптирует функции пакета db к интерфейсу referral.MemberStore.
type MemberStore struct{}

func (MemberStore) GetByChatID(chatID int64) (models.Member, bool, error) {
	m, err := GetMemberByChatID(chatID)
	if err == sql.ErrNoRows {
		return m, false, nil
	}
	if err != nil {
		return m, false, fmt.Errorf("чтение участника по chat_id: %w", err)
	}
	return m, true, nil
}

func (MemberStore) GetByInviteCode(code string) (models.Member, bool, error) {
	m, err := GetMemberByInviteCode(code)
	if err == sql.ErrNoRows {
		return m, false, nil
	}
	if err != nil {
		return m, false, fmt.Errorf("чтение участника по коду: %w", err)
	}
	return m, true, nil
}

func (MemberStore) Insert(m models.Member) (models.Member, error) {
	return InsertMember(m)
}

func (MemberStore) CreditAncestors(memberID int64, amount float64, maxLevels int) (int, error) {
	return CreditAncestors(memberID, amount, maxLevels)
}

func (MemberStore) DescendantsByLevel(memberID int64, maxLevels int) (map[int][]models.Member, error) {
	return GetDescendantsByLevel(memberID, maxLevels)
}
