// Файл: internal/referral/directory.go
//
// Реферальный справочник: дерево участников с детерминированными
// реферальными кодами и ограниченным по глубине начислением бонусов.
package referral

import (
	"database/sql"
	"fmt"
	"log"

	"refbot/internal/models"
	"refbot/internal/utils"
)

// MemberStore — контракт хранилища участников. Реализуется пакетом db;
// в тестах подменяется индексом в памяти.
type MemberStore interface {
	GetByChatID(chatID int64) (models.Member, bool, error)
	GetByInviteCode(code string) (models.Member, bool, error)
	Insert(m models.Member) (models.Member, error)
	// CreditAncestors атомарно начисляет amount не более чем maxLevels
	// ближайшим предкам участника; возвращает число начислений.
	CreditAncestors(memberID int64, amount float64, maxLevels int) (int, error)
	DescendantsByLevel(memberID int64, maxLevels int) (map[int][]models.Member, error)
}

// Directory владеет деревом участников.
type Directory struct {
	store       MemberStore
	bonusAmount float64
	maxDepth    int
}

// NewDirectory создает справочник поверх хранилища.
// bonusAmount — фиксированное начисление за приглашенного, maxDepth —
// сколько ближайших предков его получают.
func NewDirectory(store MemberStore, bonusAmount float64, maxDepth int) *Directory {
	return &Directory{
		store:       store,
		bonusAmount: bonusAmount,
		maxDepth:    maxDepth,
	}
}

// Register регистрирует участника по chat_id. Повторная регистрация —
// идемпотентный no-op: возвращается существующая запись и created=false.
//
// Невалидный или чужой inviteCode не считается ошибкой — регистрация
// деградирует до корневой (без родителя). Родитель фиксируется здесь и
// никогда не переназначается; так как родителем может стать только уже
// существующий участник, цикл в дереве невозможен по построению.
func (d *Directory) Register(chatID int64, name string, username string, inviteCode string) (models.Member, bool, error) {
	existing, found, err := d.store.GetByChatID(chatID)
	if err != nil {
		return models.Member{}, false, fmt.Errorf("проверка существования участника: %w", err)
	}
	if found {
		return existing, false, nil
	}

	var parentID sql.NullInt64
	depth := 0
	if inviteCode != "" {
		parent, parentFound, errParent := d.store.GetByInviteCode(inviteCode)
		if errParent != nil {
			return models.Member{}, false, fmt.Errorf("поиск пригласившего по коду: %w", errParent)
		}
		if parentFound {
			parentID = sql.NullInt64{Int64: parent.ID, Valid: true}
			depth = parent.Depth + 1
		} else {
			log.Printf("Directory.Register: код '%s' никому не принадлежит, chatID %d регистрируется без пригласившего.", inviteCode, chatID)
		}
	}

	code, err := utils.DeriveInviteCode(chatID)
	if err != nil {
		return models.Member{}, false, fmt.Errorf("выработка реферального кода: %w", err)
	}

	var usernameField sql.NullString
	if username != "" {
		usernameField = sql.NullString{String: username, Valid: true}
	}

	member, err := d.store.Insert(models.Member{
		ChatID:     chatID,
		Name:       name,
		Username:   usernameField,
		InviteCode: code,
		ParentID:   parentID,
		Depth:      depth,
	})
	if err != nil {
		return models.Member{}, false, fmt.Errorf("создание участника: %w", err)
	}

	if parentID.Valid {
		credited, errCredit := d.store.CreditAncestors(member.ID, d.bonusAmount, d.maxDepth)
		if errCredit != nil {
			// Участник уже создан; начисление не удалось — логируем, но
			// регистрацию не откатываем.
			log.Printf("Directory.Register: ошибка начисления бонусов за участника id %d: %v", member.ID, errCredit)
		} else {
			log.Printf("Directory.Register: за участника id %d начислено %d предкам по %.2f.", member.ID, credited, d.bonusAmount)
		}
	}

	return member, true, nil
}

// ResolveInviteCode возвращает владельца реферального кода.
func (d *Directory) ResolveInviteCode(code string) (models.Member, bool, error) {
	return d.store.GetByInviteCode(code)
}

// GetMember возвращает участника по chat_id.
func (d *Directory) GetMember(chatID int64) (models.Member, bool, error) {
	return d.store.GetByChatID(chatID)
}

// GetBalance возвращает баланс участника.
func (d *Directory) GetBalance(chatID int64) (float64, error) {
	member, found, err := d.store.GetByChatID(chatID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("участник с chatID %d не найден", chatID)
	}
	return member.Balance, nil
}

// ListDescendantsByLevel возвращает приглашенных участника по уровням
// 1..maxDepth. Показываются только уровни, участвующие в начислениях.
func (d *Directory) ListDescendantsByLevel(chatID int64) (map[int][]models.Member, error) {
	member, found, err := d.store.GetByChatID(chatID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("участник с chatID %d не найден", chatID)
	}
	return d.store.DescendantsByLevel(member.ID, d.maxDepth)
}
