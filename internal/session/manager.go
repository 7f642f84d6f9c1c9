package session

import (
	"log"
	"sync"

	"refbot/internal/constants"
)

// OrderDraft — временные данные заказа, накапливаемые диалогом оформления.
// Живет только пока идет диалог: создается при входе, удаляется при
// завершении или отмене. На сессию — не более одного черновика.
type OrderDraft struct {
	ChatID   int64
	Name     string
	Username string
	Phone    string
	Email    string
}

// SessionManager управляет состояниями пользователей и черновиками заказов.
// SessionManager manages user states and order drafts.
type SessionManager struct {
	userStates     map[int64]string // Ключ: chatID, значение: текущее состояние (например, constants.STATE_ORDER_EMAIL)
	userStateMutex sync.RWMutex

	drafts      map[int64]OrderDraft // Ключ: chatID
	draftsMutex sync.RWMutex

	// Карта замков, по одному на chatID: события одной сессии обрабатываются
	// строго последовательно, разные сессии — параллельно.
	chatLocks      map[int64]*sync.Mutex
	chatLocksMutex sync.Mutex
}

// NewSessionManager создает и возвращает новый экземпляр SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		userStates: make(map[int64]string),
		drafts:     make(map[int64]OrderDraft),
		chatLocks:  make(map[int64]*sync.Mutex),
	}
}

// --- Сериализация по сессии / Per-session serialization ---

// lockForChat получает или создает замок для конкретного chatID.
func (sm *SessionManager) lockForChat(chatID int64) *sync.Mutex {
	sm.chatLocksMutex.Lock()
	defer sm.chatLocksMutex.Unlock()
	lock, exists := sm.chatLocks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		sm.chatLocks[chatID] = lock
	}
	return lock
}

// LockChat захватывает замок сессии. Каждое входящее событие обрабатывается
// под этим замком, поэтому два события одного чата никогда не выполняются
// одновременно.
func (sm *SessionManager) LockChat(chatID int64) {
	sm.lockForChat(chatID).Lock()
}

// UnlockChat освобождает замок сессии.
func (sm *SessionManager) UnlockChat(chatID int64) {
	sm.lockForChat(chatID).Unlock()
}

// --- Управление состоянием пользователя / User state management ---

// GetState возвращает текущее состояние пользователя.
// Если состояние не установлено, возвращает STATE_IDLE.
func (sm *SessionManager) GetState(chatID int64) string {
	sm.userStateMutex.RLock()
	defer sm.userStateMutex.RUnlock()
	state, ok := sm.userStates[chatID]
	if !ok {
		return constants.STATE_IDLE
	}
	return state
}

// SetState устанавливает новое состояние для пользователя.
// Активно ровно одно состояние: вход в новое состояние отменяет ожидания старого.
func (sm *SessionManager) SetState(chatID int64, state string) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()
	sm.userStates[chatID] = state
	log.Printf("SessionManager.SetState: состояние для chatID %d установлено: %s", chatID, state)
}

// ClearState сбрасывает состояние пользователя к STATE_IDLE.
func (sm *SessionManager) ClearState(chatID int64) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()
	sm.userStates[chatID] = constants.STATE_IDLE
	log.Printf("SessionManager.ClearState: состояние для chatID %d сброшено в IDLE.", chatID)
}

// InConversation сообщает, находится ли сессия внутри активного диалога.
func (sm *SessionManager) InConversation(chatID int64) bool {
	return sm.GetState(chatID) != constants.STATE_IDLE
}

// --- Управление черновиками заказов / Order draft management ---

// GetDraft возвращает черновик заказа сессии и признак его существования.
// В отличие от состояния, отсутствующий черновик не создается неявно:
// его отсутствие — значимый сигнал рассинхронизации для движка диалога.
func (sm *SessionManager) GetDraft(chatID int64) (OrderDraft, bool) {
	sm.draftsMutex.RLock()
	defer sm.draftsMutex.RUnlock()
	draft, exists := sm.drafts[chatID]
	return draft, exists
}

// PutDraft создает или обновляет черновик заказа сессии.
func (sm *SessionManager) PutDraft(chatID int64, draft OrderDraft) {
	sm.draftsMutex.Lock()
	defer sm.draftsMutex.Unlock()
	sm.drafts[chatID] = draft
}

// ClearDraft удаляет черновик заказа сессии.
func (sm *SessionManager) ClearDraft(chatID int64) {
	sm.draftsMutex.Lock()
	defer sm.draftsMutex.Unlock()
	delete(sm.drafts, chatID)
	log.Printf("SessionManager.ClearDraft: черновик заказа для chatID %d удален.", chatID)
}
