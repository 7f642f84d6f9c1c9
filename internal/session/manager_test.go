package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"refbot/internal/constants"
)

func TestSessionManager_StateDefaultsToIdle(t *testing.T) {
	sm := NewSessionManager()
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(1))
	assert.False(t, sm.InConversation(1))

	sm.SetState(1, constants.STATE_ORDER_PHONE)
	assert.Equal(t, constants.STATE_ORDER_PHONE, sm.GetState(1))
	assert.True(t, sm.InConversation(1))

	sm.ClearState(1)
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(1))
}

func TestSessionManager_DraftLifecycle(t *testing.T) {
	sm := NewSessionManager()

	_, exists := sm.GetDraft(1)
	assert.False(t, exists)

	sm.PutDraft(1, OrderDraft{ChatID: 1, Name: "Иван"})
	draft, exists := sm.GetDraft(1)
	assert.True(t, exists)
	assert.Equal(t, "Иван", draft.Name)

	sm.ClearDraft(1)
	_, exists = sm.GetDraft(1)
	assert.False(t, exists)
}

func TestSessionManager_PerChatLockSerializes(t *testing.T) {
	sm := NewSessionManager()

	const events = 100
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sm.LockChat(42)
			defer sm.UnlockChat(42)
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, events, counter)
}

func TestSessionManager_IndependentChats(t *testing.T) {
	sm := NewSessionManager()
	sm.SetState(1, constants.STATE_ORDER_EMAIL)
	sm.PutDraft(1, OrderDraft{ChatID: 1})

	assert.Equal(t, constants.STATE_IDLE, sm.GetState(2))
	_, exists := sm.GetDraft(2)
	assert.False(t, exists)
}
