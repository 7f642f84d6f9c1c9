package referral

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refbot/internal/models"
	"refbot/internal/utils"
)

func init() {
	if err := utils.InitInviteCodeKey("directory-test-secret"); err != nil {
		panic(err)
	}
}

// fakeMemberStore — индекс участников в памяти для проверки логики
// справочника без базы данных.
type fakeMemberStore struct {
	byID     map[int64]*models.Member
	byChatID map[int64]*models.Member
	byCode   map[string]*models.Member
	nextID   int64

	insertErr error
	creditErr error
	// creditEvents хранит число начислений на каждого участника,
	// чтобы проверять "ровно один раз на событие".
	creditEvents map[int64]int
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{
		byID:         make(map[int64]*models.Member),
		byChatID:     make(map[int64]*models.Member),
		byCode:       make(map[string]*models.Member),
		creditEvents: make(map[int64]int),
	}
}

func (s *fakeMemberStore) GetByChatID(chatID int64) (models.Member, bool, error) {
	if m, ok := s.byChatID[chatID]; ok {
		return *m, true, nil
	}
	return models.Member{}, false, nil
}

func (s *fakeMemberStore) GetByInviteCode(code string) (models.Member, bool, error) {
	if m, ok := s.byCode[code]; ok {
		return *m, true, nil
	}
	return models.Member{}, false, nil
}

func (s *fakeMemberStore) Insert(m models.Member) (models.Member, error) {
	if s.insertErr != nil {
		return models.Member{}, s.insertErr
	}
	s.nextID++
	m.ID = s.nextID
	stored := m
	s.byID[m.ID] = &stored
	s.byChatID[m.ChatID] = &stored
	s.byCode[m.InviteCode] = &stored
	return stored, nil
}

func (s *fakeMemberStore) CreditAncestors(memberID int64, amount float64, maxLevels int) (int, error) {
	if s.creditErr != nil {
		return 0, s.creditErr
	}
	credited := 0
	current := s.byID[memberID]
	for level := 0; level < maxLevels && current != nil && current.ParentID.Valid; level++ {
		parent := s.byID[current.ParentID.Int64]
		if parent == nil {
			break
		}
		parent.Balance += amount
		s.creditEvents[parent.ID]++
		credited++
		current = parent
	}
	return credited, nil
}

func (s *fakeMemberStore) DescendantsByLevel(memberID int64, maxLevels int) (map[int][]models.Member, error) {
	result := make(map[int][]models.Member)
	frontier := []int64{memberID}
	for level := 1; level <= maxLevels; level++ {
		var next []int64
		for _, m := range s.byID {
			for _, parentID := range frontier {
				if m.ParentID.Valid && m.ParentID.Int64 == parentID {
					result[level] = append(result[level], *m)
					next = append(next, m.ID)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return result, nil
}

// registerChain регистрирует цепочку участников, где каждый следующий
// приходит по коду предыдущего. Возвращает участников в порядке регистрации.
func registerChain(t *testing.T, d *Directory, length int) []models.Member {
	t.Helper()
	var members []models.Member
	inviteCode := ""
	for i := 0; i < length; i++ {
		m, created, err := d.Register(int64(1000+i), fmt.Sprintf("Участник %d", i), "", inviteCode)
		require.NoError(t, err)
		require.True(t, created)
		members = append(members, m)
		inviteCode = m.InviteCode
	}
	return members
}

func TestRegister_RootWithoutCode(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	m, created, err := d.Register(1, "Корень", "root_user", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, m.ParentID.Valid)
	assert.Equal(t, 0, m.Depth)
	assert.NotEmpty(t, m.InviteCode)
	assert.Equal(t, "root_user", m.Username.String)
}

func TestRegister_Idempotent(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	first, created, err := d.Register(1, "Иван", "", "")
	require.NoError(t, err)
	require.True(t, created)

	// Повторный /start не создает дубликата и не перевыдает код.
	second, created, err := d.Register(1, "Иван Другой", "", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.InviteCode, second.InviteCode)
	assert.Len(t, store.byID, 1)
}

func TestRegister_UnknownCodeDegradesToRoot(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	m, created, err := d.Register(1, "Иван", "", "no-such-code")
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, m.ParentID.Valid)
	assert.Equal(t, 0, m.Depth)
}

func TestRegister_ParentAndDepth(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	members := registerChain(t, d, 3)

	assert.Equal(t, 0, members[0].Depth)
	assert.Equal(t, 1, members[1].Depth)
	assert.Equal(t, 2, members[2].Depth)
	assert.Equal(t, members[0].ID, members[1].ParentID.Int64)
	assert.Equal(t, members[1].ID, members[2].ParentID.Int64)
}

func TestRegister_CreditsAtMostThreeNearestAncestors(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	// Цепочка из шести: корень A <- B <- C <- D <- E <- F.
	members := registerChain(t, d, 6)

	// За F (шестого) бонус получают только E, D и C — три ближайших.
	a := store.byID[members[0].ID]
	b := store.byID[members[1].ID]
	c := store.byID[members[2].ID]
	e := store.byID[members[4].ID]

	// A получил бонусы за B, C и D; регистрация E и F до него не дотянулась.
	assert.Equal(t, 300.0, a.Balance)
	assert.Equal(t, 3, store.creditEvents[a.ID])
	// B: за C, D, E.
	assert.Equal(t, 300.0, b.Balance)
	// C: за D, E, F.
	assert.Equal(t, 300.0, c.Balance)
	// E: только за F.
	assert.Equal(t, 100.0, e.Balance)
	assert.Equal(t, 1, store.creditEvents[e.ID])
}

func TestRegister_NoCreditForRootless(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	_, _, err := d.Register(1, "Одиночка", "", "")
	require.NoError(t, err)
	assert.Empty(t, store.creditEvents)
}

func TestRegister_CreditFailureDoesNotRollBack(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	parent, _, err := d.Register(1, "Родитель", "", "")
	require.NoError(t, err)

	store.creditErr = fmt.Errorf("база недоступна")
	child, created, err := d.Register(2, "Ребенок", "", parent.InviteCode)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, parent.ID, child.ParentID.Int64)
	// Ошибка начисления (в том числе ошибка подсчета затронутых строк)
	// не отменяет регистрацию и не поднимается к пользователю.
	assert.Zero(t, store.byID[parent.ID].Balance)
}

func TestGetBalance(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	members := registerChain(t, d, 2)

	balance, err := d.GetBalance(members[0].ChatID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	_, err = d.GetBalance(999999)
	assert.Error(t, err)
}

func TestListDescendantsByLevel(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	// Корень, двое детей первого уровня, внук и правнук по одной ветке,
	// праправнук за пределами видимости.
	root, _, err := d.Register(1, "Корень", "", "")
	require.NoError(t, err)
	_, _, err = d.Register(2, "Ребенок А", "", root.InviteCode)
	require.NoError(t, err)
	childB, _, err := d.Register(3, "Ребенок Б", "", root.InviteCode)
	require.NoError(t, err)
	grand, _, err := d.Register(4, "Внук", "", childB.InviteCode)
	require.NoError(t, err)
	great, _, err := d.Register(5, "Правнук", "", grand.InviteCode)
	require.NoError(t, err)
	_, _, err = d.Register(6, "Праправнук", "", great.InviteCode)
	require.NoError(t, err)

	levels, err := d.ListDescendantsByLevel(root.ChatID)
	require.NoError(t, err)

	assert.Len(t, levels[1], 2)
	assert.Len(t, levels[2], 1)
	assert.Len(t, levels[3], 1)
	// Четвертый уровень не показывается: он не участвует в начислениях.
	assert.NotContains(t, levels, 4)

	_, err = d.ListDescendantsByLevel(999999)
	assert.Error(t, err)
}

func TestResolveInviteCode(t *testing.T) {
	store := newFakeMemberStore()
	d := NewDirectory(store, 100, 3)

	m, _, err := d.Register(1, "Иван", "", "")
	require.NoError(t, err)

	owner, found, err := d.ResolveInviteCode(m.InviteCode)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, m.ID, owner.ID)

	_, found, err = d.ResolveInviteCode("missing")
	require.NoError(t, err)
	assert.False(t, found)
}
