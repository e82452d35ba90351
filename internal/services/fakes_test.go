package services

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/Gopher0727/DailyQ/internal/models"
)

// In-memory fakes for the store interfaces. They emulate the two gorm
// behaviors the services depend on: gorm.ErrRecordNotFound on missing rows
// and gorm.ErrDuplicatedKey on unique-index violations.

// --- user store ---

type fakeUserStore struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (f *fakeUserStore) Create(user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) Update(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[user.ID] = user
	return nil
}

// --- question store ---

type fakeQuestionStore struct {
	questions []uint                           // catalog IDs, ordered
	daily     map[string]*models.DailyQuestion // keyed by question_date
	nextID    uint

	failCreate error // forced error for the next CreateDaily
	missOnce   bool  // report not-found on the next GetDailyByDate, then behave normally
}

func newFakeQuestionStore(questionIDs ...uint) *fakeQuestionStore {
	return &fakeQuestionStore{
		questions: questionIDs,
		daily:     make(map[string]*models.DailyQuestion),
		nextID:    1,
	}
}

func (f *fakeQuestionStore) GetDailyByDate(date string) (*models.DailyQuestion, error) {
	if f.missOnce {
		f.missOnce = false
		return nil, gorm.ErrRecordNotFound
	}
	if dq, ok := f.daily[date]; ok {
		return dq, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionStore) GetDailyWithQuestion(date string) (*models.DailyQuestion, error) {
	dq, err := f.GetDailyByDate(date)
	if err != nil {
		return nil, err
	}
	cp := *dq
	cp.Question = &models.Question{ID: dq.QuestionID, Content: "q", Category: "일상"}
	return &cp, nil
}

func (f *fakeQuestionStore) RecentQuestionIDs(fromDate string) ([]uint, error) {
	var ids []uint
	for date, dq := range f.daily {
		if date >= fromDate {
			ids = append(ids, dq.QuestionID)
		}
	}
	return ids, nil
}

func (f *fakeQuestionStore) ListQuestionIDsExcluding(exclude []uint) ([]uint, error) {
	excluded := make(map[uint]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var ids []uint
	for _, id := range f.questions {
		if !excluded[id] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeQuestionStore) FirstQuestionID() (uint, error) {
	if len(f.questions) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return f.questions[0], nil
}

func (f *fakeQuestionStore) CreateDaily(dq *models.DailyQuestion) error {
	if f.failCreate != nil {
		err := f.failCreate
		f.failCreate = nil
		return err
	}
	if _, ok := f.daily[dq.QuestionDate]; ok {
		return gorm.ErrDuplicatedKey
	}
	dq.ID = f.nextID
	f.nextID++
	f.daily[dq.QuestionDate] = dq
	return nil
}

// --- group store ---

type memberKey struct{ groupID, userID uint }

type fakeGroupStore struct {
	groups  map[uint]*models.Group
	members map[memberKey]*models.GroupMember
	nextID  uint

	failCount     error // forced error for CountMembers
	failAddMember error // forced error for the next AddMember
	failNicknames error // forced error for MemberNicknames
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{
		groups:  make(map[uint]*models.Group),
		members: make(map[memberKey]*models.GroupMember),
		nextID:  1,
	}
}

func (f *fakeGroupStore) CreateWithOwner(group *models.Group) error {
	for _, g := range f.groups {
		if g.InviteCode == group.InviteCode {
			return gorm.ErrDuplicatedKey
		}
	}
	group.ID = f.nextID
	f.nextID++
	f.groups[group.ID] = group
	f.members[memberKey{group.ID, group.OwnerID}] = &models.GroupMember{
		ID:      f.nextID,
		GroupID: group.ID,
		UserID:  group.OwnerID,
	}
	f.nextID++
	return nil
}

func (f *fakeGroupStore) GetByID(id uint) (*models.Group, error) {
	if g, ok := f.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroupStore) GetByInviteCode(code string) (*models.Group, error) {
	for _, g := range f.groups {
		if g.InviteCode == code {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroupStore) UpdateName(id uint, name string) error {
	g, ok := f.groups[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	g.Name = name
	return nil
}

func (f *fakeGroupStore) DeleteWithMembers(id uint) error {
	for key := range f.members {
		if key.groupID == id {
			delete(f.members, key)
		}
	}
	delete(f.groups, id)
	return nil
}

func (f *fakeGroupStore) GetUserGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	for key := range f.members {
		if key.userID == userID {
			if g, ok := f.groups[key.groupID]; ok {
				groups = append(groups, *g)
			}
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func (f *fakeGroupStore) AddMember(member *models.GroupMember) error {
	if f.failAddMember != nil {
		err := f.failAddMember
		f.failAddMember = nil
		return err
	}
	key := memberKey{member.GroupID, member.UserID}
	if _, ok := f.members[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	member.ID = f.nextID
	f.nextID++
	f.members[key] = member
	return nil
}

func (f *fakeGroupStore) GetMember(groupID, userID uint) (*models.GroupMember, error) {
	if m, ok := f.members[memberKey{groupID, userID}]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroupStore) RemoveMember(groupID, userID uint) error {
	delete(f.members, memberKey{groupID, userID})
	return nil
}

func (f *fakeGroupStore) CountMembers(groupID uint) (int64, error) {
	if f.failCount != nil {
		return 0, f.failCount
	}
	var count int64
	for key := range f.members {
		if key.groupID == groupID {
			count++
		}
	}
	return count, nil
}

func (f *fakeGroupStore) ListMembers(groupID uint) ([]models.GroupMember, error) {
	var members []models.GroupMember
	for key, m := range f.members {
		if key.groupID == groupID {
			members = append(members, *m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (f *fakeGroupStore) MemberUserIDs(groupIDs []uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, gid := range groupIDs {
		for key := range f.members {
			if key.groupID == gid && !seen[key.userID] {
				seen[key.userID] = true
				ids = append(ids, key.userID)
			}
		}
	}
	return ids, nil
}

func (f *fakeGroupStore) MemberNicknames(groupIDs []uint) (map[uint]string, error) {
	if f.failNicknames != nil {
		return nil, f.failNicknames
	}
	nicknames := make(map[uint]string)
	for _, gid := range groupIDs {
		for key, m := range f.members {
			if key.groupID == gid && m.Nickname != "" {
				if _, ok := nicknames[key.userID]; !ok {
					nicknames[key.userID] = m.Nickname
				}
			}
		}
	}
	return nicknames, nil
}

// --- answer store ---

type answerKey struct{ dailyQuestionID, userID uint }

type fakeAnswerStore struct {
	answers map[answerKey]*models.Answer
	order   []answerKey // insertion order, newest last
	nextID  uint

	failCreate error // forced error for the next Create
	missOnce   bool  // next GetByUserAndDaily misses, simulating a lost race
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{
		answers: make(map[answerKey]*models.Answer),
		nextID:  1,
	}
}

func (f *fakeAnswerStore) GetByUserAndDaily(dailyQuestionID, userID uint) (*models.Answer, error) {
	if f.missOnce {
		f.missOnce = false
		return nil, gorm.ErrRecordNotFound
	}
	if a, ok := f.answers[answerKey{dailyQuestionID, userID}]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAnswerStore) Create(answer *models.Answer) error {
	if f.failCreate != nil {
		err := f.failCreate
		f.failCreate = nil
		return err
	}
	key := answerKey{answer.DailyQuestionID, answer.UserID}
	if _, ok := f.answers[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	answer.ID = f.nextID
	f.nextID++
	f.answers[key] = answer
	f.order = append(f.order, key)
	return nil
}

func (f *fakeAnswerStore) UpdateContent(dailyQuestionID, userID uint, content string) error {
	a, ok := f.answers[answerKey{dailyQuestionID, userID}]
	if !ok {
		return nil
	}
	a.Content = content
	return nil
}

func (f *fakeAnswerStore) ListForUsers(dailyQuestionID uint, userIDs []uint, excludeUserID uint) ([]models.Answer, error) {
	allowed := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = true
	}
	var answers []models.Answer
	for _, key := range f.order {
		a := f.answers[key]
		if a == nil || a.DailyQuestionID != dailyQuestionID {
			continue
		}
		if !allowed[a.UserID] || a.UserID == excludeUserID {
			continue
		}
		answers = append(answers, *a)
	}
	return answers, nil
}

func (f *fakeAnswerStore) ListByUser(userID uint, limit int) ([]models.Answer, error) {
	var answers []models.Answer
	// newest first: walk insertion order backwards
	for i := len(f.order) - 1; i >= 0 && len(answers) < limit; i-- {
		a := f.answers[f.order[i]]
		if a != nil && a.UserID == userID {
			answers = append(answers, *a)
		}
	}
	return answers, nil
}

// --- member count cache ---

type fakeCountCache struct {
	counts map[uint]int64
}

func newFakeCountCache() *fakeCountCache {
	return &fakeCountCache{counts: make(map[uint]int64)}
}

func (f *fakeCountCache) GetMemberCount(_ context.Context, groupID uint) (int64, bool) {
	count, ok := f.counts[groupID]
	return count, ok
}

func (f *fakeCountCache) SetMemberCount(_ context.Context, groupID uint, count int64) {
	f.counts[groupID] = count
}

func (f *fakeCountCache) InvalidateMemberCount(_ context.Context, groupID uint) {
	delete(f.counts, groupID)
}

var errBackend = errors.New("backend unavailable")
