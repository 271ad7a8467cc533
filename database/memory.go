package database

import (
	"context"
	"sort"
	"sync"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// MemoryStore is an in-process Storage used in place of a database in tests
// and local previews. ReadErr and WriteErr, when set, are returned as storage
// failures from the matching operations.
type MemoryStore struct {
	mu       sync.Mutex
	content  []models.Content
	skills   []models.Skill
	messages []models.ContactMessage
	nextID   uint

	ReadErr  error
	WriteErr error
}

var _ Storage = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) GetContent(_ context.Context) ([]models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, errs.NewStorageError("find", "content", m.ReadErr)
	}
	return append([]models.Content{}, m.content...), nil
}

func (m *MemoryStore) GetSkills(_ context.Context) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, errs.NewStorageError("find", "skills", m.ReadErr)
	}
	skills := append([]models.Skill{}, m.skills...)
	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Order != skills[j].Order {
			return skills[i].Order < skills[j].Order
		}
		return skills[i].ID < skills[j].ID
	})
	return skills, nil
}

func (m *MemoryStore) SaveMessage(_ context.Context, message models.InsertContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return errs.NewStorageError("save", "contact message", m.WriteErr)
	}
	record := message.Record()
	record.ID = m.id()
	m.messages = append(m.messages, record)
	return nil
}

func (m *MemoryStore) SeedInitialData(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return errs.NewStorageError("seed", "content", m.WriteErr)
	}
	if len(m.content) == 0 {
		rows, err := contentRecords(DefaultContent())
		if err != nil {
			return err
		}
		m.addContent(rows)
	}
	if len(m.skills) == 0 {
		rows, err := skillRecords(DefaultSkills())
		if err != nil {
			return err
		}
		m.addSkills(rows)
	}
	return nil
}

// AddContent inserts rows directly, bypassing seeding.
func (m *MemoryStore) AddContent(content ...models.InsertContent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]models.Content, 0, len(content))
	for _, c := range content {
		rows = append(rows, c.Record())
	}
	m.addContent(rows)
}

// AddSkills inserts rows directly, in the given order.
func (m *MemoryStore) AddSkills(skills ...models.InsertSkill) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]models.Skill, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, s.Record())
	}
	m.addSkills(rows)
}

// Messages returns a copy of every saved contact message.
func (m *MemoryStore) Messages() []models.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ContactMessage{}, m.messages...)
}

func (m *MemoryStore) addContent(rows []models.Content) {
	for _, row := range rows {
		row.ID = m.id()
		m.content = append(m.content, row)
	}
}

func (m *MemoryStore) addSkills(rows []models.Skill) {
	for _, row := range rows {
		row.ID = m.id()
		m.skills = append(m.skills, row)
	}
}

func (m *MemoryStore) id() uint {
	m.nextID++
	return m.nextID
}
