package repositories

import (
	"sort"
	"strings"
	"sync"

	"studentreg/internal/models"

	"github.com/google/uuid"
)

// DefaultDisplayIDAttempts bounds display ID regeneration on collision.
const DefaultDisplayIDAttempts = 5

type studentEntry struct {
	student models.Student
	seq     uint64
}

// MemoryStudentRepository is an in-memory implementation of StudentRepository.
// Records are lost when the process exits.
type MemoryStudentRepository struct {
	mu          sync.RWMutex
	students    map[string]studentEntry
	byEmail     map[string]string // lower-cased email -> id
	byDisplayID map[string]string
	seq         uint64

	newID       func() string
	displayIDs  *DisplayIDGenerator
	maxAttempts int
}

// MemoryOption configures a MemoryStudentRepository.
type MemoryOption func(*MemoryStudentRepository)

// WithDisplayIDGenerator replaces the display ID generator.
func WithDisplayIDGenerator(g *DisplayIDGenerator) MemoryOption {
	return func(r *MemoryStudentRepository) { r.displayIDs = g }
}

// WithDisplayIDAttempts sets how many display IDs are tried before Create fails.
func WithDisplayIDAttempts(n int) MemoryOption {
	return func(r *MemoryStudentRepository) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithIDGenerator replaces the record ID generator.
func WithIDGenerator(f func() string) MemoryOption {
	return func(r *MemoryStudentRepository) { r.newID = f }
}

// NewMemoryStudentRepository creates a new instance of MemoryStudentRepository.
func NewMemoryStudentRepository(opts ...MemoryOption) *MemoryStudentRepository {
	r := &MemoryStudentRepository{
		students:    make(map[string]studentEntry),
		byEmail:     make(map[string]string),
		byDisplayID: make(map[string]string),
		newID:       uuid.NewString,
		displayIDs:  NewDisplayIDGenerator(),
		maxAttempts: DefaultDisplayIDAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

// List returns all students in creation order.
func (r *MemoryStudentRepository) List() []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]studentEntry, 0, len(r.students))
	for _, e := range r.students {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	students := make([]models.Student, len(entries))
	for i, e := range entries {
		students[i] = e.student
	}
	return students
}

// Get returns a student by its ID.
func (r *MemoryStudentRepository) Get(id string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.students[id]
	return e.student, ok
}

// GetByEmail returns the student whose email matches, ignoring case.
func (r *MemoryStudentRepository) GetByEmail(email string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return models.Student{}, false
	}
	return r.students[id].student, true
}

// Create inserts a new student with a fresh ID and display ID.
func (r *MemoryStudentRepository) Create(input models.StudentInput) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	displayID, err := r.nextDisplayID()
	if err != nil {
		return models.Student{}, err
	}

	id := r.newID()
	for {
		if _, taken := r.students[id]; !taken {
			break
		}
		id = r.newID()
	}

	student := models.Student{
		ID:             id,
		DisplayID:      displayID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Course:         input.Course,
		EnrollmentDate: input.EnrollmentDate,
	}
	r.seq++
	r.students[id] = studentEntry{student: student, seq: r.seq}
	r.byEmail[emailKey(student.Email)] = id
	r.byDisplayID[displayID] = id
	return student, nil
}

func (r *MemoryStudentRepository) nextDisplayID() (string, error) {
	for i := 0; i < r.maxAttempts; i++ {
		candidate := r.displayIDs.Next()
		if _, taken := r.byDisplayID[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", ErrDisplayIDExhausted
}

// Update merges the patch onto an existing student. ID and display ID never change.
func (r *MemoryStudentRepository) Update(id string, patch models.StudentPatch) (models.Student, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.students[id]
	if !ok {
		return models.Student{}, false
	}

	updated := patch.Apply(e.student)
	updated.ID = e.student.ID
	updated.DisplayID = e.student.DisplayID

	if oldKey, newKey := emailKey(e.student.Email), emailKey(updated.Email); oldKey != newKey {
		if r.byEmail[oldKey] == id {
			delete(r.byEmail, oldKey)
		}
		r.byEmail[newKey] = id
	}

	e.student = updated
	r.students[id] = e
	return updated, true
}

// Delete removes a student by its ID and reports whether it existed.
func (r *MemoryStudentRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.students[id]
	if !ok {
		return false
	}
	delete(r.students, id)
	if key := emailKey(e.student.Email); r.byEmail[key] == id {
		delete(r.byEmail, key)
	}
	delete(r.byDisplayID, e.student.DisplayID)
	return true
}

// Count returns the number of stored students.
func (r *MemoryStudentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}
