package db

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/ummah/internal/model"
)

// MemoryStore is an in-process Store used by handler tests.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	users   map[int]*model.User
	days    map[int]map[string]*model.PrayerDay
	zakat   []model.ZakatRecord
	nextID  int
	nextRec int
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:   time.Now,
		users: map[int]*model.User{},
		days:  map[int]map[string]*model.PrayerDay{},
	}
}

func (m *MemoryStore) CreateUser(u model.NewUser) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.Username == u.Username {
			return 0, fmt.Errorf("create user: duplicate %q", u.Email)
		}
	}
	m.nextID++
	now := m.now()
	m.users[m.nextID] = &model.User{
		ID:                m.nextID,
		Username:          u.Username,
		Email:             u.Email,
		HashedPassword:    u.HashedPassword,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Language:          "en",
		CalculationMethod: "MWL",
		Madhab:            "hanafi",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return m.nextID, nil
}

func (m *MemoryStore) find(match func(*model.User) bool) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByEmail(email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *MemoryStore) GetUserByUsername(username string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Username == username })
}

func (m *MemoryStore) GetUserByID(id int) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.ID == id })
}

func (m *MemoryStore) update(id int, fn func(*model.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	return nil
}

func (m *MemoryStore) UpdateUserProfile(id int, p model.ProfileUpdate) error {
	return m.update(id, func(u *model.User) {
		u.FirstName = p.FirstName
		u.LastName = p.LastName
		u.Language = p.Language
		u.CalculationMethod = p.CalculationMethod
		u.Madhab = p.Madhab
		u.City = p.City
		u.Country = p.Country
		u.Latitude = p.Latitude
		u.Longitude = p.Longitude
		u.UpdatedAt = m.now()
	})
}

func (m *MemoryStore) UpdateUserAvatar(id int, url string) error {
	return m.update(id, func(u *model.User) { u.AvatarURL = &url })
}

// SetAdmin has no Store counterpart; admins are granted directly in the database.
func (m *MemoryStore) SetAdmin(id int, admin bool) error {
	return m.update(id, func(u *model.User) { u.IsAdmin = admin })
}

func (m *MemoryStore) RecordFailedLogin(id int, at time.Time) (int, *time.Time, error) {
	var attempts int
	var lockUntil *time.Time
	err := m.update(id, func(u *model.User) {
		u.LoginAttempts, u.LockUntil = u.FailedLogin(at)
		attempts, lockUntil = u.LoginAttempts, u.LockUntil
	})
	return attempts, lockUntil, err
}

func (m *MemoryStore) RecordLogin(id int, at time.Time) error {
	return m.update(id, func(u *model.User) {
		u.LoginAttempts = 0
		u.LockUntil = nil
		u.LastLogin = &at
	})
}

func (m *MemoryStore) TrackPrayer(userID int, day time.Time, prayer string, completed bool) (model.PrayerDay, error) {
	if !prayerColumns[prayer] {
		return model.PrayerDay{}, fmt.Errorf("track prayer: unknown prayer %q", prayer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := day.Format("2006-01-02")
	if m.days[userID] == nil {
		m.days[userID] = map[string]*model.PrayerDay{}
	}
	d, ok := m.days[userID][key]
	if !ok {
		y, mo, dd := day.Date()
		d = &model.PrayerDay{UserID: userID, Day: time.Date(y, mo, dd, 0, 0, 0, 0, time.UTC)}
		m.days[userID][key] = d
	}
	switch prayer {
	case "fajr":
		d.Fajr = completed
	case "dhuhr":
		d.Dhuhr = completed
	case "asr":
		d.Asr = completed
	case "maghrib":
		d.Maghrib = completed
	case "isha":
		d.Isha = completed
	}
	d.UpdatedAt = m.now()
	return *d, nil
}

func (m *MemoryStore) ListPrayerDays(userID int, since time.Time) ([]model.PrayerDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := since.Format("2006-01-02")
	out := []model.PrayerDay{}
	for key, d := range m.days[userID] {
		if key >= cutoff {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out, nil
}

func (m *MemoryStore) SaveZakatRecord(rec model.ZakatRecord) (model.ZakatRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRec++
	rec.ID = m.nextRec
	rec.CreatedAt = m.now()
	m.zakat = append(m.zakat, rec)
	return rec, nil
}

func (m *MemoryStore) ListZakatRecords(userID int, limit int) ([]model.ZakatRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ZakatRecord{}
	for i := len(m.zakat) - 1; i >= 0 && len(out) < limit; i-- {
		if m.zakat[i].UserID == userID {
			out = append(out, m.zakat[i])
		}
	}
	return out, nil
}
