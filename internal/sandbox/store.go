package sandbox

import (
	"sync"

	"recordboard/internal/model"
)

// Store is an in-memory record collection with server-assigned ids.
type Store struct {
	mu      sync.RWMutex
	records []model.Record
	nextID  int
}

// NewStore seeds a store. The next id follows the highest seeded id.
func NewStore(seed []model.Record) *Store {
	s := &Store{
		records: append([]model.Record(nil), seed...),
		nextID:  1,
	}
	for _, r := range seed {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	return s
}

func (s *Store) List() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Record{}, s.records...)
}

func (s *Store) Create(d model.Draft) model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := model.Record{ID: s.nextID, Name: d.Name, Email: d.Email}
	s.nextID++
	s.records = append(s.records, rec)
	return rec
}

func (s *Store) Update(id int, d model.Draft) (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records[i] = model.Record{ID: id, Name: d.Name, Email: d.Email}
			return s.records[i], true
		}
	}
	return model.Record{}, false
}

func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// DemoUsers mirrors the first entries of the public demo collection.
func DemoUsers() []model.Record {
	return []model.Record{
		{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
		{ID: 3, Name: "Clementine Bauch", Email: "Nathan@yesenia.net"},
		{ID: 4, Name: "Patricia Lebsack", Email: "Julianne.OConner@kory.org"},
		{ID: 5, Name: "Chelsey Dietrich", Email: "Lucio_Hettinger@annie.ca"},
		{ID: 6, Name: "Mrs. Dennis Schulist", Email: "Karley_Dach@jasper.info"},
		{ID: 7, Name: "Kurtis Weissnat", Email: "Telly.Hoeger@billy.biz"},
		{ID: 8, Name: "Nicholas Runolfsdottir V", Email: "Sherwood@rosamond.me"},
		{ID: 9, Name: "Glenna Reichert", Email: "Chaim_McDermott@dana.io"},
		{ID: 10, Name: "Clementina DuBuque", Email: "Rey.Padberg@karina.biz"},
	}
}
