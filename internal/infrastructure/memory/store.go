// Package memory is an in-process implementation of the repository ports, used by
// STORE_DRIVER=memory and by tests. Reference checks mirror the PostgreSQL foreign keys.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

// Store holds every table behind one lock.
type Store struct {
	mu        sync.RWMutex
	masters   map[entity.MasterKind]map[string]entity.MasterRecord
	items     map[string]entity.Item
	ledgers   map[string]entity.Ledger
	groups    []entity.Group
	registers []entity.RegisterEntry
	users     map[string]entity.User
}

// New returns an empty store.
func New() *Store {
	s := &Store{
		masters: map[entity.MasterKind]map[string]entity.MasterRecord{},
		items:   map[string]entity.Item{},
		ledgers: map[string]entity.Ledger{},
		users:   map[string]entity.User{},
	}
	for _, k := range entity.MasterKinds() {
		s.masters[k] = map[string]entity.MasterRecord{}
	}
	return s
}

// Masters returns the master repository view.
func (s *Store) Masters() *MasterRepo { return &MasterRepo{s: s} }

// Items returns the item repository view.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Ledgers returns the ledger repository view.
func (s *Store) Ledgers() *LedgerRepo { return &LedgerRepo{s: s} }

// Groups returns the group repository view.
func (s *Store) Groups() *GroupRepo { return &GroupRepo{s: s} }

// Registers returns the register repository view.
func (s *Store) Registers() *RegisterRepo { return &RegisterRepo{s: s} }

// Users returns the user repository view.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// matches applies the shared search rule: code prefix or name substring, case-insensitive.
func matches(code, name, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(code), search) || strings.Contains(strings.ToLower(name), search)
}

// page slices a sorted result set.
func page[T any](list []T, f repository.MasterFilter) []T {
	if f.Offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return list[f.Offset:end]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
