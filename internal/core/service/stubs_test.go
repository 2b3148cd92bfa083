package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = cloneUser(u)
		}
	}
	return result, nil
}

type stubSweetRepo struct {
	mu     sync.Mutex
	seq    int
	sweets map[string]*domain.Sweet // by id
}

func newStubSweetRepo() *stubSweetRepo {
	return &stubSweetRepo{sweets: make(map[string]*domain.Sweet)}
}

func cloneSweet(s *domain.Sweet) *domain.Sweet {
	clone := *s
	return &clone
}

func (r *stubSweetRepo) Create(_ context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sweets {
		if strings.EqualFold(existing.Name, s.Name) {
			return nil, domain.ErrDuplicateName
		}
	}
	r.seq++
	clone := cloneSweet(s)
	clone.ID = fmt.Sprintf("sweet_%d", r.seq)
	r.sweets[clone.ID] = clone
	return cloneSweet(clone), nil
}

func (r *stubSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sweets[id]; ok {
		return cloneSweet(s), nil
	}
	return nil, domain.ErrSweetNotFound
}

func (r *stubSweetRepo) FindByName(_ context.Context, name string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sweets {
		if strings.EqualFold(s.Name, name) {
			return cloneSweet(s), nil
		}
	}
	return nil, domain.ErrSweetNotFound
}

func (r *stubSweetRepo) sorted() []*domain.Sweet {
	all := make([]*domain.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		all = append(all, cloneSweet(s))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func (r *stubSweetRepo) List(_ context.Context, page, limit int) ([]*domain.Sweet, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted()
	total := int64(len(all))

	skip := (page - 1) * limit
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *stubSweetRepo) Search(_ context.Context, f ports.SearchSweetsFilter) ([]*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Sweet
	for _, s := range r.sorted() {
		if f.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Category != "" && string(s.Category) != f.Category {
			continue
		}
		if f.HasMinPrice && s.Price < f.MinPrice {
			continue
		}
		if f.HasMaxPrice && s.Price > f.MaxPrice {
			continue
		}
		matched = append(matched, s)
	}
	return matched, nil
}

func (r *stubSweetRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			s.Name = v.(string)
		case "category":
			s.Category = domain.Category(v.(string))
		case "price":
			s.Price = v.(float64)
		case "quantity":
			s.Quantity = v.(int)
		case "description":
			s.Description = v.(string)
		}
	}
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	return nil
}

func (r *stubSweetRepo) DecrementQuantity(_ context.Context, id string, qty int) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok || s.Quantity < qty {
		// Mirrors the Mongo guard: no document matches the conditional filter.
		return nil, domain.ErrSweetNotFound
	}
	s.Quantity -= qty
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) IncrementQuantity(_ context.Context, id string, qty int) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	s.Quantity += qty
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) FindLowStock(_ context.Context, threshold int) ([]*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Sweet
	for _, s := range r.sweets {
		if s.Quantity <= threshold {
			matched = append(matched, cloneSweet(s))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Quantity < matched[j].Quantity
	})
	return matched, nil
}
