package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*domain.User
	favorites map[uuid.UUID]map[uuid.UUID]bool
	following map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[uuid.UUID]*domain.User),
		favorites: make(map[uuid.UUID]map[uuid.UUID]bool),
		following: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return nil
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	cp.RefreshToken = existing.RefreshToken
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.RefreshToken = token
	}
	return nil
}

func (r *fakeUserRepo) AddFavorite(ctx context.Context, userID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[uuid.UUID]bool)
	}
	r.favorites[userID][jobID] = true
	return nil
}

func (r *fakeUserRepo) RemoveFavorite(ctx context.Context, userID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.favorites[userID], jobID)
	return nil
}

func (r *fakeUserRepo) IsFavorite(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.favorites[userID][jobID], nil
}

func (r *fakeUserRepo) CountFavorites(ctx context.Context, jobID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, jobs := range r.favorites {
		if jobs[jobID] {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) Follow(ctx context.Context, userID, targetID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.following[userID] == nil {
		r.following[userID] = make(map[uuid.UUID]bool)
	}
	r.following[userID][targetID] = true
	return nil
}

func (r *fakeUserRepo) Unfollow(ctx context.Context, userID, targetID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.following[userID], targetID)
	return nil
}

func (r *fakeUserRepo) IsFollowing(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.following[userID][targetID], nil
}

// fakeJobRepo is an in-memory repository.JobRepository.
type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*domain.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeJobRepo) GetBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.Slug == slug {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []domain.Job
	for _, j := range r.jobs {
		if filter.AuthorID != nil && j.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.CategoryID != nil && (j.CategoryID == nil || *j.CategoryID != *filter.CategoryID) {
			continue
		}
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}

// fakeCategoryRepo is an in-memory repository.CategoryRepository.
type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*domain.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var categories []domain.Category
	for _, c := range r.categories {
		categories = append(categories, *c)
	}
	return categories, nil
}
