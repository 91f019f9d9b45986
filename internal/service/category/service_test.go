package category

import (
	"context"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	categories    map[string]domain.Category
	childrenCalls int
}

func (s *stubRepo) List(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *stubRepo) ListChildren(_ context.Context, parentID string) ([]domain.Category, error) {
	s.childrenCalls++
	var out []domain.Category
	for _, c := range s.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}

func TestSubcategories(t *testing.T) {
	parent := "kitchen"
	repo := &stubRepo{categories: map[string]domain.Category{
		"kitchen": {ID: "kitchen", Name: "Kitchen"},
		"mugs":    {ID: "mugs", Name: "Mugs", ParentID: &parent},
	}}
	svc := New(repo)

	got, err := svc.Subcategories(context.Background(), "kitchen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "mugs" {
		t.Fatalf("unexpected children %+v", got)
	}
}

func TestSubcategoriesUnknownParent(t *testing.T) {
	repo := &stubRepo{categories: map[string]domain.Category{}}
	svc := New(repo)

	if _, err := svc.Subcategories(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.childrenCalls != 0 {
		t.Fatalf("children should not be listed for an unknown parent")
	}
}
