package inventory_test

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/restaurant-inventory/internal/application/inventory"
	"github.com/tu-usuario/restaurant-inventory/internal/domain"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/entity"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/event"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/measure"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
	"github.com/tu-usuario/restaurant-inventory/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso
// ──────────────────────────────────────────────────────────────────────────────

// fakeIngredientRepo guarda ingredientes en un mapa. GetForUpdate no bloquea
// nada: los tests corren una operación a la vez.
type fakeIngredientRepo struct {
	items map[string]*entity.Ingredient
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{items: make(map[string]*entity.Ingredient)}
}

func (r *fakeIngredientRepo) Create(ing *entity.Ingredient) error {
	if _, ok := r.items[ing.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *ing
	r.items[ing.ID] = &cp
	return nil
}

func (r *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	ing, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *ing
	return &cp, nil
}

func (r *fakeIngredientRepo) GetByName(name string) (*entity.Ingredient, error) {
	for _, ing := range r.items {
		if ing.Name == name {
			cp := *ing
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return r.GetByID(id)
}

func (r *fakeIngredientRepo) Update(ing *entity.Ingredient) error {
	if _, ok := r.items[ing.ID]; !ok {
		return domain.ErrIngredientNotFound
	}
	cp := *ing
	r.items[ing.ID] = &cp
	return nil
}

func (r *fakeIngredientRepo) List(limit, offset int) ([]*entity.Ingredient, error) {
	out := make([]*entity.Ingredient, 0, len(r.items))
	for _, ing := range r.items {
		cp := *ing
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeIngredientRepo) ListBelowMinimum() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, ing := range r.items {
		if ing.IsBelowMinimum() {
			cp := *ing
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeIngredientRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrIngredientNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeRecipeRepo guarda recetas en un mapa.
type fakeRecipeRepo struct {
	items map[string]*entity.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{items: make(map[string]*entity.Recipe)}
}

func (r *fakeRecipeRepo) Create(recipe *entity.Recipe) error {
	cp := *recipe
	r.items[recipe.ID] = &cp
	return nil
}

func (r *fakeRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	recipe, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *recipe
	return &cp, nil
}

func (r *fakeRecipeRepo) GetByName(name string) (*entity.Recipe, error) {
	for _, recipe := range r.items {
		if recipe.Name == name {
			cp := *recipe
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRecipeRepo) Update(recipe *entity.Recipe) error {
	if _, ok := r.items[recipe.ID]; !ok {
		return domain.ErrRecipeNotFound
	}
	cp := *recipe
	r.items[recipe.ID] = &cp
	return nil
}

func (r *fakeRecipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	out := make([]*entity.Recipe, 0, len(r.items))
	for _, recipe := range r.items {
		cp := *recipe
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRecipeRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(r.items, id)
	return nil
}

// fakePublisher acumula los envelopes publicados.
type fakePublisher struct {
	published []event.Envelope
}

func (p *fakePublisher) Publish(_ context.Context, envelope event.Envelope) error {
	p.published = append(p.published, envelope)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

// ofType devuelve los envelopes publicados de un tipo dado.
func (p *fakePublisher) ofType(eventType string) []event.Envelope {
	var out []event.Envelope
	for _, e := range p.published {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fakeTxRunner ejecuta el callback directamente contra el repo en memoria,
// sin transacción real.
type fakeTxRunner struct {
	repo *fakeIngredientRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.IngredientRepository) error) error {
	return fn(r.repo)
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

// ── helpers comunes ───────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func qty(t *testing.T, amount float64, unit measure.Unit) measure.Quantity {
	t.Helper()
	q, err := measure.NewQuantity(decimal.NewFromFloat(amount), unit)
	require.NoError(t, err)
	return q
}

// seedIngredient inserta un ingrediente directo en el repo fake.
func seedIngredient(t *testing.T, repo *fakeIngredientRepo, name string, stock, minimum measure.Quantity) *entity.Ingredient {
	t.Helper()
	ing, err := entity.NewIngredient(name, "test", stock, minimum)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ing))
	return ing
}
