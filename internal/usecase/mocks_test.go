package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/events"
	"food-marketplace/internal/gateway"

	"github.com/stretchr/testify/mock"
)

// ==================== USER ====================

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type mockLoginAttemptRepo struct{ mock.Mock }

func (m *mockLoginAttemptRepo) Create(ctx context.Context, attempt *entity.LoginAttempt) error {
	return m.Called(ctx, attempt).Error(0)
}

// ==================== CATALOG ====================

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)
	return product, args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)
	return product, args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]*entity.Product)
	return products, args.Error(1)
}

type mockEstablishmentRepo struct{ mock.Mock }

func (m *mockEstablishmentRepo) UpsertHeartbeat(ctx context.Context, establishmentID int64) (time.Time, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *mockEstablishmentRepo) DeleteHeartbeat(ctx context.Context, establishmentID int64) error {
	return m.Called(ctx, establishmentID).Error(0)
}

func (m *mockEstablishmentRepo) ListAvailability(ctx context.Context, window time.Duration) ([]*entity.EstablishmentAvailability, error) {
	args := m.Called(ctx, window)
	rows, _ := args.Get(0).([]*entity.EstablishmentAvailability)
	return rows, args.Error(1)
}

// ==================== GATEWAY & EVENTS ====================

type mockGateway struct{ mock.Mock }

func (m *mockGateway) CreatePreference(ctx context.Context, req gateway.PreferenceRequest) (*gateway.Preference, error) {
	args := m.Called(ctx, req)
	pref, _ := args.Get(0).(*gateway.Preference)
	return pref, args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) last() events.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

// ==================== ORDER STORE ====================

// memoryOrderRepo behaves like the SQL order repository closely enough to run whole
// lifecycles against it.
type memoryOrderRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*entity.Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: map[int64]*entity.Order{}}
}

func (r *memoryOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	stored := *order
	stored.Items = append([]entity.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &stored
	return nil
}

func (r *memoryOrderRepo) FindByID(_ context.Context, id int64) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *memoryOrderRepo) List(_ context.Context, filter entity.OrderFilter) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Order
	for _, o := range r.orders {
		if filter.EstablishmentID != nil && o.EstablishmentID != *filter.EstablishmentID {
			continue
		}
		if filter.State != nil && o.State != *filter.State {
			continue
		}
		if filter.CourierID != nil && (o.CourierID == nil || *o.CourierID != *filter.CourierID) {
			continue
		}
		copied := *o
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memoryOrderRepo) SetPreference(_ context.Context, id int64, preferenceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.PreferenceID = &preferenceID
	return nil
}

func (r *memoryOrderRepo) FindLatestByPreference(_ context.Context, preferenceID string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *entity.Order
	for _, o := range r.orders {
		if o.PreferenceID != nil && *o.PreferenceID == preferenceID && (latest == nil || o.ID > latest.ID) {
			latest = o
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memoryOrderRepo) FindLatestPending(_ context.Context) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *entity.Order
	for _, o := range r.orders {
		if o.State == entity.OrderPending && (latest == nil || o.ID > latest.ID) {
			latest = o
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memoryOrderRepo) AcceptIfReady(_ context.Context, id, courierID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.State != entity.OrderReady {
		return false, nil
	}
	order.State = entity.OrderEnRoute
	order.CourierID = &courierID
	return true, nil
}

func (r *memoryOrderRepo) UpdateState(_ context.Context, id int64, state entity.OrderState, preferenceID *string) (entity.OrderState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	previous := order.State
	order.State = state
	if preferenceID != nil {
		order.PreferenceID = preferenceID
	}
	return previous, nil
}
