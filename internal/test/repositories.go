package test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type cartKey struct {
	userID    int64
	productID int64
}

type cartEntry struct {
	line model.CartLine
	seq  int64
}

// MemoryStore keeps every repository in memory behind one mutex. Each
// repository call is applied atomically, matching the all-or-nothing behaviour
// of the PostgreSQL statements, so concurrency scenarios can run without a
// database.
type MemoryStore struct {
	mu  sync.Mutex
	seq int64
	now func() time.Time

	users    map[int64]*model.User
	products map[int64]*model.Product
	cart     map[cartKey]*cartEntry
	coupons  map[string]*model.Coupon
	orders   map[int64]*model.Order
	numbers  map[string]int64
	returns  map[int64]*model.Return

	// BeforeOrderCreate runs under the lock before an order is written. A
	// non-nil error aborts the write.
	BeforeOrderCreate func(req model.PlaceOrder) error
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:      time.Now,
		users:    make(map[int64]*model.User),
		products: make(map[int64]*model.Product),
		cart:     make(map[cartKey]*cartEntry),
		coupons:  make(map[string]*model.Coupon),
		orders:   make(map[int64]*model.Order),
		numbers:  make(map[string]int64),
		returns:  make(map[int64]*model.Return),
	}
}

var _ repository.Factory = (*MemoryStore)(nil)

func (s *MemoryStore) nextID() int64 {
	s.seq++
	return s.seq
}

// AddProduct seeds a product and returns the stored copy.
func (s *MemoryStore) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID()
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = &p
	return p
}

// Product returns the current state of a product.
func (s *MemoryStore) Product(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, false
	}
	return *p, true
}

// AddCoupon seeds a coupon and returns the stored copy.
func (s *MemoryStore) AddCoupon(c model.Coupon) model.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID()
	c.CreatedAt = s.now()
	s.coupons[c.Code] = &c
	return c
}

// Coupon returns the current state of a coupon.
func (s *MemoryStore) Coupon(code string) (model.Coupon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[code]
	if !ok {
		return model.Coupon{}, false
	}
	return *c, true
}

// OrderCount reports how many orders were written.
func (s *MemoryStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// SetOrderStatus forces an order status, bypassing transition rules.
func (s *MemoryStore) SetOrderStatus(id int64, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		o.Status = status
	}
}

func (s *MemoryStore) Users() repository.UserRepository       { return memoryUsers{s} }
func (s *MemoryStore) Products() repository.ProductRepository { return memoryProducts{s} }
func (s *MemoryStore) Carts() repository.CartRepository       { return memoryCarts{s} }
func (s *MemoryStore) Coupons() repository.CouponRepository   { return memoryCoupons{s} }
func (s *MemoryStore) Orders() repository.OrderRepository     { return memoryOrders{s} }
func (s *MemoryStore) Returns() repository.ReturnRepository   { return memoryReturns{s} }

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Login == login {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	user := &model.User{ID: r.s.nextID(), Login: login, PasswordHash: passwordHash, Role: role, CreatedAt: r.s.now()}
	r.s.users[user.ID] = user
	out := *user
	return &out, nil
}

func (r memoryUsers) GetByLogin(_ context.Context, login string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Login == login {
			out := *u
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *u
	return &out, nil
}

type memoryProducts struct{ s *MemoryStore }

func (r memoryProducts) GetByID(_ context.Context, id int64) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r memoryProducts) List(_ context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	filter = filter.Normalize()

	var matched []model.Product
	for _, p := range r.s.products {
		if p.Archived {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r memoryProducts) Create(_ context.Context, product model.Product) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = r.s.nextID()
	product.CreatedAt = r.s.now()
	product.UpdatedAt = product.CreatedAt
	r.s.products[product.ID] = &product
	out := product
	return &out, nil
}

func (r memoryProducts) Update(_ context.Context, product model.Product) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[product.ID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	product.CreatedAt = current.CreatedAt
	product.Archived = current.Archived
	product.UpdatedAt = r.s.now()
	*current = product
	out := product
	return &out, nil
}

func (r memoryProducts) Archive(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.Archived = true
	p.UpdatedAt = r.s.now()
	return nil
}

type memoryCarts struct{ s *MemoryStore }

func (r memoryCarts) Add(_ context.Context, userID, productID int64, quantity int) (*model.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.Archived {
		return nil, domainErrors.ErrNotFound
	}
	key := cartKey{userID: userID, productID: productID}
	entry, exists := r.s.cart[key]
	resulting := quantity
	if exists {
		resulting += entry.line.Quantity
	}
	if p.Stock < resulting {
		return nil, domainErrors.ErrInsufficientStock
	}
	now := r.s.now()
	if !exists {
		entry = &cartEntry{line: model.CartLine{UserID: userID, ProductID: productID, CreatedAt: now}, seq: r.s.nextID()}
		r.s.cart[key] = entry
	}
	entry.line.Quantity = resulting
	entry.line.UpdatedAt = now
	out := entry.line
	return &out, nil
}

func (r memoryCarts) SetQuantity(_ context.Context, userID, productID int64, quantity int) (*model.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry, ok := r.s.cart[cartKey{userID: userID, productID: productID}]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	p := r.s.products[productID]
	if p == nil || p.Archived {
		return nil, domainErrors.ErrNotFound
	}
	if p.Stock < quantity {
		return nil, domainErrors.ErrInsufficientStock
	}
	entry.line.Quantity = quantity
	entry.line.UpdatedAt = r.s.now()
	out := entry.line
	return &out, nil
}

func (r memoryCarts) Remove(_ context.Context, userID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := cartKey{userID: userID, productID: productID}
	if _, ok := r.s.cart[key]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.cart, key)
	return nil
}

func (r memoryCarts) Clear(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clearCart(userID)
	return nil
}

func (s *MemoryStore) clearCart(userID int64) {
	for key := range s.cart {
		if key.userID == userID {
			delete(s.cart, key)
		}
	}
}

func (r memoryCarts) Items(_ context.Context, userID int64) ([]model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var entries []*cartEntry
	for key, entry := range r.s.cart {
		if key.userID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	items := make([]model.CartItem, 0, len(entries))
	for _, entry := range entries {
		p := r.s.products[entry.line.ProductID]
		if p == nil || p.Archived {
			continue
		}
		items = append(items, model.CartItem{
			ProductID: p.ID,
			Title:     p.Title,
			Image:     p.Image,
			UnitPrice: p.Price,
			Stock:     p.Stock,
			Quantity:  entry.line.Quantity,
		})
	}
	return items, nil
}

type memoryCoupons struct{ s *MemoryStore }

func (r memoryCoupons) GetByCode(_ context.Context, code string) (*model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r memoryCoupons) Create(_ context.Context, coupon model.Coupon) (*model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.coupons[coupon.Code]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	coupon.ID = r.s.nextID()
	coupon.CreatedAt = r.s.now()
	r.s.coupons[coupon.Code] = &coupon
	out := coupon
	return &out, nil
}

func (r memoryCoupons) List(_ context.Context) ([]model.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Coupon, 0, len(r.s.coupons))
	for _, c := range r.s.coupons {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(_ context.Context, req model.PlaceOrder) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.BeforeOrderCreate != nil {
		if err := r.s.BeforeOrderCreate(req); err != nil {
			return nil, err
		}
	}
	if _, taken := r.s.numbers[req.Number]; taken {
		return nil, domainErrors.ErrOrderNumberConflict
	}

	lines := make([]model.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		p, ok := r.s.products[item.ProductID]
		if !ok || p.Archived {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, domainErrors.ErrNotFound)
		}
		if p.Stock < item.Quantity {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, domainErrors.ErrInsufficientStock)
		}
		lines = append(lines, model.OrderLine{
			ProductID: p.ID,
			Title:     p.Title,
			Image:     p.Image,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
		})
	}

	var coupon *model.Coupon
	if req.CouponCode != "" {
		c, ok := r.s.coupons[req.CouponCode]
		if !ok {
			return nil, fmt.Errorf("coupon %q: %w", req.CouponCode, domainErrors.ErrNotFound)
		}
		coupon = c
	}

	pricing, err := model.PriceLines(lines, coupon, req.PlacedAt)
	if err != nil {
		return nil, err
	}
	if err := pricing.CheckExpectedTotal(req.ExpectedTotal); err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		r.s.products[item.ProductID].Stock -= item.Quantity
	}
	var code *string
	if coupon != nil {
		coupon.UsedCount++
		c := coupon.Code
		code = &c
	}

	order := &model.Order{
		ID:            r.s.nextID(),
		Number:        req.Number,
		UserID:        req.UserID,
		Subtotal:      pricing.Subtotal,
		Discount:      pricing.Discount,
		TotalPrice:    pricing.Total,
		CouponCode:    code,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
		Status:        model.OrderStatusPending,
		CreatedAt:     req.PlacedAt,
		UpdatedAt:     req.PlacedAt,
	}
	for i := range lines {
		lines[i].ID = r.s.nextID()
		lines[i].OrderID = order.ID
	}
	order.Lines = lines
	r.s.orders[order.ID] = order
	r.s.numbers[order.Number] = order.ID
	r.s.clearCart(req.UserID)

	return copyOrder(order), nil
}

func copyOrder(o *model.Order) *model.Order {
	out := *o
	out.Lines = append([]model.OrderLine(nil), o.Lines...)
	return &out
}

func (r memoryOrders) GetByID(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r memoryOrders) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
	return r.list(func(o *model.Order) bool { return o.UserID == userID }), nil
}

func (r memoryOrders) List(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return r.list(func(o *model.Order) bool {
		return filter.Status == "" || o.Status == filter.Status
	}), nil
}

func (r memoryOrders) list(keep func(*model.Order) bool) []model.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Order, 0)
	for _, o := range r.s.orders {
		if keep(o) {
			out = append(out, *copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memoryOrders) UpdateStatus(_ context.Context, id int64, expected, next model.OrderStatus) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != expected {
		return nil, domainErrors.ErrInvalidTransition
	}
	o.Status = next
	o.UpdatedAt = r.s.now()
	return copyOrder(o), nil
}

type memoryReturns struct{ s *MemoryStore }

func (r memoryReturns) Create(_ context.Context, ret model.Return) (*model.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.returns {
		if existing.OrderID == ret.OrderID && existing.Status.Open() {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	ret.ID = r.s.nextID()
	ret.CreatedAt = r.s.now()
	ret.UpdatedAt = ret.CreatedAt
	r.s.returns[ret.ID] = &ret
	out := ret
	return &out, nil
}

func (r memoryReturns) GetByID(_ context.Context, id int64) (*model.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.returns[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *ret
	return &out, nil
}

func (r memoryReturns) ListByUser(_ context.Context, userID int64) ([]model.Return, error) {
	return r.list(func(ret *model.Return) bool { return ret.UserID == userID }), nil
}

func (r memoryReturns) List(_ context.Context) ([]model.Return, error) {
	return r.list(func(*model.Return) bool { return true }), nil
}

func (r memoryReturns) list(keep func(*model.Return) bool) []model.Return {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Return, 0)
	for _, ret := range r.s.returns {
		if keep(ret) {
			out = append(out, *ret)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memoryReturns) UpdateStatus(_ context.Context, id int64, expected, next model.ReturnStatus) (*model.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.returns[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if ret.Status != expected {
		return nil, domainErrors.ErrInvalidTransition
	}
	ret.Status = next
	ret.UpdatedAt = r.s.now()
	out := *ret
	return &out, nil
}
