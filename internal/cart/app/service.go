package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nvaldebenito/storefront/internal/cart/domain"
	"golang.org/x/sync/errgroup"
)

// SyncPolicy decides what a failed remote sync does to the operation result.
// Local state is already mutated by the time the sync runs; under
// PolicyStrict the operation reports failure and local/remote may diverge
// until the next full reload, under PolicyLenient the failure is logged and
// the operation still succeeds with local state as the source of truth.
type SyncPolicy int

const (
	PolicyStrict SyncPolicy = iota
	PolicyLenient
)

func ParsePolicy(s string) (SyncPolicy, error) {
	switch s {
	case "strict", "":
		return PolicyStrict, nil
	case "lenient", "offline":
		return PolicyLenient, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown sync policy %q", s)
	}
}

var (
	// ErrValidationRejected: stock insufficient or product unavailable.
	// Terminal, nothing was mutated.
	ErrValidationRejected = errors.New("validation rejected")
	// ErrSyncFailed: the remote sync call failed after the local mutation.
	// Reconciled only by a later full reload, never retried inline.
	ErrSyncFailed = errors.New("cart sync failed")
	// ErrUnknown covers everything else, including validator transport
	// failures.
	ErrUnknown = errors.New("cart operation failed")
)

// Result is what every operation hands back to the caller. Err wraps one of
// the sentinel errors above when Success is false.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Service sequences stock validation, local mutation and remote sync for
// each cart operation. Errors never escape; every path returns a Result.
type Service struct {
	store    *Store
	stock    StockValidator
	products ProductReader
	syncer   CartSyncer
	policy   SyncPolicy
	log      *slog.Logger
}

func NewService(store *Store, stock StockValidator, products ProductReader, syncer CartSyncer, policy SyncPolicy, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    store,
		stock:    stock,
		products: products,
		syncer:   syncer,
		policy:   policy,
		log:      log,
	}
}

func (s *Service) Store() *Store {
	return s.store
}

// AddProduct validates stock, resolves product details, applies the local
// add and syncs it to the server.
func (s *Service) AddProduct(ctx context.Context, productID string, quantity int) Result {
	s.begin()
	defer s.finish()

	dec, err := s.stock.Validate(ctx, productID, quantity)
	if err != nil {
		return s.failUnknown("could not validate product availability", err)
	}
	if !dec.CanAdd {
		s.store.Dispatch(domain.SetError{Message: dec.Message})
		return Result{Success: false, Message: dec.Message, Err: fmt.Errorf("%s: %w", dec.Message, ErrValidationRejected)}
	}

	info, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return s.failUnknown("could not load product details", err)
	}

	s.store.Dispatch(domain.AddToCart{ProductID: productID, Quantity: quantity, Product: info})

	return s.afterSync("product added to cart", func() error {
		return s.syncer.AddItem(ctx, productID, quantity)
	})
}

// UpdateProductQuantity sets an absolute quantity. Non-positive quantities
// are routed to removal so a zero or negative line item can never survive.
func (s *Service) UpdateProductQuantity(ctx context.Context, productID string, quantity int) Result {
	if quantity <= 0 {
		return s.RemoveProduct(ctx, productID)
	}

	s.begin()
	defer s.finish()

	dec, err := s.stock.Validate(ctx, productID, quantity)
	if err != nil {
		return s.failUnknown("could not validate product availability", err)
	}
	if !dec.CanAdd {
		s.store.Dispatch(domain.SetError{Message: dec.Message})
		return Result{Success: false, Message: dec.Message, Err: fmt.Errorf("%s: %w", dec.Message, ErrValidationRejected)}
	}

	s.store.Dispatch(domain.UpdateQuantity{ProductID: productID, Quantity: quantity})

	return s.afterSync("quantity updated", func() error {
		return s.syncer.SetItemQuantity(ctx, productID, quantity)
	})
}

func (s *Service) RemoveProduct(ctx context.Context, productID string) Result {
	s.begin()
	defer s.finish()

	s.store.Dispatch(domain.RemoveFromCart{ProductID: productID})

	return s.afterSync("product removed from cart", func() error {
		return s.syncer.RemoveItem(ctx, productID)
	})
}

func (s *Service) ClearCart(ctx context.Context) Result {
	s.begin()
	defer s.finish()

	s.store.Dispatch(domain.ClearCart{})

	return s.afterSync("cart cleared", func() error {
		return s.syncer.Clear(ctx)
	})
}

// Load replaces local items with the server copy. This is the reconciliation
// point after any sync divergence, so a fetch failure is reported under both
// policies.
func (s *Service) Load(ctx context.Context) Result {
	s.begin()
	defer s.finish()

	items, err := s.syncer.Fetch(ctx)
	if err != nil {
		msg := "could not load cart from server"
		s.log.Error("cart fetch failed", slog.Any("err", err))
		s.store.Dispatch(domain.SetError{Message: msg})
		return Result{Success: false, Message: msg, Err: fmt.Errorf("%s: %v: %w", msg, err, ErrSyncFailed)}
	}

	s.store.Dispatch(domain.LoadCartSuccess{Items: items})
	return Result{Success: true, Message: "cart loaded"}
}

// Push bulk-replaces the server cart with the local one.
func (s *Service) Push(ctx context.Context) Result {
	s.begin()
	defer s.finish()

	items := s.store.State().Items
	return s.afterSync("cart synced", func() error {
		return s.syncer.Replace(ctx, items)
	})
}

// AvailabilityIssue flags a cart line whose quantity the catalog can no
// longer honor.
type AvailabilityIssue struct {
	ProductID      string
	Name           string
	Quantity       int
	AvailableStock int
	Message        string
}

// VerifyAvailability re-checks every cart line against current stock,
// fanning out to the validator with a concurrency cap. It never mutates the
// cart; callers decide what to do with the issues.
func (s *Service) VerifyAvailability(ctx context.Context) ([]AvailabilityIssue, error) {
	items := s.store.State().Items
	if len(items) == 0 {
		return nil, nil
	}

	issues := make([]*AvailabilityIssue, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxVerifyConcurrency)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			dec, err := s.stock.Validate(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return fmt.Errorf("failed to check stock for %s: %w", it.ProductID, err)
			}
			if !dec.CanAdd {
				issues[idx] = &AvailabilityIssue{
					ProductID:      it.ProductID,
					Name:           it.Name,
					Quantity:       it.Quantity,
					AvailableStock: dec.AvailableStock,
					Message:        dec.Message,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []AvailabilityIssue
	for _, issue := range issues {
		if issue != nil {
			out = append(out, *issue)
		}
	}
	return out, nil
}

const maxVerifyConcurrency = 10

// Reconcile re-checks availability for the whole cart, clamps lines to the
// stock the catalog can still honor (dropping ones with none left) and
// bulk-replaces the server cart with the result. Returned issues describe
// what changed.
func (s *Service) Reconcile(ctx context.Context) (Result, []AvailabilityIssue) {
	s.begin()
	defer s.finish()

	issues, err := s.VerifyAvailability(ctx)
	if err != nil {
		return s.failUnknown("could not verify cart availability", err), nil
	}

	for _, issue := range issues {
		if issue.AvailableStock > 0 {
			s.store.Dispatch(domain.UpdateQuantity{ProductID: issue.ProductID, Quantity: issue.AvailableStock})
		} else {
			s.store.Dispatch(domain.RemoveFromCart{ProductID: issue.ProductID})
		}
	}

	items := s.store.State().Items
	res := s.afterSync("cart reconciled", func() error {
		return s.syncer.Replace(ctx, items)
	})
	return res, issues
}

func (s *Service) begin() {
	s.store.Dispatch(domain.SetError{Message: ""})
	s.store.Dispatch(domain.SetLoading{Value: true})
}

func (s *Service) finish() {
	s.store.Dispatch(domain.SetLoading{Value: false})
}

func (s *Service) failUnknown(msg string, err error) Result {
	s.log.Error(msg, slog.Any("err", err))
	s.store.Dispatch(domain.SetError{Message: msg})
	return Result{Success: false, Message: msg, Err: fmt.Errorf("%s: %v: %w", msg, err, ErrUnknown)}
}

func (s *Service) afterSync(okMsg string, call func() error) Result {
	err := call()
	if err == nil {
		return Result{Success: true, Message: okMsg}
	}

	if s.policy == PolicyLenient {
		s.log.Warn("cart sync failed, keeping local state", slog.Any("err", err))
		return Result{Success: true, Message: okMsg + " (offline, pending sync)"}
	}

	msg := "could not sync cart with server"
	s.log.Error(msg, slog.Any("err", err))
	s.store.Dispatch(domain.SetError{Message: msg})
	return Result{Success: false, Message: msg, Err: fmt.Errorf("%s: %v: %w", msg, err, ErrSyncFailed)}
}
