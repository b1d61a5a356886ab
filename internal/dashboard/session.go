// Package dashboard holds the state behind the transaction dashboard: the
// one-shot data load and the views derived from it.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"txdash/internal/cache"
	"txdash/internal/core"
	"txdash/internal/log"
	"txdash/internal/metrics"
	"txdash/internal/sources"
)

// State is a point-in-time copy of the session.
type State struct {
	Loading      bool
	Customers    []core.Customer
	Transactions []core.Transaction
	Err          error
}

// Options tunes a Session. Zero values pick defaults.
type Options struct {
	Logger        *log.Logger
	Metrics       *metrics.Metrics
	ViewCacheSize int
	ViewCacheTTL  time.Duration
}

// Session loads the customer and transaction lists once and serves
// filtered views of them. The lists are written once by Load and only
// read afterwards.
type Session struct {
	customers    sources.CustomerReader
	transactions sources.TransactionReader
	logger       *log.Logger
	metrics      *metrics.Metrics
	views        *cache.LRUCache[core.View]

	once sync.Once
	done chan struct{}

	mu           sync.RWMutex
	loading      bool
	err          error
	customerList []core.Customer
	txList       []core.Transaction
}

func New(cr sources.CustomerReader, tr sources.TransactionReader, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	size := opts.ViewCacheSize
	if size <= 0 {
		size = 256
	}
	return &Session{
		customers:    cr,
		transactions: tr,
		logger:       logger.WithComponent(log.ComponentFetcher),
		metrics:      opts.Metrics,
		views:        cache.NewLRUCache[core.View](size, opts.ViewCacheTTL),
		done:         make(chan struct{}),
		loading:      true,
		customerList: []core.Customer{},
		txList:       []core.Transaction{},
	}
}

// Load fetches both collections concurrently and commits them together.
// It runs at most once; later calls return the first call's result
// immediately after it completes. On failure the lists stay empty and the
// loading flag is still cleared.
func (s *Session) Load(ctx context.Context) error {
	s.once.Do(func() {
		defer close(s.done)
		s.load(ctx)
	})
	<-s.done
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) load(ctx context.Context) {
	start := time.Now()
	var (
		customers    []core.Customer
		transactions []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.Now()
		list, err := s.customers.ListCustomers(gctx)
		s.metrics.ObserveFetch("customers", time.Since(t), err)
		if err != nil {
			return err
		}
		customers = list
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		list, err := s.transactions.ListTransactions(gctx)
		s.metrics.ObserveFetch("transactions", time.Since(t), err)
		if err != nil {
			return err
		}
		transactions = list
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = fmt.Errorf("load dashboard data: %w", err)
		s.logger.ErrorContext(ctx, "Data fetch failed",
			log.NewFields().
				WithOperation(log.OpFetch).
				WithError(err, log.ErrorTypeNetwork).
				WithFetch(0, 0, time.Since(start)).
				ToSlice()...)
		s.metrics.SetRecords(0, 0)
		return
	}

	if customers != nil {
		s.customerList = customers
	}
	if transactions != nil {
		s.txList = transactions
	}
	s.views.Purge()
	s.metrics.SetRecords(len(s.customerList), len(s.txList))
	s.logger.InfoContext(ctx, "Dashboard data loaded",
		log.NewFields().
			WithOperation(log.OpFetch).
			WithFetch(len(s.customerList), len(s.txList), time.Since(start)).
			ToSlice()...)
}

// Done is closed once loading has finished, successfully or not.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Loading reports whether the initial load is still in progress.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot returns the current state. The returned slices must be treated
// as read-only.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Loading:      s.loading,
		Customers:    s.customerList,
		Transactions: s.txList,
		Err:          s.err,
	}
}

// View derives the visible rows and chart series for c. Results computed
// after loading are memoized; the lists never change afterwards.
func (s *Session) View(c core.Criteria) core.View {
	st := s.Snapshot()
	if st.Loading {
		return core.BuildView(st.Customers, st.Transactions, c)
	}

	key := c.Key()
	if v, ok := s.views.Get(key); ok {
		s.metrics.ObserveView(true)
		v.Criteria = c
		return v
	}
	s.metrics.ObserveView(false)
	v := core.BuildView(st.Customers, st.Transactions, c)
	s.views.Set(key, v)
	return v
}

// ViewCache exposes the memo cache so it can be registered for cleanup.
func (s *Session) ViewCache() cache.Cleaner {
	return s.views
}
