// Package provisioner runs a batch of account creations against the panel.
// Every attempt ends in exactly one outcome, so a batch that gets past login
// always accounts for all of its requests.
package provisioner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"mailprov/internal/config"
	"mailprov/internal/panel"
	"mailprov/pkg/domain"
	"mailprov/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// submitAttempts is the first submission plus one retry.
const submitAttempts = 2

// Recorder receives the outcome of logins and account attempts.
type Recorder interface {
	RecordOutcome(ctx context.Context, outcome domain.Outcome, took time.Duration)
	RecordLogin(ctx context.Context, ok bool)
}

// Options configure the batch.
type Options struct {
	// Prefix and Count define the local parts prefix001..prefixNNN.
	Prefix string
	Count  int
	// Domain overrides the panel's default mail domain.
	Domain string
	// StaticPassword is used for every account when set.
	StaticPassword string
	// PasswordLength is the length of generated passwords.
	PasswordLength int
	// Interval is the minimum time between the start of two attempts.
	Interval time.Duration
	// Settle is the pause between filling the form and submitting it.
	Settle time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Prefix:         cfg.Accounts.Prefix,
		Count:          cfg.Accounts.Count,
		Domain:         cfg.Accounts.Domain,
		StaticPassword: cfg.Accounts.StaticPassword,
		PasswordLength: cfg.Accounts.PasswordLength,
		Interval:       cfg.Accounts.Interval,
		Settle:         cfg.Timeouts.Settle,
	}
}

// Progress is a snapshot of a running batch.
type Progress struct {
	Total     int          `json:"total"`
	Done      int          `json:"done"`
	Current   string       `json:"current,omitempty"`
	Tally     domain.Tally `json:"tally"`
	StartedAt time.Time    `json:"startedAt"`
	Finished  bool         `json:"finished"`
}

// Provisioner drives one panel session through a batch of account requests.
// Run must not be called concurrently: the panel is a single browser tab.
// Progress may be read from any goroutine.
type Provisioner struct {
	panel    panel.Panel
	recorder Recorder
	options  Options
	limiter  *rate.Limiter

	mu       sync.Mutex
	progress Progress
}

// New creates a Provisioner. recorder may be nil.
func New(p panel.Panel, recorder Recorder, options Options) *Provisioner {
	limit := rate.Inf
	if options.Interval > 0 {
		limit = rate.Every(options.Interval)
	}

	return &Provisioner{
		panel:    p,
		recorder: recorder,
		options:  options,
		limiter:  rate.NewLimiter(limit, 1),
		progress: Progress{Total: options.Count},
	}
}

// Progress returns the state of the current or last batch.
func (p *Provisioner) Progress() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.progress
}

func (p *Provisioner) update(fn func(*Progress)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.progress)
}

// Run logs in and attempts every account of the batch. A failed login is
// returned before any account is touched. Per-account failures are counted
// as unknown and the batch continues; only a done ctx stops it early.
func (p *Provisioner) Run(ctx context.Context) (domain.Tally, error) {
	var tally domain.Tally
	p.update(func(pr *Progress) { *pr = Progress{Total: p.options.Count, StartedAt: time.Now()} })
	defer p.update(func(pr *Progress) {
		pr.Current = ""
		pr.Finished = true
	})

	token, err := p.panel.Login(ctx)
	p.recordLogin(ctx, err == nil)
	if err != nil {
		logger.Error(ctx, "login failed", zap.Error(err))

		return tally, fmt.Errorf("could not log in: %w", err)
	}

	width := int(math.Log10(float64(max(p.options.Count, 1)))) + 1
	for i := 1; i <= p.options.Count; i++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return tally, fmt.Errorf("batch interrupted: %w", err)
		}

		req, err := p.request(i)
		if err != nil {
			return tally, err
		}

		actx := logger.WithFields(ctx, zap.String("progress", fmt.Sprintf("%0*d/%d", width, i, p.options.Count)))
		logger.Info(actx, "provisioning account", zap.String("address", displayAddress(req)))
		p.update(func(pr *Progress) { pr.Current = displayAddress(req) })

		start := time.Now()
		outcome := p.provision(actx, token, req)
		if ctx.Err() != nil {
			return tally, fmt.Errorf("batch interrupted: %w", ctx.Err())
		}

		tally.Add(outcome)
		p.update(func(pr *Progress) {
			pr.Done = i
			pr.Tally = tally
		})
		p.recordOutcome(actx, outcome, time.Since(start))
		logger.Info(actx, "account processed", zap.String("outcome", string(outcome)))
	}

	logger.Info(ctx, "SUMMARY: "+tally.String(),
		zap.Int("success", tally.Success),
		zap.Int("duplicate", tally.Duplicate),
		zap.Int("unknown", tally.Unknown))

	return tally, nil
}

func (p *Provisioner) request(i int) (domain.AccountRequest, error) {
	password := p.options.StaticPassword
	if password == "" {
		var err error
		if password, err = GeneratePassword(p.options.PasswordLength); err != nil {
			return domain.AccountRequest{}, err
		}
	}

	return domain.AccountRequest{
		LocalPart: domain.LocalPart(p.options.Prefix, i),
		Password:  password,
		Domain:    p.options.Domain,
	}, nil
}

// provision walks one request through open, fill, submit and classify.
func (p *Provisioner) provision(ctx context.Context, token domain.SessionToken, req domain.AccountRequest) domain.Outcome {
	if err := p.openCreateForm(ctx, token); err != nil {
		logger.Warn(ctx, "create form unavailable", zap.Error(err))

		return domain.OutcomeUnknown
	}

	domainName, err := p.panel.FillCreateForm(ctx, req)
	if err != nil {
		logger.Warn(ctx, "could not fill create form", zap.Error(err))

		return domain.OutcomeUnknown
	}
	req = req.WithDomain(domainName)

	if err := sleep(ctx, p.options.Settle); err != nil {
		return domain.OutcomeUnknown
	}

	if !p.submit(ctx) {
		return domain.OutcomeUnknown
	}

	return p.classify(ctx, req.Address())
}

// openCreateForm retries once after reloading and passing through the list.
func (p *Provisioner) openCreateForm(ctx context.Context, token domain.SessionToken) error {
	err := p.panel.OpenCreateForm(ctx, token)
	if err == nil || ctx.Err() != nil {
		return err
	}
	logger.Warn(ctx, "could not open create form, reloading", zap.Error(err))

	if err := p.panel.Reload(ctx); err != nil {
		logger.Warn(ctx, "reload failed", zap.Error(err))
	}
	if err := p.panel.OpenAccountsList(ctx, token); err != nil {
		logger.Warn(ctx, "could not open accounts list", zap.Error(err))
	}

	return p.panel.OpenCreateForm(ctx, token) //nolint: wrapcheck
}

// submit reports whether a submission was confirmed within submitAttempts.
func (p *Provisioner) submit(ctx context.Context) bool {
	for attempt := 1; attempt <= submitAttempts; attempt++ {
		if ctx.Err() != nil {
			return false
		}
		sctx := logger.WithFields(ctx, zap.Int("attempt", attempt))

		if err := p.panel.Submit(sctx); err != nil {
			logger.Warn(sctx, "submit failed", zap.Error(err))

			continue
		}
		if p.panel.WaitCreateCycle(sctx) {
			return true
		}
		logger.Warn(sctx, "create not confirmed")
	}

	return false
}

func (p *Provisioner) classify(ctx context.Context, address string) domain.Outcome {
	if !p.panel.WaitAfterSubmit(ctx) {
		logger.Warn(ctx, "page did not settle after submit")

		return domain.OutcomeUnknown
	}
	if p.panel.AccountExists(ctx, address) {
		return domain.OutcomeSuccess
	}
	if p.panel.DuplicateIndicated(ctx) {
		return domain.OutcomeDuplicate
	}

	return domain.OutcomeUnknown
}

func (p *Provisioner) recordLogin(ctx context.Context, ok bool) {
	if p.recorder != nil {
		p.recorder.RecordLogin(ctx, ok)
	}
}

func (p *Provisioner) recordOutcome(ctx context.Context, outcome domain.Outcome, took time.Duration) {
	if p.recorder != nil {
		p.recorder.RecordOutcome(ctx, outcome, took)
	}
}

func displayAddress(req domain.AccountRequest) string {
	if req.Domain == "" {
		return req.LocalPart + "@(default)"
	}

	return req.Address()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsInterrupted reports whether err stems from a cancelled or expired batch context.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
