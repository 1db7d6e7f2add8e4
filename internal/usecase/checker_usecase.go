package usecase

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/oddsline/backend/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const checkerDescription = "polls active price alerts against live market prices"

// Prices are normalized to [0,1], so an absolute tolerance is enough for
// equals alerts.
var equalsTolerance = decimal.RequireFromString("0.01")

const emptyLogInterval = 60 * time.Second

// TriggerNotice is the context handed to the notifier when an alert fires.
type TriggerNotice struct {
	AlertID        string
	MarketID       string
	MarketQuestion string
	TargetPrice    decimal.Decimal
	CurrentPrice   decimal.Decimal
	Condition      domain.AlertCondition
}

type Notifier interface {
	Send(ctx context.Context, address string, notice TriggerNotice) error
}

type CheckerStatus struct {
	Running     bool          `json:"running"`
	Interval    time.Duration `json:"interval"`
	Description string        `json:"description"`
}

// AlertChecker owns the alert lifecycle: it is the only component that moves
// an alert from active to triggered. One checker instance runs one cycle at
// a time; a tick that lands while a cycle is still in flight is skipped.
type AlertChecker struct {
	alerts   domain.AlertRepository
	users    domain.UserRepository
	market   domain.MarketClient
	notifier Notifier
	logger   *zap.Logger
	interval time.Duration

	mu       sync.Mutex
	running  bool
	inCycle  bool
	cancel   context.CancelFunc
	done     chan struct{}
	lastIdle time.Time
}

func NewAlertChecker(alerts domain.AlertRepository, users domain.UserRepository, market domain.MarketClient, notifier Notifier, interval time.Duration, logger *zap.Logger) *AlertChecker {
	return &AlertChecker{
		alerts:   alerts,
		users:    users,
		market:   market,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Start runs one cycle immediately, then re-checks at the configured
// interval until Stop or context cancellation. Calling Start while running
// is a no-op.
func (c *AlertChecker) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		c.logger.Info("alert checker already running")
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	c.logger.Info("alert checker started", zap.Duration("interval", c.interval))

	go func() {
		defer close(done)
		c.tryCycle(runCtx)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				c.tryCycle(runCtx)
			}
		}
	}()
}

// Stop prevents future cycles; an in-flight cycle runs to completion.
// Calling Stop while stopped is a no-op.
func (c *AlertChecker) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		c.logger.Info("alert checker already stopped")
		return
	}
	c.running = false
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		c.logger.Warn("timeout waiting for check cycle to finish")
	}
	c.logger.Info("alert checker stopped")
}

func (c *AlertChecker) Status() CheckerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CheckerStatus{
		Running:     c.running,
		Interval:    c.interval,
		Description: checkerDescription,
	}
}

// tryCycle skips the tick when the previous cycle has not finished yet, so
// cycles never overlap even if one overruns the interval.
func (c *AlertChecker) tryCycle(ctx context.Context) {
	c.mu.Lock()
	if c.inCycle {
		c.mu.Unlock()
		c.logger.Warn("check cycle still in flight, skipping tick")
		return
	}
	c.inCycle = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inCycle = false
		c.mu.Unlock()
	}()

	c.runCycle(ctx)
}

// runCycle evaluates every active alert once. Alerts are grouped by market
// so the oracle is hit at most once per distinct market, and a failure in
// one group never aborts the others.
func (c *AlertChecker) runCycle(ctx context.Context) {
	active, err := c.alerts.ListActive(ctx)
	if err != nil {
		c.logger.Error("failed to list active alerts", zap.Error(err))
		return
	}

	if len(active) == 0 {
		c.mu.Lock()
		idle := time.Since(c.lastIdle) >= emptyLogInterval
		if idle {
			c.lastIdle = time.Now()
		}
		c.mu.Unlock()
		if idle {
			c.logger.Info("no active alerts to check")
		}
		return
	}

	groups := groupByMarket(active)
	c.logger.Debug("check cycle start", zap.Int("alerts", len(active)), zap.Int("markets", len(groups)))

	for marketID, group := range groups {
		c.checkMarketGroup(ctx, marketID, group)
	}
}

func groupByMarket(alerts []domain.Alert) map[string][]domain.Alert {
	groups := make(map[string][]domain.Alert)
	for _, alert := range alerts {
		groups[alert.MarketID] = append(groups[alert.MarketID], alert)
	}
	return groups
}

// checkMarketGroup fetches one quote and evaluates every alert in the group
// against that same snapshot.
func (c *AlertChecker) checkMarketGroup(ctx context.Context, marketID string, group []domain.Alert) {
	quote, err := c.market.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			c.logger.Warn("market not found, skipping group", zap.String("market_id", marketID), zap.Int("alerts", len(group)))
			return
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			c.logger.Warn("network error fetching market, skipping group", zap.String("market_id", marketID), zap.Bool("timeout", netErr.Timeout()), zap.Error(err))
		} else {
			c.logger.Error("failed to fetch market, skipping group", zap.String("market_id", marketID), zap.Error(err))
		}
		return
	}

	for _, alert := range group {
		if shouldTrigger(alert.Condition, alert.TargetPrice, quote.Price) {
			c.triggerAlert(ctx, alert, quote)
		} else {
			c.markChecked(ctx, alert)
		}
	}
}

// shouldTrigger evaluates an alert condition against the current price.
// Boundaries are inclusive for above/below; equals uses a fixed absolute
// tolerance. Unrecognized conditions never trigger.
func shouldTrigger(condition domain.AlertCondition, target, current decimal.Decimal) bool {
	switch condition {
	case domain.ConditionAbove:
		return current.Cmp(target) >= 0
	case domain.ConditionBelow:
		return current.Cmp(target) <= 0
	case domain.ConditionEquals:
		return current.Sub(target).Abs().Cmp(equalsTolerance) <= 0
	default:
		return false
	}
}

// triggerAlert persists the terminal transition first, then attempts a
// best-effort notification. NotificationSent records intent, not confirmed
// delivery: a notifier failure never reverts the transition and is not
// retried.
func (c *AlertChecker) triggerAlert(ctx context.Context, alert domain.Alert, quote *domain.PriceQuote) {
	now := time.Now().UTC()
	triggered := domain.StatusTriggered
	sent := true
	_, err := c.alerts.Update(ctx, alert.ID, domain.AlertUpdate{
		Status:           &triggered,
		TriggeredAt:      &now,
		LastCheckedAt:    &now,
		NotificationSent: &sent,
	})
	if err != nil {
		c.logger.Error("failed to mark alert triggered", zap.String("alert_id", alert.ID), zap.Error(err))
		return
	}

	c.logger.Info(
		"alert triggered",
		zap.String("alert_id", alert.ID),
		zap.String("market_id", alert.MarketID),
		zap.String("condition", string(alert.Condition)),
		zap.String("target_price", alert.TargetPrice.String()),
		zap.String("current_price", quote.Price.String()),
	)

	user, err := c.users.GetByWallet(ctx, alert.WalletAddress)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		c.logger.Warn("failed to resolve alert owner", zap.String("alert_id", alert.ID), zap.Error(err))
		return
	}
	if user.NotifyChatID == "" || !user.NotifyVerified {
		c.logger.Debug("alert owner has no verified contact", zap.String("alert_id", alert.ID))
		return
	}

	notice := TriggerNotice{
		AlertID:        alert.ID,
		MarketID:       alert.MarketID,
		MarketQuestion: alert.MarketQuestion,
		TargetPrice:    alert.TargetPrice,
		CurrentPrice:   quote.Price,
		Condition:      alert.Condition,
	}
	if err := c.notifier.Send(ctx, user.NotifyChatID, notice); err != nil {
		c.logger.Warn("failed to deliver alert notification", zap.String("alert_id", alert.ID), zap.Error(err))
		return
	}
	c.logger.Info("alert notification sent", zap.String("alert_id", alert.ID))
}

func (c *AlertChecker) markChecked(ctx context.Context, alert domain.Alert) {
	now := time.Now().UTC()
	if _, err := c.alerts.Update(ctx, alert.ID, domain.AlertUpdate{LastCheckedAt: &now}); err != nil {
		c.logger.Warn("failed to update last checked time", zap.String("alert_id", alert.ID), zap.Error(err))
	}
}
