package simulation

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Params are the scalar inputs of the order-point / order-up-to policy. Quantities share
// one opaque unit (the textbook case counts thousands of calendars).
type Params struct {
	InitialInventory int             `json:"initial_inventory"`
	OrderPoint       int             `json:"order_point"`
	MaxInventory     int             `json:"max_inventory"`
	Weeks            int             `json:"weeks"`
	ShortageCost     decimal.Decimal `json:"shortage_cost"` // per unit short
	OrderCost        decimal.Decimal `json:"order_cost"`    // per order placed
}

// Config is everything a run needs. Distributions are built by the caller with
// NewDistribution; digit streams are the externally supplied random numbers.
type Config struct {
	Params
	Demand         Distribution
	LeadTime       Distribution
	DemandDigits   []int
	LeadTimeDigits []int
}

// WeekRecord is one ledger row. Nil pointers mean nothing was drawn or ordered that week.
type WeekRecord struct {
	Week               int             `json:"week"`
	Arrived            int             `json:"arrived"`
	BeginningInventory int             `json:"beginning_inventory"`
	DemandDigit        *int            `json:"demand_digit"`
	Demand             int             `json:"demand"`
	EndingInventory    int             `json:"ending_inventory"`
	Shortage           int             `json:"shortage"`
	ShortageCost       decimal.Decimal `json:"shortage_cost"`
	LeadTimeDigit      *int            `json:"lead_time_digit"`
	LeadTime           *int            `json:"lead_time"`
	QuantityOrdered    *int            `json:"quantity_ordered"`
	OrderingCost       decimal.Decimal `json:"ordering_cost"`
	OnOrder            int             `json:"on_order"`
	OrderDeferred      bool            `json:"order_deferred,omitempty"`
}

// RunTotals accumulates costs and counts over the whole horizon.
type RunTotals struct {
	OrderingCost   decimal.Decimal `json:"ordering_cost"`
	ShortageCost   decimal.Decimal `json:"shortage_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	OrdersPlaced   int             `json:"orders_placed"`
	ShortageUnits  int             `json:"shortage_units"`
	DeferredOrders int             `json:"deferred_orders"`
}

// Result is the ledger of a run plus its totals.
type Result struct {
	Weeks  []WeekRecord `json:"weeks"`
	Totals RunTotals    `json:"totals"`
}

// Simulator replays the inventory policy against fixed digit streams. It holds no run
// state, so Run may be called any number of times and always returns the same ledger.
type Simulator struct {
	cfg Config
}

// NewSimulator validates cfg up front so a rejected configuration never yields a partial
// ledger.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := validateParams(cfg.Params); err != nil {
		return nil, err
	}
	if err := cfg.Demand.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.LeadTime.Validate(); err != nil {
		return nil, err
	}
	for _, r := range cfg.Demand.Ranges {
		if r.Category < 0 {
			return nil, invalidParams("demand category %d is negative", r.Category)
		}
	}
	for _, r := range cfg.LeadTime.Ranges {
		if r.Category < 0 {
			return nil, invalidParams("lead time category %d is negative", r.Category)
		}
	}
	if err := ValidateDigits("demand", cfg.DemandDigits); err != nil {
		return nil, err
	}
	if err := ValidateDigits("lead time", cfg.LeadTimeDigits); err != nil {
		return nil, err
	}

	return &Simulator{cfg: cfg}, nil
}

// ValidateDigits rejects any digit outside 1..100.
func ValidateDigits(stream string, digits []int) error {
	for i, d := range digits {
		if d < MinDigit || d > MaxDigit {
			return &DigitError{Stream: stream, Index: i, Digit: d}
		}
	}
	return nil
}

func validateParams(p Params) error {
	switch {
	case p.Weeks < 1:
		return invalidParams("weeks must be at least 1, got %d", p.Weeks)
	case p.InitialInventory < 0:
		return invalidParams("initial inventory must not be negative, got %d", p.InitialInventory)
	case p.OrderPoint < 0:
		return invalidParams("order point must not be negative, got %d", p.OrderPoint)
	// A max equal to the order point could never produce a positive order quantity.
	case p.MaxInventory <= p.OrderPoint:
		return invalidParams("max inventory %d must exceed order point %d", p.MaxInventory, p.OrderPoint)
	case p.ShortageCost.IsNegative():
		return invalidParams("shortage cost must not be negative, got %s", p.ShortageCost)
	case p.OrderCost.IsNegative():
		return invalidParams("order cost must not be negative, got %s", p.OrderCost)
	}
	return nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run simulates weeks 1..N and returns one record per week plus the run totals.
func (s *Simulator) Run() Result {
	st := &runState{
		cfg:       &s.cfg,
		inventory: s.cfg.InitialInventory,
		totals: RunTotals{
			OrderingCost: decimal.Zero,
			ShortageCost: decimal.Zero,
		},
	}

	weeks := make([]WeekRecord, 0, s.cfg.Weeks)
	for week := 1; week <= s.cfg.Weeks; week++ {
		weeks = append(weeks, st.step(week))
	}

	st.totals.TotalCost = st.totals.OrderingCost.Add(st.totals.ShortageCost)

	log.Debug().
		Int("weeks", s.cfg.Weeks).
		Int("orders", st.totals.OrdersPlaced).
		Str("shortageCost", st.totals.ShortageCost.String()).
		Str("orderingCost", st.totals.OrderingCost.String()).
		Msg("Simulation finished")

	return Result{Weeks: weeks, Totals: st.totals}
}

// runState is the mutable side of a single run.
type runState struct {
	cfg         *Config
	inventory   int
	outstanding []OutstandingOrder
	leadCursor  int
	totals      RunTotals
}

func (st *runState) step(week int) WeekRecord {
	rec := WeekRecord{
		Week:         week,
		ShortageCost: decimal.Zero,
		OrderingCost: decimal.Zero,
	}

	// 1-2. Receive whatever is due this week.
	arrived, remaining := AdvanceWeek(st.outstanding)
	st.outstanding = remaining
	rec.Arrived = arrived
	rec.BeginningInventory = st.inventory + arrived

	// 3. The demand stream is indexed by week, not by a shared cursor.
	if idx := week - 1; idx < len(st.cfg.DemandDigits) {
		digit := st.cfg.DemandDigits[idx]
		demand, _ := st.cfg.Demand.Resolve(digit)
		rec.DemandDigit = intPtr(digit)
		rec.Demand = demand
	} else if idx == len(st.cfg.DemandDigits) {
		log.Debug().Int("week", week).Msg("Demand digits exhausted, remaining weeks see zero demand")
	}

	// 4. Ending inventory and shortage come from the same comparison.
	if rec.BeginningInventory >= rec.Demand {
		rec.EndingInventory = rec.BeginningInventory - rec.Demand
	} else {
		rec.Shortage = rec.Demand - rec.BeginningInventory
	}

	// 5-6. One order at a time, up to the maximum level.
	if rec.EndingInventory <= st.cfg.OrderPoint && len(st.outstanding) == 0 {
		st.placeOrder(&rec)
	}

	// 7. Shortage cost.
	if rec.Shortage > 0 {
		rec.ShortageCost = st.cfg.ShortageCost.Mul(decimal.NewFromInt(int64(rec.Shortage)))
		st.totals.ShortageCost = st.totals.ShortageCost.Add(rec.ShortageCost)
		st.totals.ShortageUnits += rec.Shortage
	}

	rec.OnOrder = pipelineQuantity(st.outstanding)

	// 9. Carry forward.
	st.inventory = rec.EndingInventory
	return rec
}

func (st *runState) placeOrder(rec *WeekRecord) {
	if st.leadCursor >= len(st.cfg.LeadTimeDigits) {
		rec.OrderDeferred = true
		st.totals.DeferredOrders++
		log.Debug().Int("week", rec.Week).Int("endingInventory", rec.EndingInventory).Msg("Lead time digits exhausted, order skipped")
		return
	}

	digit := st.cfg.LeadTimeDigits[st.leadCursor]
	st.leadCursor++
	leadTime, _ := st.cfg.LeadTime.Resolve(digit)
	quantity := st.cfg.MaxInventory - rec.EndingInventory

	st.outstanding = append(st.outstanding, OutstandingOrder{Quantity: quantity, WeeksRemaining: leadTime})

	rec.LeadTimeDigit = intPtr(digit)
	rec.LeadTime = intPtr(leadTime)
	rec.QuantityOrdered = intPtr(quantity)
	rec.OrderingCost = st.cfg.OrderCost

	st.totals.OrderingCost = st.totals.OrderingCost.Add(st.cfg.OrderCost)
	st.totals.OrdersPlaced++
}

func intPtr(v int) *int {
	return &v
}
