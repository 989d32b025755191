package dice

import "go.uber.org/zap"

// Roller wraps a Source, Limits and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, display, arithmetic
// and total.
type Roller struct {
	src    Source
	limits Limits
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src under limits and logs
// each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, limits Limits, logger *zap.Logger) *Roller {
	return &Roller{src: src, limits: limits, logger: logger}
}

// Roll evaluates input and logs the result at debug level. Failures are
// logged at debug too; they are user input errors, not server faults.
//
// Postcondition: result logged; returns Result or error.
func (r *Roller) Roll(input string) (Result, error) {
	result, err := Roll(input, r.src, r.limits)
	if err != nil {
		r.logger.Debug("dice roll rejected",
			zap.String("expression", input),
			zap.Error(err),
		)
		return Result{}, err
	}
	terms := make([]string, len(result.Terms))
	for i, t := range result.Terms {
		terms[i] = t.Term.String()
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Input),
		zap.Strings("terms", terms),
		zap.String("display", result.Display),
		zap.String("arithmetic", result.Arithmetic),
		zap.Int("dice", result.DiceCount()),
		zap.Int("total", result.Total),
	)
	return result, nil
}

// Simulate rolls input n times and logs the summary at debug level.
//
// Postcondition: returns Stats or error.
func (r *Roller) Simulate(input string, n int) (Stats, error) {
	stats, err := Simulate(input, n, r.src, r.limits)
	if err != nil {
		return Stats{}, err
	}
	r.logger.Debug("dice simulation",
		zap.String("expression", stats.Expression),
		zap.Int("iterations", stats.N),
		zap.Int("min", stats.Min),
		zap.Int("max", stats.Max),
		zap.Float64("mean", stats.Mean),
		zap.Float64("stddev", stats.StdDev),
		zap.Int("distinct_totals", len(stats.Counts)),
	)
	return stats, nil
}
