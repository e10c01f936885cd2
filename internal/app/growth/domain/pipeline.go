package domain

import "fmt"

// Pipeline turns one entity's raw sales rows into published growth rows.
// It holds no state between runs and is safe to reuse.
type Pipeline struct {
	entity          EntityConfig
	currentPeriodID int32
	alignment       AlignmentMode
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// WithCurrentPeriodID sets the period id previous rows are retagged with. A
// non-positive id keeps DefaultCurrentPeriodID.
func WithCurrentPeriodID(id int32) PipelineOption {
	return func(p *Pipeline) {
		if id > 0 {
			p.currentPeriodID = id
		}
	}
}

// WithAlignment sets how weeks are paired with their year-ago counterpart.
func WithAlignment(mode AlignmentMode) PipelineOption {
	return func(p *Pipeline) {
		p.alignment = mode
	}
}

// NewPipeline creates a pipeline for entity.
func NewPipeline(entity EntityConfig, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		entity:          entity,
		currentPeriodID: DefaultCurrentPeriodID,
		alignment:       AlignISOWeek,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Entity returns the entity configuration the pipeline runs with.
func (p *Pipeline) Entity() EntityConfig {
	return p.entity
}

// Compute runs split, align, join, filter and growth, returning the growth rows
// in join order.
func (p *Pipeline) Compute(records []SalesRecord) ([]GrowthRecord, error) {
	for _, rec := range records {
		if err := rec.Validate(p.entity); err != nil {
			return nil, fmt.Errorf("entity %s: %w", p.entity.Name(), rec.rowError(err))
		}
	}

	previous, all, err := SplitPeriods(records)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", p.entity.Name(), err)
	}

	currentSide, previousSide := AlignPeriods(all, previous, p.currentPeriodID, p.alignment)
	joined := FilterCurrent(OuterJoin(currentSide, previousSide))

	return CalculateGrowth(joined), nil
}

// Run computes growth and formats it for publication. Empty input yields an
// empty, non-nil slice.
func (p *Pipeline) Run(records []SalesRecord) ([]OutputRecord, error) {
	rows, err := p.Compute(records)
	if err != nil {
		return nil, err
	}
	return Format(p.entity, rows), nil
}
