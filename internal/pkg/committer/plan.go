// Package committer applies batches of Spanner mutations atomically.
//
// Use cases never write directly. Repositories return mutations, the use case
// collects them (the aggregate row plus its outbox events) into a CommitPlan,
// and the Committer applies the plan in one transaction:
//
//	plan := committer.NewPlan()
//	mut, err := reportRepo.InsertMut(report)
//	if err != nil {
//	    return err
//	}
//	plan.Add(mut)
//	for _, event := range report.DomainEvents() {
//	    plan.Add(outboxRepo.InsertMut(outboxRepo.EnrichEvent(event, payload)))
//	}
//	return committer.Apply(ctx, plan)
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan collects mutations to be applied together.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Applier applies a CommitPlan. Use cases depend on this rather than on
// *Committer so they can be tested without Spanner.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
}

// Committer applies CommitPlans against a Spanner database.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply writes every mutation in plan in a single transaction. An empty plan
// is a no-op.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyDML runs a DML statement in a read-write transaction and returns the
// affected row count.
func (c *Committer) ApplyDML(ctx context.Context, stmt spanner.Statement) (int64, error) {
	var rows int64
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		if err != nil {
			return err
		}
		rows = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to apply statement: %w", err)
	}
	return rows, nil
}
