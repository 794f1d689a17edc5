package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

func insertRule(ctx context.Context, q querier, rule models.AutomationRule) error {
	var from, to sql.NullString
	if rule.From != nil {
		from = nullString(string(*rule.From))
	}
	if rule.To != nil {
		to = nullString(string(*rule.To))
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO automation_rules (id, name, active, trigger_on, from_stage, to_stage)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(rule.ID), rule.Name, rule.Active, rule.On, from, to,
	)
	if err != nil {
		return fmt.Errorf("failed to insert automation rule %s: %w", rule.ID, err)
	}
	return nil
}

func listRules(ctx context.Context, q querier, activeOnly bool) ([]*models.AutomationRule, error) {
	query := `SELECT id, name, active, trigger_on, from_stage, to_stage FROM automation_rules`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY rowid`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list automation rules: %w", err)
	}
	defer rows.Close()

	rules := make([]*models.AutomationRule, 0)
	for rows.Next() {
		var (
			rule     models.AutomationRule
			id       string
			from, to sql.NullString
		)
		if err := rows.Scan(&id, &rule.Name, &rule.Active, &rule.On, &from, &to); err != nil {
			return nil, fmt.Errorf("failed to scan automation rule: %w", err)
		}
		rule.ID = types.RuleID(id)
		if from.Valid {
			rule.From = stagePtr(models.Stage(from.String))
		}
		if to.Valid {
			rule.To = stagePtr(models.Stage(to.String))
		}
		rules = append(rules, &rule)
	}
	return rules, rows.Err()
}

// matchRules returns the ids of active rules fired by from -> to
func matchRules(ctx context.Context, q querier, from, to models.Stage) ([]types.RuleID, error) {
	rules, err := listRules(ctx, q, true)
	if err != nil {
		return nil, err
	}
	fired := make([]types.RuleID, 0)
	for _, rule := range rules {
		if rule.Matches(from, to) {
			fired = append(fired, rule.ID)
		}
	}
	return fired, nil
}

// ListRules returns every automation rule
func (r *Repository) ListRules(ctx context.Context) ([]*models.AutomationRule, error) {
	return listRules(ctx, r.db, false)
}

// CreateRule adds an automation rule
func (r *Repository) CreateRule(ctx context.Context, rule models.AutomationRule) error {
	if rule.On == "" {
		rule.On = models.TriggerCandidateMoved
	}
	return insertRule(ctx, r.db, rule)
}

// SetRuleActive enables or disables a rule
func (r *Repository) SetRuleActive(ctx context.Context, id types.RuleID, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE automation_rules SET active = ? WHERE id = ?`, active, string(id))
	if err != nil {
		return fmt.Errorf("failed to update automation rule %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update automation rule %s: %w", id, err)
	}
	if n == 0 {
		return models.NewAPIError(models.CodeInvalidRequest, "automation rule %s not found", id)
	}
	return nil
}
