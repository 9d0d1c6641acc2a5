package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PAYROLL RECORDS ==========

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_start, period_end, total_hours,
			gross_pay, deductions, net_pay, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT uk_payroll_employee_period DO NOTHING
		RETURNING id, employee_id, period_start, period_end, total_hours,
			gross_pay, deductions, net_pay, status, paid_at, created_at
	`

	var rec payroll.PayrollRecord
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodStart, record.PeriodEnd, record.TotalHours,
		record.GrossPay, record.Deductions, record.NetPay, record.Status,
	).Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd, &rec.TotalHours,
		&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.Status, &rec.PaidAt, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, false, nil
		}
		return payroll.PayrollRecord{}, false, database.Wrap("create payroll record", err)
	}

	return rec, true, nil
}

const payrollSelect = `
	SELECT pr.id, pr.employee_id, pr.period_start, pr.period_end, pr.total_hours,
		   pr.gross_pay, pr.deductions, pr.net_pay, pr.status, pr.paid_at, pr.created_at,
		   e.full_name, e.role_name
	FROM payroll_records pr
	JOIN employees e ON pr.employee_id = e.id
`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd, &rec.TotalHours,
		&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.Status, &rec.PaidAt, &rec.CreatedAt,
		&rec.EmployeeName, &rec.RoleName,
	)
	return rec, err
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPayroll(q.QueryRow(ctx, payrollSelect+` WHERE pr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, database.Wrap("get payroll record", err)
	}
	return rec, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE 1 = 1`
	args := []interface{}{}
	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND pr.period_start >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND pr.period_end <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
	}
	query += " ORDER BY pr.period_start DESC, e.full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list payroll records", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, database.Wrap("scan payroll record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate payroll records", err)
	}

	return records, nil
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $2, paid_at = $3
		WHERE id = $1 AND status = $4
	`

	tag, err := q.Exec(ctx, query, id, payroll.PayrollStatusPaid, paidAt, payroll.PayrollStatusGenerated)
	if err != nil {
		return database.Wrap("mark payroll paid", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordAlreadyPaid
	}
	return nil
}

func (r *payrollRepository) SumNetPayByPeriodStart(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(net_pay), 0)
		FROM payroll_records
		WHERE period_start BETWEEN $1 AND $2
	`, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, database.Wrap("sum net pay", err)
	}
	return total, nil
}

// ========== OVERTIME RULES ==========

func (r *payrollRepository) ListOvertimeRules(ctx context.Context) ([]payroll.OvertimeRule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, factor, required_hours_trigger
		FROM overtime_rules
		ORDER BY required_hours_trigger
	`)
	if err != nil {
		return nil, database.Wrap("list overtime rules", err)
	}
	defer rows.Close()

	var rules []payroll.OvertimeRule
	for rows.Next() {
		var rule payroll.OvertimeRule
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Factor, &rule.RequiredHoursTrigger); err != nil {
			return nil, database.Wrap("scan overtime rule", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate overtime rules", err)
	}
	return rules, nil
}
