package ledger

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ReportRequest is the wire form of a report configuration, before it is
// turned into Options.
type ReportRequest struct {
	Type     string `validate:"required,oneof=general partner journal open"`
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `validate:"omitempty,datetime=2006-01-02"`

	FiscalYearEndMonth int `validate:"omitempty,min=1,max=12"`
	FiscalYearEndDay   int `validate:"omitempty,min=1,max=31"`

	WithInitBalance          bool
	InitBalanceHistory       bool
	DetailUnreconciledInInit bool
	Reconciled               bool
	RemoveFutureReconciled   bool
	SumGroupByBottom         bool
	Summary                  bool
	PostedOnly               bool

	PartnerIDs      []int64
	AccountIDs      []int64
	AccountMethod   string `validate:"omitempty,oneof=include exclude"`
	ResultSelection string `validate:"omitempty,oneof=customer supplier both"`
}

// ParseReportRequest collects a request from URL query parameters. The
// ledger type comes from the route.
func ParseReportRequest(r *http.Request, ledgerType string) (ReportRequest, error) {
	q := r.URL.Query()
	req := ReportRequest{
		Type:                     ledgerType,
		DateFrom:                 q.Get("date_from"),
		DateTo:                   q.Get("date_to"),
		WithInitBalance:          boolParam(q.Get("with_init_balance")),
		InitBalanceHistory:       boolParam(q.Get("init_balance_history")),
		DetailUnreconciledInInit: boolParam(q.Get("detail_unreconciled_in_init")),
		Reconciled:               boolParam(q.Get("reconciled")),
		RemoveFutureReconciled:   boolParam(q.Get("remove_future_reconciled")),
		SumGroupByBottom:         boolParam(q.Get("sum_group_by_bottom")),
		Summary:                  boolParam(q.Get("summary")),
		PostedOnly:               q.Get("target_move") == "posted",
		AccountMethod:            q.Get("account_method"),
		ResultSelection:          q.Get("result_selection"),
	}
	var err error
	if req.FiscalYearEndMonth, err = intParam(q.Get("fy_end_month")); err != nil {
		return req, fmt.Errorf("%w: fy_end_month", ErrBadConfiguration)
	}
	if req.FiscalYearEndDay, err = intParam(q.Get("fy_end_day")); err != nil {
		return req, fmt.Errorf("%w: fy_end_day", ErrBadConfiguration)
	}
	if req.PartnerIDs, err = idListParam(q.Get("partner_ids")); err != nil {
		return req, fmt.Errorf("%w: partner_ids", ErrBadConfiguration)
	}
	if req.AccountIDs, err = idListParam(q.Get("account_ids")); err != nil {
		return req, fmt.Errorf("%w: account_ids", ErrBadConfiguration)
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrBadConfiguration, err)
	}
	return req, nil
}

// Options converts the validated request into engine options.
func (req ReportRequest) Options() (Options, error) {
	opts := Options{
		Type:                     LedgerType(req.Type),
		FiscalYearEndMonth:       time.Month(req.FiscalYearEndMonth),
		FiscalYearEndDay:         req.FiscalYearEndDay,
		WithInitBalance:          req.WithInitBalance,
		InitBalanceHistory:       req.InitBalanceHistory,
		DetailUnreconciledInInit: req.DetailUnreconciledInInit,
		Reconciled:               req.Reconciled,
		RemoveFutureReconciled:   req.RemoveFutureReconciled,
		SumGroupByBottom:         req.SumGroupByBottom,
		Summary:                  req.Summary,
		PostedOnly:               req.PostedOnly,
		PartnerIDs:               req.PartnerIDs,
		AccountIDs:               req.AccountIDs,
		AccountMethod:            AccountMethod(req.AccountMethod),
		ResultSelection:          ResultSelection(req.ResultSelection),
	}
	var err error
	if opts.DateFrom, err = dateParam(req.DateFrom); err != nil {
		return opts, fmt.Errorf("%w: date_from", ErrBadDate)
	}
	if opts.DateTo, err = dateParam(req.DateTo); err != nil {
		return opts, fmt.Errorf("%w: date_to", ErrBadDate)
	}
	opts.Normalize()
	return opts, opts.Validate()
}

func boolParam(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func dateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func idListParam(v string) ([]int64, error) {
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
