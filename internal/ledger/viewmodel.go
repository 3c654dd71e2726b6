package ledger

// ReportViewModel is the JSON projection of an assembled report.
type ReportViewModel struct {
	Title    string             `json:"title"`
	Type     string             `json:"type"`
	DateFrom string             `json:"date_from,omitempty"`
	DateTo   string             `json:"date_to,omitempty"`
	Summary  bool               `json:"summary"`
	Groups   []GroupViewModel   `json:"groups"`
	Accounts []AccountViewModel `json:"accounts"`
	Totals   TotalsViewModel    `json:"totals"`
}

// GroupViewModel renders one group bucket.
type GroupViewModel struct {
	Key     int64           `json:"key"`
	Code    string          `json:"code"`
	Name    string          `json:"name,omitempty"`
	Debit   float64         `json:"debit"`
	Credit  float64         `json:"credit"`
	Balance float64         `json:"balance"`
	SDebit  bool            `json:"s_debit"`
	SCredit bool            `json:"s_credit"`
	Lines   []LineViewModel `json:"lines"`
}

// LineViewModel renders one report line.
type LineViewModel struct {
	Type           string  `json:"type"`
	Date           string  `json:"date"`
	DateMaturity   string  `json:"date_maturity,omitempty"`
	Code           string  `json:"code"`
	AccountCode    string  `json:"account_code,omitempty"`
	MoveName       string  `json:"move_name,omitempty"`
	DisplayedName  string  `json:"displayed_name,omitempty"`
	PartnerName    string  `json:"partner_name,omitempty"`
	Debit          float64 `json:"debit"`
	Credit         float64 `json:"credit"`
	Progress       float64 `json:"progress"`
	SDebit         bool    `json:"s_debit"`
	SCredit        bool    `json:"s_credit"`
	AmountCurrency float64 `json:"amount_currency,omitempty"`
	CurrencyCode   string  `json:"currency_code,omitempty"`
	MatchingNumber string  `json:"matching_number,omitempty"`
}

// AccountViewModel renders one account summary row.
type AccountViewModel struct {
	AccountID int64   `json:"account_id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
	Balance   float64 `json:"balance"`
}

// TotalsViewModel renders the open-period grand totals.
type TotalsViewModel struct {
	Debit   float64 `json:"debit"`
	Credit  float64 `json:"credit"`
	Balance float64 `json:"balance"`
}

// ViewModel converts the report into its JSON projection.
func (r Report) ViewModel() ReportViewModel {
	vm := ReportViewModel{
		Title:    r.Title,
		Type:     string(r.Type),
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Summary:  r.Summary,
		Groups:   make([]GroupViewModel, 0, len(r.Groups)),
		Accounts: make([]AccountViewModel, 0, len(r.Accounts)),
		Totals:   TotalsViewModel{Debit: r.Totals.Debit, Credit: r.Totals.Credit, Balance: r.Totals.Balance},
	}
	for _, grp := range r.Groups {
		gvm := GroupViewModel{
			Key:     grp.Key,
			Code:    grp.Code,
			Name:    grp.Name,
			Debit:   grp.Debit,
			Credit:  grp.Credit,
			Balance: grp.Balance,
			SDebit:  grp.SDebit,
			SCredit: grp.SCredit,
			Lines:   make([]LineViewModel, 0, len(grp.Lines)),
		}
		for _, line := range grp.Lines {
			gvm.Lines = append(gvm.Lines, LineViewModel{
				Type:           string(line.TypeLine),
				Date:           line.Date,
				DateMaturity:   line.DateMaturity,
				Code:           line.Code,
				AccountCode:    line.AccountCode,
				MoveName:       line.MoveName,
				DisplayedName:  line.DisplayedName,
				PartnerName:    line.PartnerName,
				Debit:          line.Debit,
				Credit:         line.Credit,
				Progress:       line.Progress,
				SDebit:         line.SDebit,
				SCredit:        line.SCredit,
				AmountCurrency: line.AmountCurrency,
				CurrencyCode:   line.CurrencyCode,
				MatchingNumber: line.MatchingNumber,
			})
		}
		vm.Groups = append(vm.Groups, gvm)
	}
	for _, acc := range r.Accounts {
		vm.Accounts = append(vm.Accounts, AccountViewModel{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Debit:     acc.Debit,
			Credit:    acc.Credit,
			Balance:   acc.Balance,
		})
	}
	return vm
}
