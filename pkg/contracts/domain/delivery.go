package domain

// TradeAction classifies what a delivery-order line does to a position.
type TradeAction string

const (
	ActionBuy         TradeAction = "buy"
	ActionSell        TradeAction = "sell"
	ActionTransferIn  TradeAction = "transfer_in"
	ActionTransferOut TradeAction = "transfer_out"
	ActionIgnore      TradeAction = "ignore"
)

// Label returns the canonical display label for the action.
func (a TradeAction) Label() string {
	switch a {
	case ActionBuy:
		return "买入"
	case ActionSell:
		return "卖出"
	case ActionTransferIn:
		return "银证转入"
	case ActionTransferOut:
		return "银证转出"
	default:
		return ""
	}
}

// Valid reports whether the action carries the record into the report.
// The zero value and ActionIgnore are both invalid.
func (a TradeAction) Valid() bool {
	switch a {
	case ActionBuy, ActionSell, ActionTransferIn, ActionTransferOut:
		return true
	default:
		return false
	}
}

// DeliveryOrder is the canonical record produced from one export line.
// All vendor-reported values stay as the vendor's own text; the engine never
// reformats dates or decimal prices. Quantity is the signed integer text the
// ledger settled (negative for sells), RunningBalance the locally computed
// cumulative position for the security at this line.
type DeliveryOrder struct {
	Date           string      `json:"date"`
	SecurityCode   string      `json:"security_code"`
	SecurityName   string      `json:"security_name"`
	Action         TradeAction `json:"action"`
	ActionLabel    string      `json:"action_label"`
	Quantity       string      `json:"quantity"`
	Price          string      `json:"price"`
	Amount         string      `json:"amount"`
	RunningBalance string      `json:"running_balance,omitempty"`
}

// IsValid reports whether the record belongs in the report.
func (o *DeliveryOrder) IsValid() bool {
	return o.Action.Valid()
}

// ReportHeader returns the report column titles in output order.
func ReportHeader() []string {
	return []string{"日期", "证券代码", "证券名称", "操作", "数量", "价格", "金额", "持有数量"}
}

// ReportRow returns the record's cells in the same order as ReportHeader.
func (o *DeliveryOrder) ReportRow() []string {
	return []string{
		o.Date,
		o.SecurityCode,
		o.SecurityName,
		o.ActionLabel,
		o.Quantity,
		o.Price,
		o.Amount,
		o.RunningBalance,
	}
}
